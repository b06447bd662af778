package srv

import "context"

// cleanupService wraps a teardown function as a Service so resources like
// database handles close during the normal shutdown sweep.
type cleanupService struct {
	cleanup func() error
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup != nil {
		return c.cleanup()
	}
	return nil
}

func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}
