package nlu

import (
	"fmt"

	"github.com/sandevgo/marvin/internal/core"
)

// Matcher resolves normalized text against an immutable ranked pattern
// catalog. Matching is pure: identical input and catalog always produce the
// same result.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher validates and compiles the catalog. Any structural problem is
// returned as ErrMalformedPattern and must abort startup.
func NewMatcher(norm *Normalizer, patterns []Pattern) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrMalformedPattern)
	}

	seen := make(map[core.Intent]struct{}, len(patterns))
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Intent == "" {
			return nil, fmt.Errorf("%w: pattern with empty intent", ErrMalformedPattern)
		}
		if _, dup := seen[p.Intent]; dup {
			return nil, fmt.Errorf("%w: duplicate intent %q", ErrMalformedPattern, p.Intent)
		}
		seen[p.Intent] = struct{}{}
		if p.Priority < 0 {
			return nil, fmt.Errorf("%w: intent %q has negative priority", ErrMalformedPattern, p.Intent)
		}
		if len(p.Templates) == 0 {
			return nil, fmt.Errorf("%w: intent %q has no templates", ErrMalformedPattern, p.Intent)
		}
		if p.Sensitive && p.Intent.SessionControl() {
			return nil, fmt.Errorf("%w: session-control intent %q cannot be sensitive", ErrMalformedPattern, p.Intent)
		}

		cp := compiledPattern{
			intent:    p.Intent,
			priority:  p.Priority,
			sensitive: p.Sensitive,
		}
		for _, t := range p.Templates {
			ct, err := compileTemplate(norm, t)
			if err != nil {
				return nil, fmt.Errorf("intent %q: %w", p.Intent, err)
			}
			cp.templates = append(cp.templates, ct)
		}
		compiled = append(compiled, cp)
	}

	return &Matcher{patterns: compiled}, nil
}

// Match returns the best-ranked resolved intent for the normalized text, or
// false when nothing matches. A miss is a normal outcome, not an error.
func (m *Matcher) Match(text string) (core.ResolvedIntent, bool) {
	if text == "" {
		return core.ResolvedIntent{}, false
	}

	best := -1
	var bestSlots map[string]string
	bestPriority, bestWeight := -1, -1

	for i, p := range m.patterns {
		for _, ct := range p.templates {
			slots, ok := ct.match(text)
			if !ok {
				continue
			}
			better := p.priority > bestPriority ||
				(p.priority == bestPriority && ct.weight > bestWeight)
			if better {
				best = i
				bestSlots = slots
				bestPriority = p.priority
				bestWeight = ct.weight
			}
		}
	}

	if best < 0 {
		return core.ResolvedIntent{}, false
	}

	p := m.patterns[best]
	return core.ResolvedIntent{
		Intent:    p.intent,
		Slots:     bestSlots,
		Sensitive: p.sensitive,
	}, true
}
