package sysops

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sandevgo/marvin/pkg/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
)

// Ops is the host-OS collaborator: application launching, browser opening
// and resource status.
type Ops struct{}

func New() *Ops {
	return &Ops{}
}

// aliases maps spoken application names to executables per platform.
var aliases = map[string]map[string]string{
	"linux": {
		"calculator": "gnome-calculator",
		"browser":    "xdg-open",
		"files":      "nautilus",
		"terminal":   "gnome-terminal",
	},
	"darwin": {
		"calculator": "Calculator",
		"browser":    "Safari",
		"files":      "Finder",
		"terminal":   "Terminal",
	},
	"windows": {
		"calculator": "calc",
		"browser":    "msedge",
		"files":      "explorer",
		"notepad":    "notepad",
	},
}

func (o *Ops) OpenApplication(ctx context.Context, name string) error {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return fmt.Errorf("empty application name")
	}

	target := name
	if alias, ok := aliases[runtime.GOOS][name]; ok {
		target = alias
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", "-a", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", target)
	default:
		cmd = exec.CommandContext(ctx, target)
	}

	log.FromCtx(ctx).Info().Str("app", target).Msg("launching application")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %q: %w", target, err)
	}
	// Detach: the assistant does not supervise launched applications.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (o *Ops) OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open url: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Status reads host metrics. metric is one of cpu, memory, network, battery
// or "all".
func (o *Ops) Status(ctx context.Context, metric string) (string, error) {
	switch metric {
	case "cpu":
		return o.cpuStatus(ctx)
	case "memory":
		return o.memoryStatus(ctx)
	case "network":
		return o.networkStatus(ctx)
	case "battery":
		// gopsutil has no battery reader; surface that honestly.
		return "I can't read the battery level on this machine.", nil
	default:
		return o.fullStatus(ctx)
	}
}

func (o *Ops) cpuStatus(ctx context.Context) (string, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return "", fmt.Errorf("cpu percent: %w", err)
	}
	if len(percents) == 0 {
		return "", fmt.Errorf("cpu percent: no samples")
	}
	return fmt.Sprintf("CPU usage is at %.0f percent.", percents[0]), nil
}

func (o *Ops) memoryStatus(ctx context.Context) (string, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("virtual memory: %w", err)
	}
	return fmt.Sprintf("Memory usage is at %.0f percent, %.1f of %.1f gigabytes used.",
		vm.UsedPercent,
		float64(vm.Used)/1e9,
		float64(vm.Total)/1e9), nil
}

func (o *Ops) networkStatus(ctx context.Context) (string, error) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return "", fmt.Errorf("network counters: %w", err)
	}
	if len(counters) == 0 {
		return "", fmt.Errorf("network counters: no interfaces")
	}
	c := counters[0]
	return fmt.Sprintf("Network has sent %.1f and received %.1f megabytes since boot.",
		float64(c.BytesSent)/1e6, float64(c.BytesRecv)/1e6), nil
}

func (o *Ops) fullStatus(ctx context.Context) (string, error) {
	cpuPart, err := o.cpuStatus(ctx)
	if err != nil {
		return "", err
	}
	memPart, err := o.memoryStatus(ctx)
	if err != nil {
		return "", err
	}
	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("uptime: %w", err)
	}
	return fmt.Sprintf("%s %s Uptime is %d hours.", cpuPart, memPart, uptime/3600), nil
}
