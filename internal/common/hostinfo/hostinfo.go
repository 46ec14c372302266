// Package hostinfo probes the machine the predictor runs on.
package hostinfo

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Memory is a point-in-time view of system memory.
type Memory struct {
	TotalMB     uint64
	UsedPercent float64
}

// ReadMemory returns current system memory usage.
func ReadMemory(ctx context.Context) (Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Memory{}, err
	}
	return Memory{TotalMB: vm.Total / (1024 * 1024), UsedPercent: vm.UsedPercent}, nil
}

// CPUCount returns the number of logical CPUs.
func CPUCount(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// nvidiaDevice is the first NVIDIA device node on Linux.
var nvidiaDevice = "/dev/nvidia0"

// HasGPU reports whether an NVIDIA GPU is usable on this host. It checks the
// device node first and falls back to nvidia-smi.
func HasGPU() bool {
	if _, err := os.Stat(nvidiaDevice); err == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader").Output()
	if err != nil {
		// nvidia-smi not installed or no driver
		return false
	}
	return strings.TrimSpace(string(out)) != ""
}
