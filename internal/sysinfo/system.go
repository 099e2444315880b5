package sysinfo

import "fmt"

// Capacity floors below which a check degrades to a warning. Fine-tuning
// adapters for a 3b model wants ~8 GB of headroom; model blobs plus
// training files want ~10 GB of disk.
const (
	minComfortableRAMGB  = 8.0
	minComfortableDiskGB = 10.0
	minComfortableCores  = 4
)

// CPUCheck reports processor capacity.
type CPUCheck struct {
	Info *HostInfo
}

func (c *CPUCheck) Name() string     { return "cpu" }
func (c *CPUCheck) Category() string { return "SYSTEM" }

func (c *CPUCheck) Run() CheckResult {
	if c.Info == nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "no probe data"}
	}

	msg := fmt.Sprintf("%d cores (%d logical)", c.Info.PhysicalCPUs, c.Info.LogicalCPUs)
	if c.Info.CPUModel != "" {
		msg += ", " + c.Info.CPUModel
	}

	if c.Info.LogicalCPUs < minComfortableCores {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    msg,
			Suggestion: "CPU-only training will be slow here; prefer tinyllama or llama3.2:1b",
		}
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}

// MemoryCheck reports RAM capacity.
type MemoryCheck struct {
	Info *HostInfo
}

func (c *MemoryCheck) Name() string     { return "memory" }
func (c *MemoryCheck) Category() string { return "SYSTEM" }

func (c *MemoryCheck) Run() CheckResult {
	if c.Info == nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "no probe data"}
	}

	msg := fmt.Sprintf("%.1f GB RAM, %.1f GB available", c.Info.TotalRAM, c.Info.AvailableRAM)
	if c.Info.AvailableRAM < minComfortableRAMGB {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    msg,
			Suggestion: "Close other applications or stick to smaller models (llama3.2:1b)",
		}
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}

// DiskCheck reports free disk space.
type DiskCheck struct {
	Info *HostInfo
}

func (c *DiskCheck) Name() string     { return "disk" }
func (c *DiskCheck) Category() string { return "SYSTEM" }

func (c *DiskCheck) Run() CheckResult {
	if c.Info == nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "no probe data"}
	}

	msg := fmt.Sprintf("%.1f GB free of %.1f GB", c.Info.DiskFree, c.Info.DiskTotal)
	if c.Info.DiskFree < minComfortableDiskGB {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    msg,
			Suggestion: "Model blobs are large (a 3b model is ~2 GB); free up space before pulling",
		}
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}
