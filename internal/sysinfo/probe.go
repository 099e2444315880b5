package sysinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/mirqab/mirqab/internal/errors"
)

const bytesPerGB = 1024 * 1024 * 1024

// HostInfo is a snapshot of the machine's capacity for local model work.
// Sizes are in gigabytes.
type HostInfo struct {
	OS           string  `json:"os"`
	Platform     string  `json:"platform"`
	Arch         string  `json:"arch"`
	Hostname     string  `json:"hostname"`
	CPUModel     string  `json:"cpu_model"`
	PhysicalCPUs int     `json:"physical_cpus"`
	LogicalCPUs  int     `json:"logical_cpus"`
	TotalRAM     float64 `json:"total_ram_gb"`
	AvailableRAM float64 `json:"available_ram_gb"`
	UsedRAMPct   float64 `json:"used_ram_percent"`
	DiskTotal    float64 `json:"disk_total_gb"`
	DiskFree     float64 `json:"disk_free_gb"`
}

// Probe collects host capacity information. Partial failures of the
// optional fields (CPU model, physical count) degrade to empty values
// rather than failing the probe; memory and disk are required.
func Probe() (*HostInfo, error) {
	info := &HostInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
	}

	if physical, err := cpu.Counts(false); err == nil {
		info.PhysicalCPUs = physical
	}
	if logical, err := cpu.Counts(true); err == nil {
		info.LogicalCPUs = logical
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Could not read memory statistics",
			"This platform may not be supported")
	}
	info.TotalRAM = float64(vm.Total) / bytesPerGB
	info.AvailableRAM = float64(vm.Available) / bytesPerGB
	info.UsedRAMPct = vm.UsedPercent

	usage, err := disk.Usage(diskRoot())
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Could not read disk usage",
			"This platform may not be supported")
	}
	info.DiskTotal = float64(usage.Total) / bytesPerGB
	info.DiskFree = float64(usage.Free) / bytesPerGB

	return info, nil
}

func diskRoot() string {
	if runtime.GOOS == "windows" {
		return "C:"
	}
	return "/"
}
