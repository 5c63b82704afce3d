package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage returns CPU usage in percent since the previous call. It does
// not block; the first call reports usage since boot.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil || len(percentage) == 0 {
		return 0
	}
	return percentage[0]
}

// GetMemoryUsage returns used host memory in percent.
func GetMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.UsedPercent
}

// RegisterSystemMetrics exposes host CPU and memory gauges, sampled on
// scrape.
func RegisterSystemMetrics(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Host CPU usage in percent",
		}, GetCPUUsage),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "system_memory_usage_percent",
			Help: "Host memory usage in percent",
		}, GetMemoryUsage),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
