package catalog

import "github.com/mwiater/hwcompare/internal/stats"

func bounds(min, max float64) *stats.Bounds { return &stats.Bounds{Min: min, Max: max} }

func threshold(v float64) *float64 { return &v }

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Metrics:       defaultMetrics(),
		Charts:        defaultCharts(),
		Comparison:    defaultComparison(),
		GPUDeviceRows: defaultGPUDeviceRows(),
	}
}

func defaultMetrics() []Metric {
	return []Metric{
		{
			Key: CPUPower, Label: "CPU Power", Unit: "W", Bounds: bounds(0, 400), BoundedStats: true,
			Candidates: []string{
				"Potência total da CPU [W]",
				"CPU Package Power [W]",
				"CPU Total Power [W]",
			},
		},
		{
			Key: CPUUsage, Label: "Uso de CPU", Unit: PercentUnit, Bounds: bounds(0, 100), BoundedStats: true,
			Candidates: []string{
				"Uso total da CPU [%]",
				"Utilização total da CPU [%]",
				"Uso do núcleo (avg) [%]",
				"Utilização do núcleo (avg) [%]",
				"Total CPU Usage [%]",
				"CPU Usage [%]",
			},
		},
		{
			Key: CPUClock, Label: "CPU Clock", Unit: "MHz",
			Candidates: []string{
				"Relógios efetivos núcleo (avg) [MHz]",
				"Relógio efetivo médio [MHz]",
				"Core Effective Clocks (avg) [MHz]",
				"Average Effective Clock [MHz]",
			},
		},
		{
			Key: CPUTemp, Label: "CPU Temp", Unit: "°C", Bounds: bounds(-20, 130), BoundedStats: true,
			Candidates: []string{
				"CPU Inteira [°C]",
				"Temperaturas centrais (avg) [°C]",
				"CPU Temperature [°C]",
				"Core Temperatures (avg) [°C]",
			},
		},
		{
			Key: MaxCoreTemp, Label: "Núcleo máximo", Unit: "°C", Bounds: bounds(-20, 130), BoundedStats: true,
			Candidates: []string{
				"Núcleo máximo [°C]",
				"CPU Inteira [°C]",
				"Core Max [°C]",
			},
		},
		{
			Key: GPUClock, Label: "GPU Clock", Unit: "MHz",
			Candidates: []string{
				"GPU Clock [MHz]",
				"GPU Effective Clock [MHz]",
			},
		},
		{
			Key: GPUPower, Label: "GPU Power", Unit: "W", Bounds: bounds(0, 600), BoundedStats: true,
			Candidates: []string{
				"GPU Potência [W]",
				"GPU Power [W]",
			},
		},
		{
			Key: GPUUsage, Label: "Uso GPU D3D", Unit: PercentUnit, Bounds: bounds(0, 100), BoundedStats: true,
			Candidates: []string{
				"Utilização de D3D GPU [%]",
				"Utilizações de D3D GPU (avg) [%]",
				"GPU D3D Uso (avg) [%]",
				"Carga do núcleo da GPU [%]",
				"GPU D3D Usage [%]",
				"GPU Core Load [%]",
			},
		},
		{
			Key: GPUMemoryUsage, Label: "Uso memória GPU", Unit: PercentUnit, Bounds: bounds(0, 100), BoundedStats: true,
			Candidates: []string{
				"Uso de memória GPU [%]",
				"Carga do controlador de memória GPU [%]",
				"GPU Memory Usage [%]",
				"GPU Memory Controller Load [%]",
			},
		},
		{
			Key: GPUTemp, Label: "GPU Temp", Unit: "°C", Bounds: bounds(-20, 130), BoundedStats: true,
			Candidates: []string{
				"Temperatura GPU [°C]",
				"Temperatura de ponto quente da GPU [°C]",
				"Temperatura de junção da memória GPU [°C]",
				"GPU Hotspot Temperature [°C]",
				"GPU Temperature [°C]",
			},
		},
		{
			Key: GPUTempLimit, Label: "Limite térmico GPU", Unit: "°C", Bounds: bounds(-20, 130),
			Candidates: []string{
				"Limite térmico da GPU [°C]",
				"GPU Temperature Limit [°C]",
			},
		},
		{
			Key: ThermalHeadroom, Label: "Headroom", Unit: "°C", Bounds: bounds(-50, 150),
			Candidates: []string{
				"Distância do núcleo para TjMAX (avg) [°C]",
				"Distância para TjMAX [°C]",
				"Distance to TjMAX (avg) [°C]",
			},
		},
		{
			Key: FPSAvg, Label: "FPS médio", Unit: "FPS",
			Candidates: []string{
				"Taxa de quadros Presented (avg) [FPS]",
				"Taxa de quadros Displayed (avg) [FPS]",
				"Framerate Presented (avg) [FPS]",
				"Framerate Displayed (avg) [FPS]",
			},
		},
		{
			Key: FPS1, Label: "FPS 1%", Unit: "FPS",
			Candidates: []string{
				"Taxa de quadros Presented (1%) [FPS]",
				"Taxa de quadros Presented (1% low) [FPS]",
				"Taxa de quadros Displayed (1%) [FPS]",
				"Framerate Presented (1%) [FPS]",
				"Framerate Presented (1% low) [FPS]",
			},
		},
		{
			Key: FPS01, Label: "FPS 0.1%", Unit: "FPS",
			Candidates: []string{
				"Taxa de quadros Presented (0.1%) [FPS]",
				"Taxa de quadros Presented (0.1% low) [FPS]",
				"Taxa de quadros Displayed (0.1%) [FPS]",
				"Framerate Presented (0.1%) [FPS]",
				"Framerate Presented (0.1% low) [FPS]",
			},
		},
		{
			Key: FrameTime, Label: "Frame Time", Unit: "ms",
			Candidates: []string{
				"Frame Time Presented (avg) [ms]",
				"Frame Time Displayed (avg) [ms]",
			},
		},
		{
			Key: RAMUsage, Label: "Uso de RAM", Unit: PercentUnit, Bounds: bounds(0, 100), BoundedStats: true,
			Candidates: []string{
				"Carga da memória física [%]",
				"Memória física utilizada [%]",
				"Uso de memória física [%]",
				"Physical Memory Load [%]",
			},
		},
		{
			Key: RAMUsed, Label: "RAM utilizada", Unit: "MB", Bounds: bounds(0, 1048576),
			Candidates: []string{
				"Memória física utilizada [MB]",
				"Physical Memory Used [MB]",
			},
		},
		{
			Key: RAMAvailable, Label: "RAM disponível", Unit: "MB", Bounds: bounds(0, 1048576),
			Candidates: []string{
				"Memória física disponível [MB]",
				"Physical Memory Available [MB]",
			},
		},
		{
			Key: DiskRead, Label: "Leitura", Unit: "MB/s",
			Candidates: []string{
				"Taxa de leituras [MB/s]",
				"Leitura (MB/s)",
				"Leitura de disco [MB/s]",
				"Read Rate [MB/s]",
			},
		},
		{
			Key: DiskWrite, Label: "Gravação", Unit: "MB/s",
			Candidates: []string{
				"Taxa de gravações [MB/s]",
				"Gravação (MB/s)",
				"Gravação de disco [MB/s]",
				"Write Rate [MB/s]",
			},
		},
		{
			Key: SystemPower, Label: "System Power", Unit: "W", Bounds: bounds(0, 800),
			Candidates: []string{
				"Potência total do sistema [W]",
				"System Total Power [W]",
			},
		},
	}
}

func defaultCharts() []ChartCategory {
	return []ChartCategory{
		{Name: "CPU", Metrics: []ChartMetric{
			{Label: "Uso de CPU (%)", Metric: CPUUsage, Unit: "%"},
			{Label: "CPU Clock (MHz)", Metric: CPUClock, Unit: "MHz"},
			{Label: "CPU Power (W)", Metric: CPUPower, Unit: "W"},
		}},
		{Name: "GPU", DeviceFanout: true, Metrics: []ChartMetric{
			{Label: "Uso GPU D3D (%)", Metric: GPUUsage, Unit: "%"},
			{Label: "GPU Clock (MHz)", Metric: GPUClock, Unit: "MHz"},
			{Label: "GPU Power (W)", Metric: GPUPower, Unit: "W"},
			{Label: "Uso memória GPU (%)", Metric: GPUMemoryUsage, Unit: "%"},
		}},
		{Name: "Temperatura", Metrics: []ChartMetric{
			{Label: "CPU Temp (°C)", Metric: CPUTemp, Unit: "°C"},
			{Label: "GPU Temp (°C)", Metric: GPUTemp, Unit: "°C"},
			{Label: "Headroom (°C)", Metric: ThermalHeadroom, Unit: "°C"},
		}},
		{Name: "Memória", Metrics: []ChartMetric{
			{Label: "Uso de RAM (%)", Metric: RAMUsage, Unit: "%"},
			{Label: "RAM utilizada (MB)", Metric: RAMUsed, Unit: "MB"},
		}},
		{Name: "Disco", Metrics: []ChartMetric{
			{Label: "Leitura (MB/s)", Metric: DiskRead, Unit: "MB/s"},
			{Label: "Gravação (MB/s)", Metric: DiskWrite, Unit: "MB/s"},
		}},
	}
}

func defaultComparison() []ComparisonGroup {
	return []ComparisonGroup{
		{Title: "Desempenho / FPS", Rows: []ComparisonRow{
			{Label: "FPS médio", Field: "fps_avg", Unit: " FPS", Decimals: 2, Prefer: PreferMax},
			{Label: "FPS 1%", Field: "fps_1", Unit: " FPS", Decimals: 2, Prefer: PreferMax},
			{Label: "FPS 0.1%", Field: "fps_01", Unit: " FPS", Decimals: 2, Prefer: PreferMax},
			{Label: "Frame time mediano", Field: "frame_time_median", Unit: " ms", Decimals: 2, Prefer: PreferMin},
			{Label: "Frame time p99", Field: "frame_time_p99", Unit: " ms", Decimals: 2, Prefer: PreferMin},
			{Label: "CPU Power médio", Field: "cpu_power_avg", Unit: " W", Decimals: 1, Prefer: PreferMin},
			{Label: "GPU Power médio", Field: "gpu_power_avg", Unit: " W", Decimals: 1, Prefer: PreferMin},
			{Label: "FPS / Watt", Field: "perf_per_watt", Unit: " FPS/W", Decimals: 3, Prefer: PreferMax},
		}},
		{Title: "Temperatura", Rows: []ComparisonRow{
			{Label: "CPU Temp máx", Field: "cpu_temp_max", Unit: " °C", Decimals: 1, Prefer: PreferMin, CriticalHigh: threshold(95)},
			{Label: "GPU Temp máx", Field: "gpu_temp_max", Unit: " °C", Decimals: 1, Prefer: PreferMin, CriticalHigh: threshold(90)},
			{Label: "Headroom mínimo", Field: "thermal_headroom_min", Unit: " °C", Decimals: 1, Prefer: PreferMax, CriticalLow: threshold(5)},
		}},
		{Title: "CPU", Rows: []ComparisonRow{
			{Label: "CPU Effective Clock", Field: "cpu_effective_clock_avg", Unit: " MHz", Decimals: 0, Prefer: PreferMax},
			{Label: "Uso médio de CPU", Field: "cpu_usage_avg", Unit: " %", Decimals: 2, Prefer: PreferMin},
			{Label: "Thermal headroom (TjMAX)", Field: "thermal_headroom_min", Unit: " °C", Decimals: 1, Prefer: PreferMax},
		}},
		{Title: "GPU", Rows: []ComparisonRow{
			{Label: "Uso GPU (%)", Field: "gpu_d3d_usage_avg", Unit: " %", Decimals: 1, Prefer: PreferMax},
			{Label: "GPU Clock", Field: "gpu_clock_avg", Unit: " MHz", Decimals: 0, Prefer: PreferMax},
			{Label: "Uso memória GPU (%)", Field: "gpu_memory_usage_avg", Unit: " %", Decimals: 1, Prefer: PreferMax},
		}},
		{Title: "Memória / Disco", Rows: []ComparisonRow{
			{Label: "Uso RAM (%)", Field: "ram_usage_percent_avg", Unit: " %", Decimals: 1, Prefer: PreferMin},
			{Label: "RAM utilizada (MB)", Field: "ram_used_mb_avg", Unit: " MB", Decimals: 0, Prefer: PreferMin},
			{Label: "Leitura (MB/s)", Field: "disk_read_rate_avg", Unit: " MB/s", Decimals: 1, Prefer: PreferMin},
			{Label: "Gravação (MB/s)", Field: "disk_write_rate_avg", Unit: " MB/s", Decimals: 1, Prefer: PreferMin},
		}},
	}
}

func defaultGPUDeviceRows() []ComparisonRow {
	return []ComparisonRow{
		{Label: "Potência média", Field: "power_avg", Unit: " W", Decimals: 1, Prefer: PreferMin},
		{Label: "Potência máx", Field: "power_max", Unit: " W", Decimals: 1, Prefer: PreferMin},
		{Label: "Clock médio", Field: "clock_avg", Unit: " MHz", Decimals: 0, Prefer: PreferMax},
		{Label: "Clock máx", Field: "clock_max", Unit: " MHz", Decimals: 0, Prefer: PreferMax},
		{Label: "Uso médio", Field: "usage_avg", Unit: " %", Decimals: 1, Prefer: PreferMax},
		{Label: "Uso máx", Field: "usage_max", Unit: " %", Decimals: 1, Prefer: PreferMax},
		{Label: "Temp média", Field: "temp_avg", Unit: " °C", Decimals: 1, Prefer: PreferMin},
		{Label: "Temp máx", Field: "temp_max", Unit: " °C", Decimals: 1, Prefer: PreferMin, CriticalHigh: threshold(90)},
		{Label: "Uso memória média", Field: "memory_usage_avg", Unit: " %", Decimals: 1, Prefer: PreferMax},
		{Label: "Uso memória máx", Field: "memory_usage_max", Unit: " %", Decimals: 1, Prefer: PreferMax},
	}
}
