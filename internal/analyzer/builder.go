package analyzer

import (
	"math"
	"strconv"

	"github.com/mwiater/hwcompare/internal/catalog"
	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/mwiater/hwcompare/internal/telemetry"
)

// builder accumulates figures for one report. Each step reads only from
// the report and writes disjoint fields; finalize derives the composites.
type builder struct {
	report *Report
	tjmax  float64
	m      ReportMetrics
}

func (b *builder) reduce(key string, pred telemetry.Predicate) reduction {
	series, resolved := b.report.Series(key, pred)
	if !resolved {
		return reduction{}
	}
	metric, _ := b.report.analyzer.catalog.Metric(key)

	var (
		s  stats.Summary
		ok bool
	)
	if metric.BoundedStats {
		s, ok = stats.ComputeBounded(series, metric.Bounds)
	} else {
		s, ok = stats.Compute(series)
	}
	return reduction{summary: s, resolved: true, ok: ok}
}

func (b *builder) build() ReportMetrics {
	b.m.Samples = len(b.report.Table.Rows)
	if p, ok := telemetry.CapturePeriod(b.report.Table); ok {
		b.m.Period = &p
	}

	b.cpu()
	b.power()
	b.thermals()
	b.gpu()
	b.frames()
	b.memory()
	b.disks()
	b.gpuDevices()
	b.finalize()
	return b.m
}

func (b *builder) cpu() {
	power := b.reduce(catalog.CPUPower, nil)
	b.m.CPUPowerAvg, b.m.CPUPowerMax = power.avg(), power.max()

	usage := b.reduce(catalog.CPUUsage, nil)
	b.m.CPUUsageAvg, b.m.CPUUsageMax = usage.avg(), usage.max()

	b.m.CPUClockAvg = b.reduce(catalog.CPUClock, nil).avg()
}

// power fills system power and, when no GPU power column exists at all,
// infers GPU power from the system and CPU figures. A GPU power column
// whose samples were all rejected suppresses the inference.
func (b *builder) power() {
	gpu := b.reduce(catalog.GPUPower, nil)
	b.m.GPUPowerAvg, b.m.GPUPowerMax = gpu.avg(), gpu.max()

	b.m.SystemPowerAvg = b.reduce(catalog.SystemPower, nil).avg()

	if gpu.resolved {
		return
	}
	sys, sysOK := b.m.SystemPowerAvg.Get()
	cpu, cpuOK := b.m.CPUPowerAvg.Get()
	if !sysOK || !cpuOK {
		return
	}
	inferred := sys - cpu
	if inferred < 0 {
		inferred = 0
	}
	b.m.GPUPowerAvg = stats.Of(inferred)
	b.m.GPUPowerInferred = true
}

func (b *builder) thermals() {
	headroom := b.reduce(catalog.ThermalHeadroom, nil)
	b.m.ThermalHeadroomMin = headroom.min()

	temp := b.reduce(catalog.CPUTemp, nil)
	b.m.CPUTempAvg, b.m.CPUTempMax = temp.avg(), temp.max()

	core := b.reduce(catalog.MaxCoreTemp, nil)
	b.m.MaxCoreTemp = core.max()
	if coreMax, ok := core.max().Get(); ok && coreMax > b.m.CPUTempMax.Or(math.Inf(-1)) {
		b.m.CPUTempMax = stats.Of(coreMax)
	}

	if headroom.resolved {
		return
	}
	if tempMax, ok := b.m.CPUTempMax.Get(); ok {
		b.m.ThermalHeadroomMin = stats.Of(b.tjmax - tempMax)
		b.m.HeadroomInferred = true
	}
}

func (b *builder) gpu() {
	b.m.GPUClockAvg = b.reduce(catalog.GPUClock, nil).avg()

	usage := b.reduce(catalog.GPUUsage, nil)
	b.m.GPUUsageAvg, b.m.GPUUsageMax = usage.avg(), usage.max()

	temp := b.reduce(catalog.GPUTemp, nil)
	b.m.GPUTempAvg, b.m.GPUTempMax = temp.avg(), temp.max()
	b.m.GPUTempLimit = b.reduce(catalog.GPUTempLimit, nil).avg()

	mem := b.reduce(catalog.GPUMemoryUsage, nil)
	b.m.GPUMemoryUsageAvg, b.m.GPUMemoryUsageMax = mem.avg(), mem.max()
}

// frames fills FPS figures. When the low-percentile columns are missing
// they are derived from the frame-time series.
func (b *builder) frames() {
	b.m.FPS.Avg = b.reduce(catalog.FPSAvg, nil).avg()
	low1 := b.reduce(catalog.FPS1, nil)
	low01 := b.reduce(catalog.FPS01, nil)
	b.m.FPS.Percentile1 = low1.avg()
	b.m.FPS.Percentile01 = low01.avg()

	ft := b.reduce(catalog.FrameTime, nil)
	if !ft.ok {
		return
	}
	values := ft.summary.Values
	b.m.FrameTime = &FrameTime{
		Median: stats.Of(stats.Quantile(values, 0.5)),
		P95:    stats.Of(stats.Quantile(values, 0.95)),
		P99:    stats.Of(stats.Quantile(values, 0.99)),
	}

	if !low1.resolved {
		if v := fpsFromFrameTime(values, 0.99); v.Valid() {
			b.m.FPS.Percentile1 = v
			b.m.FPS.Derived = true
		}
	}
	if !low01.resolved {
		if v := fpsFromFrameTime(values, 0.999); v.Valid() {
			b.m.FPS.Percentile01 = v
			b.m.FPS.Derived = true
		}
	}
}

func fpsFromFrameTime(values []float64, q float64) stats.Value {
	ms := stats.Quantile(values, q)
	if stats.Missing(ms) || ms <= 0 {
		return stats.None()
	}
	return stats.Of(1000 / ms)
}

func (b *builder) memory() {
	usage := b.reduce(catalog.RAMUsage, nil)
	b.m.RAMUsageAvg, b.m.RAMUsageMax = usage.avg(), usage.max()
	b.m.RAMUsedAvg = b.reduce(catalog.RAMUsed, nil).avg()
	b.m.RAMAvailableAvg = b.reduce(catalog.RAMAvailable, nil).avg()
}

func (b *builder) disks() {
	b.m.DiskReadAvg = b.reduce(catalog.DiskRead, nil).avg()
	b.m.DiskWriteAvg = b.reduce(catalog.DiskWrite, nil).avg()

	for _, dev := range b.report.Devices(telemetry.ClassOther, catalog.DiskRead, catalog.DiskWrite) {
		pred := telemetry.DevicePredicate(telemetry.ClassOther, dev.Key)
		read := b.reduce(catalog.DiskRead, pred)
		write := b.reduce(catalog.DiskWrite, pred)
		d := Drive{
			Key:      dev.Key,
			Name:     dev.DisplayName(),
			ReadAvg:  read.avg(),
			ReadMax:  read.max(),
			WriteAvg: write.avg(),
			WriteMax: write.max(),
		}
		if d.ReadAvg.Valid() || d.WriteAvg.Valid() {
			b.m.Drives = append(b.m.Drives, d)
		}
	}
}

func (b *builder) gpuDevices() {
	for i, dev := range b.report.Devices(telemetry.ClassGPU) {
		pred := telemetry.DevicePredicate(telemetry.ClassGPU, dev.Key)
		order := dev.IndexOr(i + 1)
		name := dev.DisplayName()
		if name == "" {
			name = "GPU #" + strconv.Itoa(order)
		}

		d := GPUDevice{Key: dev.Key, Index: order, Indexed: dev.Index != nil, Name: name}
		power := b.reduce(catalog.GPUPower, pred)
		d.PowerAvg, d.PowerMax = power.avg(), power.max()
		clock := b.reduce(catalog.GPUClock, pred)
		d.ClockAvg, d.ClockMax = clock.avg(), clock.max()
		usage := b.reduce(catalog.GPUUsage, pred)
		d.UsageAvg, d.UsageMax = usage.avg(), usage.max()
		temp := b.reduce(catalog.GPUTemp, pred)
		d.TempAvg, d.TempMax = temp.avg(), temp.max()
		mem := b.reduce(catalog.GPUMemoryUsage, pred)
		d.MemoryUsageAvg, d.MemoryUsageMax = mem.avg(), mem.max()

		if d.hasData() {
			b.m.GPUDevices = append(b.m.GPUDevices, d)
		}
	}
	if len(b.m.GPUDevices) == 0 {
		return
	}

	primary := b.m.GPUDevices[0]
	mirror := func(dst *stats.Value, src stats.Value) {
		if src.Valid() {
			*dst = src
		}
	}
	mirror(&b.m.GPUPowerAvg, primary.PowerAvg)
	mirror(&b.m.GPUPowerMax, primary.PowerMax)
	mirror(&b.m.GPUClockAvg, primary.ClockAvg)
	mirror(&b.m.GPUUsageAvg, primary.UsageAvg)
	mirror(&b.m.GPUUsageMax, primary.UsageMax)
	mirror(&b.m.GPUTempAvg, primary.TempAvg)
	mirror(&b.m.GPUTempMax, primary.TempMax)
	mirror(&b.m.GPUMemoryUsageAvg, primary.MemoryUsageAvg)
	mirror(&b.m.GPUMemoryUsageMax, primary.MemoryUsageMax)
	if primary.PowerAvg.Valid() {
		b.m.GPUPowerInferred = false
	}
}

// finalize clamps percentage figures and derives performance per watt.
func (b *builder) finalize() {
	for _, v := range []*stats.Value{
		&b.m.CPUUsageAvg, &b.m.CPUUsageMax,
		&b.m.GPUUsageAvg, &b.m.GPUUsageMax,
		&b.m.GPUMemoryUsageAvg, &b.m.GPUMemoryUsageMax,
		&b.m.RAMUsageAvg, &b.m.RAMUsageMax,
	} {
		*v = v.Map(stats.ClampPercent)
	}
	for i := range b.m.GPUDevices {
		d := &b.m.GPUDevices[i]
		for _, v := range []*stats.Value{&d.UsageAvg, &d.UsageMax, &d.MemoryUsageAvg, &d.MemoryUsageMax} {
			*v = v.Map(stats.ClampPercent)
		}
	}

	fps, fpsOK := b.m.FPS.Avg.Get()
	cpu, cpuOK := b.m.CPUPowerAvg.Get()
	gpu, gpuOK := b.m.GPUPowerAvg.Get()
	if fpsOK && cpuOK && gpuOK && cpu+gpu != 0 {
		b.m.PerfPerWatt = stats.Of(fps / (cpu + gpu))
	}
}
