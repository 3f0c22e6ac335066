package hardware

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mwiater/hwcompare/internal/stats"
	"github.com/mwiater/hwcompare/internal/telemetry"
	"github.com/mwiater/hwcompare/internal/textnorm"
)

type System struct {
	Brand string `json:"brand,omitempty"`
	Name  string `json:"name,omitempty"`
}

type OS struct {
	Name       string `json:"name,omitempty"`
	SecureBoot string `json:"secureBoot,omitempty"`
	UEFI       string `json:"uefi,omitempty"`
}

type CPU struct {
	Name      string      `json:"name,omitempty"`
	Cores     stats.Value `json:"cores"`
	Threads   stats.Value `json:"threads"`
	BaseClock string      `json:"baseClock,omitempty"`
}

type MemoryModule struct {
	Slot         string      `json:"slot,omitempty"`
	Manufacturer string      `json:"manufacturer,omitempty"`
	PartNumber   string      `json:"partNumber,omitempty"`
	Type         string      `json:"type,omitempty"`
	Speed        string      `json:"speed,omitempty"`
	SizeGB       stats.Value `json:"sizeGB"`
}

type Memory struct {
	TotalGB stats.Value    `json:"totalGB"`
	FreqMHz stats.Value    `json:"freqMHz"`
	Modules []MemoryModule `json:"modules,omitempty"`
}

type Drive struct {
	Model      string      `json:"model"`
	Letters    string      `json:"letters,omitempty"`
	Type       string      `json:"type,omitempty"`
	CapacityGB stats.Value `json:"capacityGB"`
}

type GPU struct {
	Name          string `json:"name"`
	Chipset       string `json:"chipset,omitempty"`
	Memory        string `json:"memory,omitempty"`
	Bus           string `json:"bus,omitempty"`
	CoreClock     string `json:"coreClock,omitempty"`
	MemoryClock   string `json:"memoryClock,omitempty"`
	Driver        string `json:"driver,omitempty"`
	DriverVersion string `json:"driverVersion,omitempty"`
	DriverDate    string `json:"driverDate,omitempty"`
}

// Profile is the device inventory distilled from an HWiNFO export.
type Profile struct {
	System System  `json:"system"`
	OS     OS      `json:"os"`
	CPU    CPU     `json:"cpu"`
	Memory Memory  `json:"memory"`
	Drives []Drive `json:"drives"`
	GPUs   []GPU   `json:"gpus"`
}

// properties maps normalized Property/Entry text to its Description. The
// first entry wins.
type properties map[string]string

func propertiesOf(nodes ...*Node) properties {
	props := properties{}
	for _, n := range nodes {
		for _, p := range n.ChildrenNamed("Property") {
			key := textnorm.Normalize(p.ChildText("Entry"))
			if key == "" {
				continue
			}
			if _, dup := props[key]; dup {
				continue
			}
			desc := p.ChildText("Description")
			if desc == "" {
				desc = p.ChildText("Value")
			}
			props[key] = desc
		}
	}
	return props
}

func (p properties) pick(keywords ...string) string {
	for _, k := range keywords {
		if v, ok := p[textnorm.Normalize(k)]; ok && v != "" {
			return v
		}
	}
	return ""
}

func (p properties) number(keywords ...string) stats.Value {
	v := p.pick(keywords...)
	if v == "" {
		return stats.None()
	}
	f, ok := telemetry.ParseNumber(v)
	if !ok {
		return stats.None()
	}
	return stats.Of(f)
}

var (
	gbPattern = regexp.MustCompile(`(?i)([\d.,]+)\s*g(?:b|bytes?|ib)`)
	mbPattern = regexp.MustCompile(`(?i)([\d.,]+)\s*m(?:b|bytes?|ib)`)
)

// ParseCapacity reads sizes such as "32 GBytes" or "16.384 MB" as GB.
func ParseCapacity(text string) stats.Value {
	text = strings.TrimSpace(text)
	if text == "" {
		return stats.None()
	}
	for _, p := range []struct {
		re    *regexp.Regexp
		scale float64
	}{{gbPattern, 1}, {mbPattern, 1024}} {
		if m := p.re.FindStringSubmatch(text); m != nil {
			num := strings.Replace(strings.ReplaceAll(m[1], ".", ""), ",", ".", 1)
			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return stats.None()
			}
			return stats.Of(f / p.scale)
		}
	}
	f, ok := telemetry.ParseNumber(text)
	if !ok {
		return stats.None()
	}
	return stats.Of(f)
}

// ExtractProfile reads the inventory under HWINFO/COMPUTER. root may be
// the HWINFO element itself or a parent of it.
func ExtractProfile(root *Node) (*Profile, error) {
	computer := root.Path("COMPUTER")
	if root != nil && root.Name != "HWINFO" {
		computer = root.Path("HWINFO", "COMPUTER")
	}
	if computer == nil {
		return nil, ErrNoComputer
	}

	rootProps := propertiesOf(computer)
	subNodes := computer.Child("SubNodes")
	cpuNode := subNodes.Child("CPU")
	cpuDetail := cpuNode.Child("SubNode")
	cpuProps := propertiesOf(cpuNode, cpuDetail)
	memNode := subNodes.Child("MEMORY")
	memProps := propertiesOf(memNode)

	p := &Profile{
		System: System{
			Brand: rootProps.pick("Nome da marca do computador", "Fabricante", "Marca", "Computer Brand Name"),
			Name:  rootProps.pick("Nome do computador", "Computer Name"),
		},
		OS: OS{
			Name:       rootProps.pick("Sistema operacional", "Operating System"),
			SecureBoot: rootProps.pick("Inicialização segura", "Secure Boot"),
			UEFI:       rootProps.pick("Inicialização UEFI", "UEFI Boot"),
		},
		CPU: CPU{
			Name:    cpuDetail.ChildText("NodeName"),
			Cores:   cpuProps.number("Número de núcleos de processador", "Number of CPU Cores", "Total Cores"),
			Threads: cpuProps.number("Número de processadores lógicos", "Number of Logical CPUs", "Logical Processor Count"),
		},
		Drives: extractDrives(subNodes.Child("DRIVES")),
		GPUs:   extractGPUs(subNodes.Child("VIDEO")),
	}
	if p.CPU.Name == "" {
		p.CPU.Name = cpuProps.pick("Nome do processador", "CPU Name", "Processor Name")
	}

	p.CPU.BaseClock = cpuProps.pick("Frequência do processador original", "Original Processor Frequency")
	if p.CPU.BaseClock == "" {
		if mhz, ok := cpuProps.number("Original Processor Frequency [MHz]").Get(); ok {
			p.CPU.BaseClock = fmt.Sprintf("%.0f MHz", mhz)
		}
	}

	p.Memory.TotalGB = ParseCapacity(memProps.pick("Tamanho total da memória", "Total Memory Size"))
	if !p.Memory.TotalGB.Valid() {
		p.Memory.TotalGB = memProps.number("Total Memory Size [MB]").Map(func(mb float64) float64 { return mb / 1024 })
	}
	p.Memory.FreqMHz = memProps.number("Frequência da memória atual", "Current Memory Clock", "Memory Clock", "Memory Speed")
	for _, m := range memNode.ChildrenNamed("SubNode") {
		props := propertiesOf(m)
		p.Memory.Modules = append(p.Memory.Modules, MemoryModule{
			Slot:         m.ChildText("NodeName"),
			Manufacturer: props.pick("Fabricante do módulo", "Module Manufacturer"),
			PartNumber:   props.pick("Número da peça do módulo", "Module Part Number"),
			Type:         props.pick("Tipo de memória", "Memory Type"),
			Speed:        props.pick("Velocidade da memória", "Memory Speed", "Frequência da memória"),
			SizeGB:       ParseCapacity(props.pick("Tamanho do módulo", "Module Size")),
		})
	}
	return p, nil
}

func walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.ChildrenNamed("SubNode") {
		walk(c, visit)
	}
}

func extractDrives(root *Node) []Drive {
	var out []Drive
	seen := map[string]struct{}{}
	walk(root, func(n *Node) {
		if n.Child("Property") == nil {
			return
		}
		props := propertiesOf(n)
		model := props.pick("Modelo de unidade", "Drive Model", "Nome da unidade", "Drive Name")
		if model == "" {
			model = n.ChildText("NodeName")
		}
		if model == "" {
			return
		}
		d := Drive{
			Model:   model,
			Letters: props.pick("Drive Letter(s)", "Unidade(s)", "Letra do drive"),
			Type:    props.pick("Tipo de unidade", "Drive Type", "Tipo de disco"),
		}
		d.CapacityGB = props.number("Drive Capacity [MB]", "Capacidade da unidade [MB]").Map(func(mb float64) float64 { return mb / 1024 })
		if !d.CapacityGB.Valid() {
			d.CapacityGB = ParseCapacity(props.pick("Capacidade de unidade", "Drive Capacity", "Capacidade da unidade"))
		}
		key := d.Model + "|" + d.Letters
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, d)
	})
	return out
}

func extractGPUs(root *Node) []GPU {
	var out []GPU
	walk(root, func(n *Node) {
		if n.Child("Property") == nil {
			return
		}
		props := propertiesOf(n)
		g := GPU{
			Name:          n.ChildText("NodeName"),
			Chipset:       props.pick("Conjunto de chips gráficos", "Graphics Chipset", "GPU Chipset"),
			Memory:        props.pick("Memória gráfica", "Tamanho da memória", "Video Memory", "Frame Buffer"),
			Bus:           props.pick("Barramento de placa de vídeo", "Video Adapter Bus", "GPU Bus", "Graphics Bus"),
			CoreClock:     props.pick("Frequência do processador gráfico", "GPU Core Clock", "Processor Clock"),
			MemoryClock:   props.pick("Frequência de memória gráfica", "GPU Memory Clock", "Memory Clock"),
			Driver:        props.pick("Descrição do driver", "Driver Description"),
			DriverVersion: props.pick("Versão do driver", "Driver Version"),
			DriverDate:    props.pick("Data do driver", "Driver Date"),
		}
		if g.Name == "" {
			g.Name = props.pick("Placa de vídeo", "Video Adapter", "GPU Name", "Graphics Card")
		}
		if g.Name == "" {
			g.Name = g.Chipset
		}
		if g.Name == "" {
			return
		}
		out = append(out, g)
	})
	return out
}

func (d Drive) summary() string {
	parts := []string{d.Model}
	if d.Letters != "" {
		parts = append(parts, d.Letters)
	}
	if gb, ok := d.CapacityGB.Get(); ok {
		parts = append(parts, fmt.Sprintf("%.0f GB", gb))
	}
	return strings.Join(parts, " · ")
}

func (g GPU) summary() string {
	if g.Chipset == "" || g.Chipset == g.Name {
		return g.Name
	}
	return g.Name + " / " + g.Chipset
}

// Lines is the short inventory shown next to report summaries.
func (p *Profile) Lines() []string {
	if p == nil {
		return []string{"Nenhum perfil de hardware carregado."}
	}
	or := func(label, v string) string {
		if v == "" {
			return label + ": --"
		}
		return label + ": " + v
	}

	var system []string
	for _, s := range []string{p.System.Brand, p.System.Name} {
		if s != "" {
			system = append(system, s)
		}
	}
	memory := ""
	if gb, ok := p.Memory.TotalGB.Get(); ok && gb > 0 {
		memory = fmt.Sprintf("%.1f GB", gb)
	}
	drives := make([]string, 0, len(p.Drives))
	for _, d := range p.Drives {
		drives = append(drives, d.summary())
	}
	gpus := make([]string, 0, len(p.GPUs))
	for _, g := range p.GPUs {
		gpus = append(gpus, g.summary())
	}

	return []string{
		or("Sistema", strings.Join(system, " / ")),
		or("SO", p.OS.Name),
		or("CPU", p.CPU.Name),
		or("Memória", memory),
		or("Discos", strings.Join(drives, ", ")),
		or("GPU", strings.Join(gpus, ", ")),
	}
}
