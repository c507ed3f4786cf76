package sim

// Message is a typed payload exchanged between application modules.
type Message struct {
	Name         string
	Src          string // source module name
	Dst          string // destination module name
	Instructions int
	Bytes        float64
}

// Source declares periodic emission of a message from its source module.
type Source struct {
	Message      Message
	Distribution Distribution
}

// Application declares the modules deployed on the fog network and the
// messages flowing between them. Static configuration, consumed once at
// deployment.
type Application struct {
	Name    string
	Modules []string
	Sources []Source
}

// Placement maps each module name to the node IDs its instances run on, in
// declaration order. A module with several entries is deployed once per
// node, and a broadcast send targets every instance.
type Placement struct {
	Name        string
	Allocations map[string][]string
}

// InstancesOf returns the node IDs hosting the given module's instances.
func (p *Placement) InstancesOf(module string) []string {
	return p.Allocations[module]
}
