package cargo

// Probe checks whether cargo is installed.
type Probe struct {
	// Tool is the executable to look for. Empty means DefaultBinary.
	Tool string

	// Which is the lookup command run on unix. Empty means "which".
	Which string
}

// NewProbe returns a probe for the default cargo binary.
func NewProbe() *Probe {
	return &Probe{}
}

func (p *Probe) which() string {
	if p.Which == "" {
		return "which"
	}
	return p.Which
}
