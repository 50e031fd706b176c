//go:build windows

package cargo

import "context"

// Available is not implemented on Windows.
func (p *Probe) Available(_ context.Context) (bool, error) {
	return false, ErrProbeNotImplemented
}
