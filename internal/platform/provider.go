package platform

import (
	"errors"
	"fmt"
)

// Provider bundles the capabilities one session drives.
type Provider struct {
	Backend       Backend
	Browser       Browser
	System        System
	Screenshotter Screenshotter
	Inputter      Inputter
	Automation    Automation
}

// ErrUnsupported is returned when a capability has no implementation.
var ErrUnsupported = errors.New("capability not supported by the configured driver")

// Validate reports the first capability left unset.
func (p *Provider) Validate() error {
	if p == nil {
		return fmt.Errorf("provider: %w", ErrUnsupported)
	}
	checks := []struct {
		name string
		set  bool
	}{
		{"backend", p.Backend != nil},
		{"browser", p.Browser != nil},
		{"system", p.System != nil},
		{"screenshot", p.Screenshotter != nil},
		{"input", p.Inputter != nil},
		{"automation", p.Automation != nil},
	}
	for _, c := range checks {
		if !c.set {
			return fmt.Errorf("%s: %w", c.name, ErrUnsupported)
		}
	}
	return nil
}

// NewProviderFunc builds the provider for a run. cmd sets it from config;
// tests replace it with fakes.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns the configured Provider.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	p, err := NewProviderFunc()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
