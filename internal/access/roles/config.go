// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roles

import "sort"

// # Role Configuration

// RoleConfiguration is the immutable description of what one role may use.
type RoleConfiguration struct {
	code    Code
	scope   Scope
	domains map[Domain]*DomainConfiguration
}

// Code returns the role this configuration describes.
func (c *RoleConfiguration) Code() Code { return c.code }

// Scope returns the data-visibility classifier for the role.
func (c *RoleConfiguration) Scope() Scope { return c.scope }

// Domain returns the configuration of d, or false when the role cannot use d at all.
func (c *RoleConfiguration) Domain(d Domain) (*DomainConfiguration, bool) {
	domain, ok := c.domains[d]
	return domain, ok
}

// HasDomain reports whether d is present for the role.
func (c *RoleConfiguration) HasDomain(d Domain) bool {
	_, ok := c.domains[d]
	return ok
}

// Domains lists the domains present for the role in lexical order.
func (c *RoleConfiguration) Domains() []Domain {
	names := make([]Domain, 0, len(c.domains))
	for name := range c.domains {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// # Domain Configuration

// DomainConfiguration maps the abstract capability keys of one (role, domain)
// pair to concrete capability strings, and carries its feature flags.
type DomainConfiguration struct {
	name         Domain
	capabilities map[CapKey]string
	features     map[Feature]bool
}

// Name returns the domain this configuration belongs to.
func (d *DomainConfiguration) Name() Domain { return d.name }

// Capability resolves key to its capability string. An unmapped key cannot be granted.
func (d *DomainConfiguration) Capability(key CapKey) (string, bool) {
	value, ok := d.capabilities[key]
	return value, ok
}

// Feature reports whether the flag is switched on. Unspecified flags are off.
func (d *DomainConfiguration) Feature(name Feature) bool {
	return d.features[name]
}

// Keys lists the mapped capability keys in lexical order.
func (d *DomainConfiguration) Keys() []CapKey {
	keys := make([]CapKey, 0, len(d.capabilities))
	for key := range d.capabilities {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Features lists the declared flags (on or off) in lexical order.
func (d *DomainConfiguration) Features() []Feature {
	names := make([]Feature, 0, len(d.features))
	for name := range d.features {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
