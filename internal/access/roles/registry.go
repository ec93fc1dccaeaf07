// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package roles

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/bizportal/internal/access/capability"
)

//go:embed roles.yaml
var defaultDefinitions []byte

// # Definition File Schema

type definitionFile struct {
	Roles map[string]roleDefinition `yaml:"roles"`
}

type roleDefinition struct {
	Scope   string                      `yaml:"scope"`
	Domains map[string]domainDefinition `yaml:"domains"`
}

type domainDefinition struct {
	Capabilities map[string]string `yaml:"capabilities"`
	Features     map[string]bool   `yaml:"features"`
}

// # Registry

// Registry is the process-wide, read-only table of role configurations.
//
// # Concurrency
//
// A Registry is never mutated after [Load] returns, so it is safe for
// concurrent use by any number of requests without locking.
type Registry struct {
	roles map[Code]*RoleConfiguration
}

// Default builds the registry from the embedded role definitions.
func Default() (*Registry, error) {
	return Load(defaultDefinitions)
}

// Load decodes and validates a role definition document.
//
// Unknown YAML fields, role codes, scopes, domains, capability strings and
// features are rejected so that a typo fails at startup rather than silently
// resolving to "no access" or, worse, to an unchecked value.
func Load(data []byte) (*Registry, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file definitionFile
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("roles: failed to decode definitions: %w", err)
	}

	if len(file.Roles) == 0 {
		return nil, errors.New("roles: definitions declare no roles")
	}

	registry := &Registry{roles: make(map[Code]*RoleConfiguration, len(file.Roles))}
	for rawCode, definition := range file.Roles {
		code, ok := ParseCode(rawCode)
		if !ok || string(code) != rawCode {
			return nil, fmt.Errorf("roles: unknown role code %q", rawCode)
		}

		config, err := buildRole(code, definition)
		if err != nil {
			return nil, err
		}
		registry.roles[code] = config
	}

	return registry, nil
}

func buildRole(code Code, definition roleDefinition) (*RoleConfiguration, error) {
	scope := Scope(definition.Scope)
	if !scope.valid() {
		return nil, fmt.Errorf("roles: %s: invalid scope %q", code, definition.Scope)
	}

	config := &RoleConfiguration{
		code:    code,
		scope:   scope,
		domains: make(map[Domain]*DomainConfiguration, len(definition.Domains)),
	}

	for rawDomain, domainDef := range definition.Domains {
		domain := Domain(rawDomain)
		if !IsDomain(domain) {
			return nil, fmt.Errorf("roles: %s: unknown domain %q", code, rawDomain)
		}

		domainConfig := &DomainConfiguration{
			name:         domain,
			capabilities: make(map[CapKey]string, len(domainDef.Capabilities)),
			features:     make(map[Feature]bool, len(domainDef.Features)),
		}

		for rawKey, value := range domainDef.Capabilities {
			if strings.TrimSpace(rawKey) == "" {
				return nil, fmt.Errorf("roles: %s.%s: empty capability key", code, domain)
			}
			if !capability.IsKnown(value) {
				return nil, fmt.Errorf("roles: %s.%s.%s: unknown capability %q", code, domain, rawKey, value)
			}
			// A domain may only hand out capabilities of its own namespace.
			if !strings.HasPrefix(value, string(domain)+":") {
				return nil, fmt.Errorf("roles: %s.%s.%s: capability %q belongs to another domain", code, domain, rawKey, value)
			}
			domainConfig.capabilities[CapKey(rawKey)] = value
		}

		for rawFeature, enabled := range domainDef.Features {
			feature := Feature(rawFeature)
			if !domainHasFeature(domain, feature) {
				return nil, fmt.Errorf("roles: %s.%s: unknown feature %q", code, domain, rawFeature)
			}
			domainConfig.features[feature] = enabled
		}

		config.domains[domain] = domainConfig
	}

	return config, nil
}

// ConfigurationFor returns the configuration of code, or nil when the role has
// no entry. Callers must treat nil as "role not found", never as "unrestricted".
func (r *Registry) ConfigurationFor(code Code) *RoleConfiguration {
	if r == nil {
		return nil
	}
	return r.roles[code]
}

// Codes lists the configured roles in lexical order.
func (r *Registry) Codes() []Code {
	codes := make([]Code, 0, len(r.roles))
	for code := range r.roles {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// DeclaresKey reports whether any role maps key inside domain.
func (r *Registry) DeclaresKey(domain Domain, key CapKey) bool {
	for _, config := range r.roles {
		if domainConfig, ok := config.Domain(domain); ok {
			if _, mapped := domainConfig.Capability(key); mapped {
				return true
			}
		}
	}
	return false
}

// DeclaresFeature reports whether any role sets feature, on or off, inside domain.
func (r *Registry) DeclaresFeature(domain Domain, feature Feature) bool {
	for _, config := range r.roles {
		if domainConfig, ok := config.Domain(domain); ok {
			if _, declared := domainConfig.features[feature]; declared {
				return true
			}
		}
	}
	return false
}
