// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package capability declares the closed set of capability strings understood by the
portal and the [Set] type used to hold a caller's effective grants.

Capabilities are process-wide constants. They are never created at runtime: role
defaults and user overrides stored in the database may only reference names
declared here, and the role registry refuses to start with anything else.
*/
package capability

import "sort"

// # Capability Catalogue

const (
	DashboardView   = "dashboard:view"
	DashboardManage = "dashboard:manage"

	CatalogView   = "catalog:view"
	CatalogManage = "catalog:manage"

	OrdersView    = "orders:view"
	OrdersCreate  = "orders:create"
	OrdersApprove = "orders:approve"
	OrdersCancel  = "orders:cancel"

	ServicesView   = "services:view"
	ServicesManage = "services:manage"

	InventoryView   = "inventory:view"
	InventoryAdjust = "inventory:adjust"

	DeliveriesView   = "deliveries:view"
	DeliveriesUpdate = "deliveries:update"

	ReportsView   = "reports:view"
	ReportsExport = "reports:export"

	SupportView    = "support:view"
	SupportCreate  = "support:create"
	SupportRespond = "support:respond"

	DirectoryView   = "directory:view"
	DirectoryManage = "directory:manage"

	ProfileView   = "profile:view"
	ProfileUpdate = "profile:update"

	ArchiveView    = "archive:view"
	ArchiveRestore = "archive:restore"

	AssignmentsView   = "assignments:view"
	AssignmentsAssign = "assignments:assign"
)

var known = NewSet(
	DashboardView, DashboardManage,
	CatalogView, CatalogManage,
	OrdersView, OrdersCreate, OrdersApprove, OrdersCancel,
	ServicesView, ServicesManage,
	InventoryView, InventoryAdjust,
	DeliveriesView, DeliveriesUpdate,
	ReportsView, ReportsExport,
	SupportView, SupportCreate, SupportRespond,
	DirectoryView, DirectoryManage,
	ProfileView, ProfileUpdate,
	ArchiveView, ArchiveRestore,
	AssignmentsView, AssignmentsAssign,
)

// highPrivilege lists the capabilities whose successful use is written to the audit trail.
var highPrivilege = NewSet(
	DashboardManage,
	OrdersApprove,
	InventoryAdjust,
	DirectoryManage,
	ArchiveRestore,
	AssignmentsAssign,
)

// IsKnown reports whether name is a declared capability.
func IsKnown(name string) bool {
	return known.Has(name)
}

// IsHighPrivilege reports whether successful use of name must be audited.
func IsHighPrivilege(name string) bool {
	return highPrivilege.Has(name)
}

// All returns every declared capability in lexical order.
func All() []string {
	return known.Sorted()
}

// # Capability Sets

// Set is an unordered collection of capability strings.
//
// The zero value is an empty set ready for reads; use [NewSet] before writing.
type Set map[string]struct{}

// NewSet builds a set from the given names.
func NewSet(names ...string) Set {
	set := make(Set, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes name. Removing an absent name is a no-op.
func (s Set) Remove(name string) {
	delete(s, name)
}

// Len returns the number of capabilities in the set.
func (s Set) Len() int {
	return len(s)
}

// HasAll reports whether every name is present. An empty argument list is never satisfied.
func (s Set) HasAll(names ...string) bool {
	if len(names) == 0 {
		return false
	}
	for _, name := range names {
		if !s.Has(name) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one name is present.
func (s Set) HasAny(names ...string) bool {
	for _, name := range names {
		if s.Has(name) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for name := range s {
		clone[name] = struct{}{}
	}
	return clone
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both sets hold exactly the same members.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for name := range s {
		if !other.Has(name) {
			return false
		}
	}
	return true
}
