// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package roles implements the Role Registry: the read-only table mapping every
role code to the declarative configuration of the domains, capability keys and
feature flags that role may use.

Architecture:

  - Closed vocabulary: role codes, scopes, domains, capability keys and features
    are typed constants declared here.
  - Fixed source: the table is an embedded YAML file decoded and validated once,
    at startup. Any unknown name fails the process instead of resolving to a zero value.
  - Immutable: configurations expose accessor methods only and may be shared by
    every concurrent request without locking.
  - Deny-by-default: an absent role, domain, key or feature is always a denial.
*/
package roles

import "strings"

// # Role Codes

// Code identifies one organizational role.
type Code string

const (
	// Unrestricted platform administration
	RoleAdmin Code = "admin"

	// Regional manager overseeing an ecosystem of contractors and centers
	RoleManager Code = "manager"

	// Contractor operating inside a manager's ecosystem
	RoleContractor Code = "contractor"

	// End customer; sees only their own records
	RoleCustomer Code = "customer"

	// Service center executing work orders for its ecosystem
	RoleCenter Code = "center"

	// Field crew member assigned to individual jobs
	RoleCrew Code = "crew"

	// Warehouse operator managing stock and dispatch
	RoleWarehouse Code = "warehouse"
)

var allCodes = []Code{RoleAdmin, RoleManager, RoleContractor, RoleCustomer, RoleCenter, RoleCrew, RoleWarehouse}

// ParseCode normalizes raw and reports whether it names a declared role.
//
// A declared role may still be missing from the registry; callers must check
// [Registry.ConfigurationFor] separately.
func ParseCode(raw string) (Code, bool) {
	candidate := Code(strings.ToLower(strings.TrimSpace(raw)))
	for _, code := range allCodes {
		if code == candidate {
			return code, true
		}
	}
	return "", false
}

// # Scope Classifiers

// Scope determines how much data a role may see.
type Scope string

const (
	// ScopeGlobal sees every record.
	ScopeGlobal Scope = "global"
	// ScopeEcosystem sees records inside its own sub-tree.
	ScopeEcosystem Scope = "ecosystem"
	// ScopeEntity sees only records it owns.
	ScopeEntity Scope = "entity"
)

func (s Scope) valid() bool {
	return s == ScopeGlobal || s == ScopeEcosystem || s == ScopeEntity
}

// # Domains

// Domain names one shared business module.
type Domain string

const (
	DomainDashboard   Domain = "dashboard"
	DomainCatalog     Domain = "catalog"
	DomainOrders      Domain = "orders"
	DomainServices    Domain = "services"
	DomainInventory   Domain = "inventory"
	DomainDeliveries  Domain = "deliveries"
	DomainReports     Domain = "reports"
	DomainSupport     Domain = "support"
	DomainDirectory   Domain = "directory"
	DomainProfile     Domain = "profile"
	DomainArchive     Domain = "archive"
	DomainAssignments Domain = "assignments"
)

// # Capability Keys

// CapKey is the abstract, domain-local name of a capability (e.g. "view").
type CapKey string

const (
	KeyView    CapKey = "view"
	KeyManage  CapKey = "manage"
	KeyCreate  CapKey = "create"
	KeyApprove CapKey = "approve"
	KeyCancel  CapKey = "cancel"
	KeyUpdate  CapKey = "update"
	KeyAdjust  CapKey = "adjust"
	KeyExport  CapKey = "export"
	KeyRespond CapKey = "respond"
	KeyRestore CapKey = "restore"
	KeyAssign  CapKey = "assign"
)

// # Feature Flags

// Feature names an optional sub-behavior of a domain.
type Feature string

const (
	FeatureKPIs          Feature = "kpis"
	FeatureActivity      Feature = "activity"
	FeatureClearActivity Feature = "clearActivity"
	FeatureEditItems     Feature = "editItems"
	FeatureApprovals     Feature = "approvals"
	FeatureCancellation  Feature = "cancellation"
	FeatureStatusUpdates Feature = "statusUpdates"
	FeatureAdjustments   Feature = "adjustments"
	FeatureExport        Feature = "export"
	FeatureReplies       Feature = "replies"
	FeatureArchiveUsers  Feature = "archiveUsers"
	FeatureOverrides     Feature = "overrides"
	FeatureEditProfile   Feature = "editProfile"
	FeatureRestore       Feature = "restore"
	FeatureReassign      Feature = "reassign"
)

// domainFeatures declares which feature names each domain understands.
var domainFeatures = map[Domain][]Feature{
	DomainDashboard:   {FeatureKPIs, FeatureActivity, FeatureClearActivity},
	DomainCatalog:     {FeatureEditItems},
	DomainOrders:      {FeatureApprovals, FeatureCancellation},
	DomainServices:    {FeatureStatusUpdates},
	DomainInventory:   {FeatureAdjustments},
	DomainDeliveries:  {FeatureStatusUpdates},
	DomainReports:     {FeatureExport},
	DomainSupport:     {FeatureReplies},
	DomainDirectory:   {FeatureArchiveUsers, FeatureOverrides},
	DomainProfile:     {FeatureEditProfile},
	DomainArchive:     {FeatureRestore},
	DomainAssignments: {FeatureReassign},
}

// IsDomain reports whether d is a declared domain.
func IsDomain(d Domain) bool {
	_, ok := domainFeatures[d]
	return ok
}

func domainHasFeature(d Domain, f Feature) bool {
	for _, candidate := range domainFeatures[d] {
		if candidate == f {
			return true
		}
	}
	return false
}
