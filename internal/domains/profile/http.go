// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"

	"github.com/taibuivan/bizportal/internal/access/roles"
	requestutil "github.com/taibuivan/bizportal/internal/platform/request"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Module is the profile [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the profile module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainProfile }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/", Keys: []roles.CapKey{roles.KeyView}, Handle: module.getProfile},
		{Method: http.MethodPatch, Pattern: "/", Keys: []roles.CapKey{roles.KeyUpdate}, Feature: roles.FeatureEditProfile, Handle: module.updateProfile},
	}
}

func (module *Module) getProfile(writer http.ResponseWriter, request *http.Request, _ portal.DataScope) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := module.service.Get(request.Context(), caller)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (module *Module) updateProfile(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	var patch Patch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := module.service.Update(request.Context(), scope, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
