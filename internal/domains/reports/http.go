// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/platform/respond"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/convert"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 366
)

// Module is the reports [portal.Module].
type Module struct {
	service *Service
}

// NewModule creates the reports module.
func NewModule(service *Service) *Module {
	return &Module{service: service}
}

// Domain implements [portal.Module].
func (module *Module) Domain() roles.Domain { return roles.DomainReports }

// Routes implements [portal.Module].
func (module *Module) Routes() []portal.Route {
	return []portal.Route{
		{Method: http.MethodGet, Pattern: "/summary", Keys: []roles.CapKey{roles.KeyView}, Handle: module.summary},
		{Method: http.MethodGet, Pattern: "/export", Keys: []roles.CapKey{roles.KeyExport}, Feature: roles.FeatureExport, Handle: module.export},
	}
}

// since reads the ?days window and turns it into a lower bound.
func (module *Module) since(request *http.Request) (time.Time, error) {
	days := convert.ToIntD(request.URL.Query().Get("days"), defaultWindowDays)

	v := &validate.Validator{}
	v.Range("days", days, 1, maxWindowDays)
	if err := v.Err(); err != nil {
		return time.Time{}, err
	}
	return module.service.now().UTC().AddDate(0, 0, -days), nil
}

func (module *Module) summary(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	since, err := module.since(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := module.service.Summary(request.Context(), scope, since)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

func (module *Module) export(writer http.ResponseWriter, request *http.Request, scope portal.DataScope) {
	since, err := module.since(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	rows, err := module.service.Export(request.Context(), scope, since)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.csv", module.service.now().UTC().Format("20060102"))
	writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writer.WriteHeader(http.StatusOK)

	// Headers are gone at this point, so a failure can only be logged.
	if err := WriteOrdersCSV(writer, rows); err != nil {
		ctxutil.GetLogger(request.Context()).Error("report_export_write_failed", slog.Any("error", err))
	}
}
