// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bizportal/internal/platform/constants"
	"github.com/taibuivan/bizportal/internal/platform/respond"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthDependencies names the checks run by /ready. Nil checks are skipped.
type HealthDependencies struct {
	Database HealthCheck
	Cache    HealthCheck
}

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready handlers.
//
// /health answers as long as the process runs. /ready answers 503 when any
// dependency fails, so the orchestrator stops routing traffic here.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check HealthCheck
	}{
		{"postgres", handler.dependencies.Database},
		{"redis", handler.dependencies.Cache},
	}

	results := make([]checkResult, 0, len(checks))
	ready := true
	for _, c := range checks {
		if c.check == nil {
			continue
		}
		result := checkResult{Name: c.name, OK: true}
		if err := c.check(request.Context()); err != nil {
			result.OK = false
			result.Error = err.Error()
			ready = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", c.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}
