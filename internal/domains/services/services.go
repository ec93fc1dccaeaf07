// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package services tracks field service jobs and their progress.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
)

// Status is the progress of a job.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status.
var Statuses = []string{string(StatusScheduled), string(StatusInProgress), string(StatusCompleted), string(StatusCancelled)}

// predecessors maps a target status to the statuses it may be reached from.
var predecessors = map[Status][]Status{
	StatusInProgress: {StatusScheduled},
	StatusCompleted:  {StatusInProgress},
	StatusCancelled:  {StatusScheduled, StatusInProgress},
}

// Job is one unit of field work.
type Job struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	EcosystemID  string     `json:"ecosystem_id,omitempty"`
	Title        string     `json:"title"`
	Status       Status     `json:"status"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StatusInput is the payload of POST /services/{id}/status.
type StatusInput struct {
	Status Status `json:"status"`
}

// Store persists jobs.
type Store interface {
	List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Job, int, error)
	Get(ctx context.Context, scope portal.DataScope, id string) (*Job, error)

	// Transition returns NOT_FOUND when no visible job with one of from matched.
	Transition(ctx context.Context, scope portal.DataScope, id string, from []Status, to Status) (*Job, error)
}

// Service implements job use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates a services Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible jobs.
func (service *Service) List(ctx context.Context, scope portal.DataScope, statuses []string, limit, offset int) ([]*Job, int, error) {
	v := &validate.Validator{}
	for _, status := range statuses {
		v.OneOf("status", status, Statuses...)
	}
	if err := v.Err(); err != nil {
		return nil, 0, err
	}
	return service.store.List(ctx, scope, statuses, limit, offset)
}

// UpdateStatus advances a visible job to status.
func (service *Service) UpdateStatus(ctx context.Context, scope portal.DataScope, id string, status Status) (*Job, error) {
	from, ok := predecessors[status]
	if !ok {
		return nil, validate.RequiredError("status", "Must be one of: in_progress, completed, cancelled")
	}

	job, err := service.store.Transition(ctx, scope, id, from, status)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		current, getErr := service.store.Get(ctx, scope, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, apperr.Conflict(fmt.Sprintf("Job is %s and cannot become %s", current.Status, status)).
			WithDetails(map[string]any{"status": current.Status})
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainServices, Action: "job_" + string(status), RecordID: job.ID, Summary: job.Title,
	})
	return job, nil
}
