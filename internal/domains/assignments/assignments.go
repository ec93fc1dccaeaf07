// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assignments hands service jobs and deliveries to field accounts.

A job has at most one assignment. Assigning an already assigned job replaces
the assignee and moves ownership of the job to the new account, which is what
makes the job visible to an entity-scoped crew or contractor.
*/
package assignments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/bizportal/internal/access/identity"
	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/activity"
	"github.com/taibuivan/bizportal/internal/platform/validate"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/uuid"
)

// JobType names the table an assignment points into.
type JobType string

const (
	JobService  JobType = "service"
	JobDelivery JobType = "delivery"
)

// JobTypes lists every job type, for validation.
var JobTypes = []string{string(JobService), string(JobDelivery)}

// Assignment links one job to one assignee.
type Assignment struct {
	ID          string    `json:"id"`
	JobType     JobType   `json:"job_type"`
	JobID       string    `json:"job_id"`
	AssigneeID  string    `json:"assignee_id"`
	EcosystemID string    `json:"ecosystem_id,omitempty"`
	AssignedBy  string    `json:"assigned_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssignInput is the payload of POST /assignments.
type AssignInput struct {
	JobType    string `json:"job_type"`
	JobID      string `json:"job_id"`
	AssigneeID string `json:"assignee_id"`
}

// Store persists assignments.
type Store interface {
	// List returns assignments visible to scope, assignee as owner.
	List(ctx context.Context, scope portal.DataScope, limit, offset int) ([]*Assignment, int, error)

	// Upsert assigns a job visible to scope, replacing any earlier assignee.
	// A job outside the scope, or a missing one, is NOT_FOUND.
	Upsert(ctx context.Context, scope portal.DataScope, assignment *Assignment) error
}

// Service implements assignment use cases.
type Service struct {
	store Store
	feed  *activity.Feed
}

// NewService creates an assignments Service. feed may be nil.
func NewService(store Store, feed *activity.Feed) *Service {
	return &Service{store: store, feed: feed}
}

// List returns one page of visible assignments.
func (service *Service) List(ctx context.Context, scope portal.DataScope, limit, offset int) ([]*Assignment, int, error) {
	return service.store.List(ctx, scope, limit, offset)
}

// Assign creates or replaces the assignment of one job.
func (service *Service) Assign(ctx context.Context, scope portal.DataScope, input AssignInput) (*Assignment, error) {
	input.JobID = strings.TrimSpace(input.JobID)
	input.AssigneeID = identity.NormalizeID(input.AssigneeID)

	v := &validate.Validator{}
	v.OneOf("job_type", input.JobType, JobTypes...)
	v.Required("job_id", input.JobID)
	v.AccountID("assignee_id", input.AssigneeID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		ID:         uuid.New(),
		JobType:    JobType(input.JobType),
		JobID:      input.JobID,
		AssigneeID: input.AssigneeID,
		AssignedBy: scope.UserID,
	}
	if err := service.store.Upsert(ctx, scope, assignment); err != nil {
		return nil, err
	}

	service.feed.Record(ctx, scope, activity.Entry{
		Domain: roles.DomainAssignments, Action: "job_assigned", RecordID: assignment.JobID,
		Summary: fmt.Sprintf("%s → %s", assignment.JobType, assignment.AssigneeID),
	})
	return assignment, nil
}
