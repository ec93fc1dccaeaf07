// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assignments_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/domains/assignments"
	"github.com/taibuivan/bizportal/internal/platform/apperr"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/internal/portal/portaltest"
)

type job struct {
	ownerID, ecosystemID string
}

type memoryStore struct {
	jobs        map[string]*job
	assignments map[string]*assignments.Assignment
}

func (m *memoryStore) List(_ context.Context, scope portal.DataScope, _, _ int) ([]*assignments.Assignment, int, error) {
	out := make([]*assignments.Assignment, 0)
	for _, assignment := range m.assignments {
		if scope.Allows(assignment.AssigneeID, assignment.EcosystemID) {
			out = append(out, assignment)
		}
	}
	return out, len(out), nil
}

func (m *memoryStore) Upsert(_ context.Context, scope portal.DataScope, assignment *assignments.Assignment) error {
	key := string(assignment.JobType) + "/" + assignment.JobID
	target, ok := m.jobs[key]
	if !ok || !scope.Allows(target.ownerID, target.ecosystemID) {
		return apperr.NotFound("Job")
	}
	target.ownerID = assignment.AssigneeID
	assignment.EcosystemID = target.ecosystemID

	if existing, ok := m.assignments[key]; ok {
		assignment.ID = existing.ID
	}
	m.assignments[key] = assignment
	return nil
}

var manager = portal.DataScope{Kind: roles.ScopeEcosystem, UserID: "MGR-001", EcosystemID: "ECO-1"}

func newFixture() (*memoryStore, http.Handler) {
	store := &memoryStore{
		jobs: map[string]*job{
			"service/s-1":  {ownerID: "CTR-001", ecosystemID: "ECO-1"},
			"delivery/d-1": {ownerID: "CRW-001", ecosystemID: "ECO-2"},
		},
		assignments: map[string]*assignments.Assignment{},
	}
	return store, portaltest.Router(assignments.NewModule(assignments.NewService(store, nil)), manager)
}

/*
TestAssign_Reassigns verifies a second assignment replaces the first and
moves job ownership.
*/
func TestAssign_Reassigns(t *testing.T) {
	store, router := newFixture()

	recorder := portaltest.Do(t, router, http.MethodPost, "/", map[string]any{"job_type": "service", "job_id": "s-1", "assignee_id": "ctr-002"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var first assignments.Assignment
	portaltest.Data(t, recorder, &first)
	assert.Equal(t, "CTR-002", first.AssigneeID)
	assert.Equal(t, "ECO-1", first.EcosystemID)
	assert.Equal(t, "MGR-001", first.AssignedBy)

	recorder = portaltest.Do(t, router, http.MethodPost, "/", map[string]any{"job_type": "service", "job_id": "s-1", "assignee_id": "CTR-003"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var second assignments.Assignment
	portaltest.Data(t, recorder, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "CTR-003", store.jobs["service/s-1"].ownerID)

	recorder = portaltest.Do(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, 1, portaltest.Decode(t, recorder).Meta["total"])
}

/*
TestAssign_Rejects verifies input validation and job visibility.
*/
func TestAssign_Rejects(t *testing.T) {
	_, router := newFixture()

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown job type", map[string]any{"job_type": "order", "job_id": "s-1", "assignee_id": "CTR-002"}, http.StatusBadRequest},
		{"bad assignee", map[string]any{"job_type": "service", "job_id": "s-1", "assignee_id": "nobody"}, http.StatusBadRequest},
		{"missing job id", map[string]any{"job_type": "service", "assignee_id": "CTR-002"}, http.StatusBadRequest},
		{"other ecosystem", map[string]any{"job_type": "delivery", "job_id": "d-1", "assignee_id": "CRW-002"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := portaltest.Do(t, router, http.MethodPost, "/", tt.body)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}
