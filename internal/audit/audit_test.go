// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bizportal/internal/audit"
)

type memoryRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
	ctxErrs []error
	err     error
}

func (m *memoryRecorder) Record(ctx context.Context, entry audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	return m.err
}

/*
TestTrail_EmitSurvivesRequestCancellation verifies an entry emitted from a
request that is already finished still reaches the recorder.
*/
func TestTrail_EmitSurvivesRequestCancellation(t *testing.T) {
	recorder := &memoryRecorder{}
	trail := audit.NewTrail(recorder, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trail.Emit(ctx, audit.Entry{ActorID: "MGR-001", Action: audit.ActionAuthSuccess})
	trail.Wait()

	require.Len(t, recorder.entries, 1)
	assert.NoError(t, recorder.ctxErrs[0])
	assert.False(t, recorder.entries[0].At.IsZero())
}

/*
TestTrail_FailuresAreSwallowed verifies recorder errors and invalid entries
never surface to the caller.
*/
func TestTrail_FailuresAreSwallowed(t *testing.T) {
	recorder := &memoryRecorder{err: errors.New("disk full")}
	trail := audit.NewTrail(recorder, 0)

	assert.NotPanics(t, func() {
		trail.Emit(context.Background(), audit.Entry{ActorID: "MGR-001", Action: audit.ActionCapabilityUse})
		trail.Emit(context.Background(), audit.Entry{Action: audit.ActionCapabilityUse})
		trail.Wait()
	})

	// The invalid entry never reaches storage.
	assert.Len(t, recorder.entries, 1)
}

/*
TestTrail_NilIsNoop keeps optional wiring cheap.
*/
func TestTrail_NilIsNoop(t *testing.T) {
	var trail *audit.Trail
	assert.NotPanics(t, func() {
		trail.Emit(context.Background(), audit.Entry{ActorID: "X", Action: audit.ActionAuthSuccess})
		trail.Wait()
	})
}
