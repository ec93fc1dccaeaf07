// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit records security-relevant events: successful authentications and
uses of high-privilege capabilities.

Writes are fire-and-forget. An entry is handed to a background goroutine that
runs detached from the request's cancellation with its own deadline. A failed
write is logged and dropped; it never changes the outcome of the request.
*/
package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
)

// Action classifies an audit entry.
type Action string

const (
	ActionAuthSuccess   Action = "auth_success"
	ActionCapabilityUse Action = "capability_use"
)

const defaultWriteTimeout = 5 * time.Second

// Entry is one audit record.
type Entry struct {
	ActorID    string
	Action     Action
	Role       string
	Capability string
	IPAddress  string
	UserAgent  string
	Details    map[string]any
	At         time.Time
}

func (e Entry) validate() error {
	if e.ActorID == "" || e.Action == "" {
		return errors.New("audit: entry requires actor and action")
	}
	return nil
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// # Trail

// Trail dispatches entries to a [Recorder] asynchronously.
// A nil *Trail discards everything, which keeps call sites free of nil checks.
type Trail struct {
	recorder Recorder
	timeout  time.Duration
	inflight sync.WaitGroup
}

// NewTrail creates a Trail. A non-positive timeout uses the default.
func NewTrail(recorder Recorder, timeout time.Duration) *Trail {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Trail{recorder: recorder, timeout: timeout}
}

// Emit schedules entry for writing and returns immediately.
func (t *Trail) Emit(ctx context.Context, entry Entry) {
	if t == nil || t.recorder == nil {
		return
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	logger := ctxutil.GetLogger(ctx)
	detached := context.WithoutCancel(ctx)

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()

		writeCtx, cancel := context.WithTimeout(detached, t.timeout)
		defer cancel()

		err := entry.validate()
		if err == nil {
			err = t.recorder.Record(writeCtx, entry)
		}
		if err != nil {
			logger.Warn("audit_write_failed",
				slog.String("action", string(entry.Action)),
				slog.String("actor_id", entry.ActorID),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until every emitted entry has been written or dropped.
// Called during shutdown so in-flight writes are not cut off.
func (t *Trail) Wait() {
	if t == nil {
		return
	}
	t.inflight.Wait()
}
