// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity keeps the dashboard activity feed in Redis.

Every mutation in a domain module appends one [Entry]. An entry lands in up to
three capped lists, one per visibility level:

	portal:activity:user:<user id>      what the actor did
	portal:activity:eco:<ecosystem id>  what happened inside the ecosystem
	portal:activity:global              everything

A reader sees the list that matches its data scope, so the feed follows the
same visibility rules as the domain tables. Feed writes never fail a request.
*/
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bizportal/internal/access/roles"
	"github.com/taibuivan/bizportal/internal/platform/constants"
	"github.com/taibuivan/bizportal/internal/platform/ctxutil"
	"github.com/taibuivan/bizportal/internal/portal"
	"github.com/taibuivan/bizportal/pkg/uuid"
)

// Entry is one line of the activity feed.
type Entry struct {
	ID       string       `json:"id"`
	Domain   roles.Domain `json:"domain"`
	Action   string       `json:"action"`
	RecordID string       `json:"record_id,omitempty"`
	Summary  string       `json:"summary,omitempty"`
	ActorID  string       `json:"actor_id"`
	At       time.Time    `json:"at"`
}

// Feed reads and writes capped activity lists.
// A nil *Feed records nothing and reads empty.
type Feed struct {
	client *redis.Client
	size   int64
}

// NewFeed creates a Feed that keeps at most size entries per list.
func NewFeed(client *redis.Client, size int64) *Feed {
	if size <= 0 {
		size = 50
	}
	return &Feed{client: client, size: size}
}

// # Keys

func userKey(userID string) string {
	return constants.RedisPrefixActivity + "user:" + userID
}

func ecosystemKey(ecosystemID string) string {
	return constants.RedisPrefixActivity + "eco:" + ecosystemID
}

func globalKey() string {
	return constants.RedisPrefixActivity + "global"
}

// keyFor returns the list a reader with scope sees, or "" when it sees none.
func keyFor(scope portal.DataScope) string {
	switch scope.Kind {
	case roles.ScopeGlobal:
		return globalKey()
	case roles.ScopeEcosystem:
		if scope.EcosystemID == "" {
			return ""
		}
		return ecosystemKey(scope.EcosystemID)
	case roles.ScopeEntity:
		if scope.UserID == "" {
			return ""
		}
		return userKey(scope.UserID)
	default:
		return ""
	}
}

// # Writes

/*
Push appends entry to every list the actor's activity belongs to.

The lists are trimmed in the same MULTI block, so none ever grows beyond the
configured size.
*/
func (f *Feed) Push(ctx context.Context, actor portal.DataScope, entry Entry) error {
	if f == nil {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.New()
	}
	if entry.ActorID == "" {
		entry.ActorID = actor.UserID
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("activity_encode_failed: %w", err)
	}

	keys := []string{globalKey()}
	if actor.UserID != "" {
		keys = append(keys, userKey(actor.UserID))
	}
	if actor.EcosystemID != "" {
		keys = append(keys, ecosystemKey(actor.EcosystemID))
	}

	_, err = f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.LPush(ctx, key, payload)
			pipe.LTrim(ctx, key, 0, f.size-1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_activity_push_failed: %w", err)
	}
	return nil
}

// Record is [Feed.Push] for call sites that must not fail: errors are logged.
func (f *Feed) Record(ctx context.Context, actor portal.DataScope, entry Entry) {
	if err := f.Push(ctx, actor, entry); err != nil {
		ctxutil.GetLogger(ctx).Warn("activity_write_failed",
			slog.String("domain", string(entry.Domain)),
			slog.String("action", entry.Action),
			slog.Any("error", err),
		)
	}
}

// # Reads

// Recent returns up to limit entries visible to scope, newest first.
func (f *Feed) Recent(ctx context.Context, scope portal.DataScope, limit int64) ([]Entry, error) {
	entries := make([]Entry, 0)

	key := keyFor(scope)
	if f == nil || key == "" || limit <= 0 {
		return entries, nil
	}
	if limit > f.size {
		limit = f.size
	}

	raw, err := f.client.LRange(ctx, key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_activity_range_failed: %w", err)
	}

	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// A corrupt line is skipped; the rest of the feed stays readable.
			ctxutil.GetLogger(ctx).Warn("activity_entry_corrupt", slog.String("key", key))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear empties the list visible to scope. Lists of other levels are kept.
func (f *Feed) Clear(ctx context.Context, scope portal.DataScope) error {
	key := keyFor(scope)
	if f == nil || key == "" {
		return nil
	}
	if err := f.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_activity_clear_failed: %w", err)
	}
	return nil
}
