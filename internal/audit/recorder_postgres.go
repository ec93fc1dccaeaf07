// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bizportal/internal/platform/database/schema"
)

// PostgresRecorder writes entries into system.auditlog.
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder returns a recorder backed by pool.
func NewPostgresRecorder(pool *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{pool: pool}
}

// Record persists the entry.
func (recorder *PostgresRecorder) Record(ctx context.Context, entry Entry) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("audit_id_generation_failed: %w", err)
	}

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("audit_details_encode_failed: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9)`,
		schema.SystemAuditLog.Table,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.ActorID, schema.SystemAuditLog.Action,
		schema.SystemAuditLog.Role, schema.SystemAuditLog.Capability, schema.SystemAuditLog.IPAddress,
		schema.SystemAuditLog.UserAgent, schema.SystemAuditLog.Details, schema.SystemAuditLog.CreatedAt,
	)

	_, err = recorder.pool.Exec(ctx, query,
		id,
		entry.ActorID,
		string(entry.Action),
		entry.Role,
		entry.Capability,
		entry.IPAddress,
		entry.UserAgent,
		details,
		entry.At,
	)
	if err != nil {
		return fmt.Errorf("postgres_audit_insert_failed: %w", err)
	}
	return nil
}
