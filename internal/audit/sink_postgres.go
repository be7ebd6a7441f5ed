package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the audit trail DDL, applied by deployment tooling and by
// integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	partition_key    TEXT        NOT NULL,
	row_key          TEXT        NOT NULL,
	auth_level       TEXT        NOT NULL,
	citizen          TEXT,
	email            TEXT,
	operation_name   TEXT        NOT NULL,
	query_param_type TEXT,
	client_ip        TEXT,
	user_agent       TEXT,
	recorded_at      TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (partition_key, row_key)
)`

// PostgresSink persists audit records in a relational table. The upsert on
// the primary key makes retried requests overwrite their own row.
type PostgresSink struct {
	db    *sql.DB
	table string
}

// NewPostgresSink constructs a sink writing to the given table.
func NewPostgresSink(db *sql.DB, table string) *PostgresSink {
	if table == "" {
		table = "audit_log"
	}
	return &PostgresSink{db: db, table: table}
}

// InsertOrReplace upserts the record on (partition_key, row_key).
func (s *PostgresSink) InsertOrReplace(ctx context.Context, record Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			partition_key, row_key, auth_level, citizen, email,
			operation_name, query_param_type, client_ip, user_agent, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (partition_key, row_key) DO UPDATE SET
			auth_level       = EXCLUDED.auth_level,
			citizen          = EXCLUDED.citizen,
			email            = EXCLUDED.email,
			operation_name   = EXCLUDED.operation_name,
			query_param_type = EXCLUDED.query_param_type,
			client_ip        = EXCLUDED.client_ip,
			user_agent       = EXCLUDED.user_agent,
			recorded_at      = EXCLUDED.recorded_at
	`, s.table)

	var citizen *string
	if record.Citizen != "" {
		v := record.Citizen.String()
		citizen = &v
	}

	_, err := s.db.ExecContext(ctx, query,
		record.PartitionKey,
		record.RowKey,
		string(record.AuthLevel),
		citizen,
		record.Email,
		record.OperationName,
		record.QueryParamType,
		record.ClientIP,
		record.UserAgent,
		record.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
