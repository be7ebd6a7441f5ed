// Package audit records every guarded citizen-data access before the access
// happens. A row that cannot be written aborts the operation; citizen data is
// never served without its trail entry.
package audit

import (
	"context"
	"time"

	"citizengw/pkg/domain"
)

// AuthLevel records which authorization path cleared the access.
type AuthLevel string

const (
	// AuthLevelAdmin marks direct fiscal-code access by a privileged operator.
	AuthLevelAdmin AuthLevel = "Admin"
	// AuthLevelSupport marks access delegated through a support token.
	AuthLevelSupport AuthLevel = "Support"
)

// Record is one audit trail entry. Rows are keyed by (PartitionKey, RowKey)
// and writes are idempotent, so a retried request overwrites its own row
// rather than duplicating it.
type Record struct {
	AuthLevel AuthLevel
	// Citizen is the addressed fiscal code; populated only on the admin
	// path, the support path is already bound to one citizen by its token.
	Citizen domain.FiscalCode
	// Email is the operator's primary email when the identity provider
	// supplied one.
	Email         string
	OperationName string
	// PartitionKey is the operator's directory object identifier.
	PartitionKey string
	// RowKey is the request correlation ID.
	RowKey string
	// QueryParamType names the identifier form the operator supplied.
	QueryParamType string
	ClientIP       string
	UserAgent      string
	RecordedAt     time.Time
}

// Sink persists audit records.
type Sink interface {
	// InsertOrReplace upserts the record on its (PartitionKey, RowKey) key.
	InsertOrReplace(ctx context.Context, record Record) error
}

// NewRecord assembles a trail entry for an access resolved from the given
// identifier source.
func NewRecord(operator domain.Operator, fiscalCode domain.FiscalCode, source domain.CitizenIDKind, operationName, requestID string) Record {
	record := Record{
		AuthLevel:      AuthLevelSupport,
		Email:          operator.PrimaryEmail(),
		OperationName:  operationName,
		PartitionKey:   operator.OID,
		RowKey:         requestID,
		QueryParamType: string(source),
	}
	if source == domain.CitizenIDKindFiscalCode {
		record.AuthLevel = AuthLevelAdmin
		record.Citizen = fiscalCode
	}
	return record
}
