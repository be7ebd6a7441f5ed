package audit

import (
	"context"
	"log/slog"

	dErrors "citizengw/pkg/domain-errors"
	"citizengw/pkg/requestcontext"
)

// Mirror fans a persisted record out to a secondary destination. Mirrors are
// best-effort; failures never affect the guarded operation.
type Mirror interface {
	Publish(ctx context.Context, record Record)
}

// Auditor wraps operations with a write-then-call audit guarantee.
type Auditor struct {
	sink   Sink
	mirror Mirror
	logger *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithMirror attaches a best-effort secondary destination.
func WithMirror(mirror Mirror) AuditorOption {
	return func(a *Auditor) {
		a.mirror = mirror
	}
}

// NewAuditor constructs an Auditor over the given sink.
func NewAuditor(sink Sink, logger *slog.Logger, opts ...AuditorOption) *Auditor {
	a := &Auditor{sink: sink, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithAudit persists the record and then invokes op. If the write fails the
// operation is never invoked and an internal error is returned. A panic in
// op is recovered and surfaced as an internal error so the trail row is
// never left pointing at a vanished request.
func (a *Auditor) WithAudit(ctx context.Context, record Record, op func(context.Context) error) (err error) {
	if record.RecordedAt.IsZero() {
		record.RecordedAt = requestcontext.Now(ctx)
	}
	if record.ClientIP == "" {
		record.ClientIP = requestcontext.ClientIP(ctx)
	}
	if record.UserAgent == "" {
		record.UserAgent = requestcontext.UserAgent(ctx)
	}

	if writeErr := a.sink.InsertOrReplace(ctx, record); writeErr != nil {
		a.logger.ErrorContext(ctx, "audit write failed",
			"operation", record.OperationName,
			"request_id", record.RowKey,
			"error", writeErr,
		)
		return dErrors.Wrap(writeErr, dErrors.CodeInternal, "audit trail write failed")
	}

	if a.mirror != nil {
		a.mirror.Publish(ctx, record)
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "audited operation panicked",
				"operation", record.OperationName,
				"request_id", record.RowKey,
				"panic", r,
			)
			err = dErrors.New(dErrors.CodeInternal, "internal error")
		}
	}()
	return op(ctx)
}
