package httptransport_test

import (
	"context"

	"citizengw/internal/audit"
	dErrors "citizengw/pkg/domain-errors"
)

type failingSink struct{ err error }

func (s failingSink) InsertOrReplace(context.Context, audit.Record) error { return s.err }

func dErrForbidden() error {
	return dErrors.New(dErrors.CodeForbidden, "operator may not address citizens by fiscal code")
}

func dErrNotFound() error {
	return dErrors.New(dErrors.CodeNotFound, "citizen not found")
}
