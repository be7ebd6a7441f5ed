// Package httptransport is the HTTP surface of the gateway. Handlers stay
// thin: identifier resolution, auditing and data reads live in their own
// services.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"citizengw/internal/audit"
	"citizengw/internal/citizendata"
	"citizengw/internal/resolver"
	"citizengw/pkg/domain"
	dErrors "citizengw/pkg/domain-errors"
	"citizengw/pkg/platform/httputil"
	"citizengw/pkg/requestcontext"
)

// CitizenIDHeader carries the identifier of the citizen being addressed,
// either a fiscal code or a support token.
const CitizenIDHeader = "x-citizen-id"

// Resolver authorizes a citizen identifier for an operator.
type Resolver interface {
	Resolve(ctx context.Context, operator domain.Operator, id domain.CitizenID) (resolver.Resolution, error)
}

// CitizenData reads program records for an authorized fiscal code.
type CitizenData interface {
	GetCitizen(ctx context.Context, fiscalCode domain.FiscalCode) (citizendata.Citizen, error)
	GetTransactions(ctx context.Context, fiscalCode domain.FiscalCode) ([]citizendata.Transaction, error)
	GetPaymentInstruments(ctx context.Context, fiscalCode domain.FiscalCode) ([]citizendata.PaymentInstrument, error)
}

// Auditor guards operations with a write-then-call audit trail entry.
type Auditor interface {
	WithAudit(ctx context.Context, record audit.Record, op func(context.Context) error) error
}

// TokenRevoker verifies support tokens and blacklists them.
type TokenRevoker interface {
	Verify(token domain.SupportToken) (domain.FiscalCode, error)
	RemainingValidity(token domain.SupportToken, now time.Time) (time.Duration, error)
	Revoke(ctx context.Context, token domain.SupportToken, fiscalCode domain.FiscalCode, ttl time.Duration) error
}

// Handler wires citizen-data endpoints to their services.
type Handler struct {
	resolver Resolver
	data     CitizenData
	auditor  Auditor
	revoker  TokenRevoker
	logger   *slog.Logger
}

// NewHandler constructs the citizen-data handler.
func NewHandler(resolver Resolver, data CitizenData, auditor Auditor, revoker TokenRevoker, logger *slog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		data:     data,
		auditor:  auditor,
		revoker:  revoker,
		logger:   logger,
	}
}

// Register mounts the guarded endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/citizen", h.HandleGetCitizen)
	r.Get("/citizen/transactions", h.HandleGetTransactions)
	r.Get("/citizen/payment-instruments", h.HandleGetPaymentInstruments)
	r.Post("/support-token/blacklist", h.HandleBlacklistToken)
}

// resolveRequest authenticates the addressed citizen for the calling
// operator. It writes the error response itself on failure.
func (h *Handler) resolveRequest(w http.ResponseWriter, r *http.Request) (domain.Operator, resolver.Resolution, bool) {
	ctx := r.Context()

	operator, ok := requestcontext.Operator(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return domain.Operator{}, resolver.Resolution{}, false
	}

	citizenID, err := domain.ParseCitizenID(r.Header.Get(CitizenIDHeader))
	if err != nil {
		httputil.WriteError(w, err)
		return domain.Operator{}, resolver.Resolution{}, false
	}

	res, err := h.resolver.Resolve(ctx, operator, citizenID)
	if err != nil {
		h.logger.WarnContext(ctx, "citizen identifier rejected",
			"request_id", requestcontext.RequestID(ctx),
			"operator", operator.OID,
			"source", string(citizenID.Kind()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return domain.Operator{}, resolver.Resolution{}, false
	}
	return operator, res, true
}

// serveAudited runs the data read under the audit guard and writes the JSON
// response from inside it, so a failed audit write serves nothing.
func (h *Handler) serveAudited(w http.ResponseWriter, r *http.Request, operationName string, read func(ctx context.Context, fiscalCode domain.FiscalCode) (any, error)) {
	ctx := r.Context()

	operator, res, ok := h.resolveRequest(w, r)
	if !ok {
		return
	}

	record := audit.NewRecord(operator, res.FiscalCode, res.Source, operationName, requestcontext.RequestID(ctx))
	err := h.auditor.WithAudit(ctx, record, func(ctx context.Context) error {
		payload, err := read(ctx, res.FiscalCode)
		if err != nil {
			return err
		}
		httputil.WriteJSON(w, http.StatusOK, payload)
		return nil
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "citizen data read failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", operationName,
			"operator", operator.OID,
			"error", err,
		)
		httputil.WriteError(w, err)
	}
}

// HandleGetCitizen handles GET /citizen requests.
func (h *Handler) HandleGetCitizen(w http.ResponseWriter, r *http.Request) {
	h.serveAudited(w, r, "GetCitizen", func(ctx context.Context, fiscalCode domain.FiscalCode) (any, error) {
		return h.data.GetCitizen(ctx, fiscalCode)
	})
}

// HandleGetTransactions handles GET /citizen/transactions requests.
func (h *Handler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	h.serveAudited(w, r, "GetTransactions", func(ctx context.Context, fiscalCode domain.FiscalCode) (any, error) {
		return h.data.GetTransactions(ctx, fiscalCode)
	})
}

// HandleGetPaymentInstruments handles GET /citizen/payment-instruments requests.
func (h *Handler) HandleGetPaymentInstruments(w http.ResponseWriter, r *http.Request) {
	h.serveAudited(w, r, "GetPaymentInstruments", func(ctx context.Context, fiscalCode domain.FiscalCode) (any, error) {
		return h.data.GetPaymentInstruments(ctx, fiscalCode)
	})
}

// HandleBlacklistToken handles POST /support-token/blacklist requests. The
// identifier header must carry a support token; the token is revoked for its
// remaining validity.
func (h *Handler) HandleBlacklistToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operator, ok := requestcontext.Operator(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	citizenID, err := domain.ParseCitizenID(r.Header.Get(CitizenIDHeader))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if citizenID.Kind() != domain.CitizenIDKindSupportToken {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "blacklisting requires a support token"))
		return
	}
	token := citizenID.SupportToken()

	fiscalCode, err := h.revoker.Verify(token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ttl, err := h.revoker.RemainingValidity(token, requestcontext.Now(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record := audit.NewRecord(operator, fiscalCode, domain.CitizenIDKindSupportToken,
		"BlacklistSupportToken", requestcontext.RequestID(ctx))
	err = h.auditor.WithAudit(ctx, record, func(ctx context.Context) error {
		if err := h.revoker.Revoke(ctx, token, fiscalCode, ttl); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "token blacklisting failed")
		}
		return nil
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "support token blacklisting failed",
			"request_id", requestcontext.RequestID(ctx),
			"operator", operator.OID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "support token blacklisted",
		"request_id", requestcontext.RequestID(ctx),
		"operator", operator.OID,
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "support token blacklisted"})
}
