package httptransport_test

//go:generate mockgen -source=handlers.go -destination=mocks/mocks.go -package=mocks Resolver,CitizenData,TokenRevoker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"citizengw/internal/audit"
	"citizengw/internal/citizendata"
	"citizengw/internal/resolver"
	httptransport "citizengw/internal/transport/http"
	"citizengw/internal/transport/http/mocks"
	"citizengw/pkg/domain"
	"citizengw/pkg/requestcontext"
)

const (
	fiscalCode = "AAABBB01C02D345D"
	rawToken   = "eyJhbGciOiJSUzI1NiJ9.eyJmaXNjYWxDb2RlIjoiQUFBQkJCMDFDMDJEMzQ1RCJ9.c2ln"
	requestID  = "req-1"
)

var requestTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type HandlersSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	resolver *mocks.MockResolver
	data     *mocks.MockCitizenData
	revoker  *mocks.MockTokenRevoker
	sink     *audit.MemorySink
	handler  *httptransport.Handler
	operator domain.Operator
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.resolver = mocks.NewMockResolver(s.ctrl)
	s.data = mocks.NewMockCitizenData(s.ctrl)
	s.revoker = mocks.NewMockTokenRevoker(s.ctrl)
	s.sink = audit.NewMemorySink()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditor := audit.NewAuditor(s.sink, logger)
	s.handler = httptransport.NewHandler(s.resolver, s.data, auditor, s.revoker, logger)

	op, err := domain.NewOperator("operator-oid", "Rossi", "Mario", []string{"mario.rossi@example.org"})
	s.Require().NoError(err)
	s.operator = op
}

func (s *HandlersSuite) newRequest(method, target, citizenID string, authenticated bool) *http.Request {
	ctx := requestcontext.WithRequestID(context.Background(), requestID)
	ctx = requestcontext.WithTime(ctx, requestTime)
	if authenticated {
		ctx = requestcontext.WithOperator(ctx, s.operator)
	}
	req := httptest.NewRequest(method, target, nil).WithContext(ctx)
	if citizenID != "" {
		req.Header.Set(httptransport.CitizenIDHeader, citizenID)
	}
	return req
}

func (s *HandlersSuite) adminResolution() resolver.Resolution {
	return resolver.Resolution{
		FiscalCode: domain.FiscalCode(fiscalCode),
		Source:     domain.CitizenIDKindFiscalCode,
	}
}

func (s *HandlersSuite) TestGetCitizen() {
	s.resolver.EXPECT().Resolve(gomock.Any(), s.operator, gomock.Any()).Return(s.adminResolution(), nil)
	s.data.EXPECT().GetCitizen(gomock.Any(), domain.FiscalCode(fiscalCode)).
		Return(citizendata.Citizen{
			FiscalCode:     domain.FiscalCode(fiscalCode),
			Enabled:        true,
			TimestampTC:    requestTime,
			PaymentMethods: []citizendata.PaymentMethod{},
		}, nil)

	rec := httptest.NewRecorder()
	s.handler.HandleGetCitizen(rec, s.newRequest(http.MethodGet, "/citizen", fiscalCode, true))

	s.Equal(http.StatusOK, rec.Code)
	var body citizendata.Citizen
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(domain.FiscalCode(fiscalCode), body.FiscalCode)

	records := s.sink.Records()
	s.Require().Len(records, 1)
	s.Equal(audit.AuthLevelAdmin, records[0].AuthLevel)
	s.Equal("GetCitizen", records[0].OperationName)
	s.Equal("operator-oid", records[0].PartitionKey)
	s.Equal(requestID, records[0].RowKey)
	s.Equal(requestTime, records[0].RecordedAt)
}

func (s *HandlersSuite) TestGetCitizenUnauthenticated() {
	rec := httptest.NewRecorder()
	s.handler.HandleGetCitizen(rec, s.newRequest(http.MethodGet, "/citizen", fiscalCode, false))

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Empty(s.sink.Records())
}

func (s *HandlersSuite) TestGetCitizenMalformedIdentifier() {
	rec := httptest.NewRecorder()
	s.handler.HandleGetCitizen(rec, s.newRequest(http.MethodGet, "/citizen", "not-an-identifier", true))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.sink.Records())
}

func (s *HandlersSuite) TestGetCitizenForbidden() {
	s.resolver.EXPECT().Resolve(gomock.Any(), s.operator, gomock.Any()).
		Return(resolver.Resolution{}, dErrForbidden())

	rec := httptest.NewRecorder()
	s.handler.HandleGetCitizen(rec, s.newRequest(http.MethodGet, "/citizen", fiscalCode, true))

	s.Equal(http.StatusForbidden, rec.Code)
	s.Empty(s.sink.Records(), "denied access leaves no trail row")
}

func (s *HandlersSuite) TestGetCitizenNotFound() {
	s.resolver.EXPECT().Resolve(gomock.Any(), s.operator, gomock.Any()).Return(s.adminResolution(), nil)
	s.data.EXPECT().GetCitizen(gomock.Any(), domain.FiscalCode(fiscalCode)).
		Return(citizendata.Citizen{}, dErrNotFound())

	rec := httptest.NewRecorder()
	s.handler.HandleGetCitizen(rec, s.newRequest(http.MethodGet, "/citizen", fiscalCode, true))

	s.Equal(http.StatusNotFound, rec.Code)
	// The access attempt is still recorded.
	s.Len(s.sink.Records(), 1)
}

func (s *HandlersSuite) TestGetCitizenAuditFailureServesNothing() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditor := audit.NewAuditor(failingSink{errors.New("table unavailable")}, logger)
	handler := httptransport.NewHandler(s.resolver, s.data, auditor, s.revoker, logger)

	s.resolver.EXPECT().Resolve(gomock.Any(), s.operator, gomock.Any()).Return(s.adminResolution(), nil)
	// No GetCitizen expectation: the read must never run.

	rec := httptest.NewRecorder()
	handler.HandleGetCitizen(rec, s.newRequest(http.MethodGet, "/citizen", fiscalCode, true))

	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlersSuite) TestGetTransactions() {
	s.resolver.EXPECT().Resolve(gomock.Any(), s.operator, gomock.Any()).Return(s.adminResolution(), nil)
	s.data.EXPECT().GetTransactions(gomock.Any(), domain.FiscalCode(fiscalCode)).
		Return([]citizendata.Transaction{}, nil)

	rec := httptest.NewRecorder()
	s.handler.HandleGetTransactions(rec, s.newRequest(http.MethodGet, "/citizen/transactions", fiscalCode, true))

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq("[]", rec.Body.String())

	records := s.sink.Records()
	s.Require().Len(records, 1)
	s.Equal("GetTransactions", records[0].OperationName)
}

func (s *HandlersSuite) TestGetPaymentInstruments() {
	support := resolver.Resolution{
		FiscalCode: domain.FiscalCode(fiscalCode),
		Source:     domain.CitizenIDKindSupportToken,
	}
	s.resolver.EXPECT().Resolve(gomock.Any(), s.operator, gomock.Any()).Return(support, nil)
	s.data.EXPECT().GetPaymentInstruments(gomock.Any(), domain.FiscalCode(fiscalCode)).
		Return([]citizendata.PaymentInstrument{{
			FiscalCode: domain.FiscalCode(fiscalCode),
			HPAN:       "hpan-1",
			Status:     citizendata.PaymentMethodActive,
		}}, nil)

	rec := httptest.NewRecorder()
	s.handler.HandleGetPaymentInstruments(rec, s.newRequest(http.MethodGet, "/citizen/payment-instruments", rawToken, true))

	s.Equal(http.StatusOK, rec.Code)

	records := s.sink.Records()
	s.Require().Len(records, 1)
	s.Equal(audit.AuthLevelSupport, records[0].AuthLevel)
	s.Empty(records[0].Citizen, "support path never records the fiscal code")
}

func (s *HandlersSuite) TestBlacklistToken() {
	token := domain.SupportToken(rawToken)
	s.revoker.EXPECT().Verify(token).Return(domain.FiscalCode(fiscalCode), nil)
	s.revoker.EXPECT().RemainingValidity(token, requestTime).Return(42*time.Minute, nil)
	s.revoker.EXPECT().Revoke(gomock.Any(), token, domain.FiscalCode(fiscalCode), 42*time.Minute).Return(nil)

	rec := httptest.NewRecorder()
	s.handler.HandleBlacklistToken(rec, s.newRequest(http.MethodPost, "/support-token/blacklist", rawToken, true))

	s.Equal(http.StatusOK, rec.Code)

	records := s.sink.Records()
	s.Require().Len(records, 1)
	s.Equal("BlacklistSupportToken", records[0].OperationName)
	s.Equal(audit.AuthLevelSupport, records[0].AuthLevel)
}

func (s *HandlersSuite) TestBlacklistRejectsFiscalCode() {
	rec := httptest.NewRecorder()
	s.handler.HandleBlacklistToken(rec, s.newRequest(http.MethodPost, "/support-token/blacklist", fiscalCode, true))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.sink.Records())
}

func (s *HandlersSuite) TestBlacklistUnverifiedTokenForbidden() {
	s.revoker.EXPECT().Verify(domain.SupportToken(rawToken)).
		Return(domain.FiscalCode(""), dErrForbidden())

	rec := httptest.NewRecorder()
	s.handler.HandleBlacklistToken(rec, s.newRequest(http.MethodPost, "/support-token/blacklist", rawToken, true))

	s.Equal(http.StatusForbidden, rec.Code)
	s.Empty(s.sink.Records())
}

func (s *HandlersSuite) TestBlacklistRevokeFailure() {
	token := domain.SupportToken(rawToken)
	s.revoker.EXPECT().Verify(token).Return(domain.FiscalCode(fiscalCode), nil)
	s.revoker.EXPECT().RemainingValidity(token, requestTime).Return(time.Hour, nil)
	s.revoker.EXPECT().Revoke(gomock.Any(), token, domain.FiscalCode(fiscalCode), time.Hour).
		Return(errors.New("redis down"))

	rec := httptest.NewRecorder()
	s.handler.HandleBlacklistToken(rec, s.newRequest(http.MethodPost, "/support-token/blacklist", rawToken, true))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Len(s.sink.Records(), 1)
}
