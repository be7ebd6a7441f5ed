//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"citizengw/internal/audit"
	"citizengw/pkg/domain"
	"citizengw/pkg/testutil/containers"
)

type PostgresSinkSuite struct {
	suite.Suite
	pg   *containers.PostgresContainer
	sink *audit.PostgresSink
	ctx  context.Context
}

func TestPostgresSinkSuite(t *testing.T) {
	suite.Run(t, new(PostgresSinkSuite))
}

func (s *PostgresSinkSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(s.pg.ExecSchema(s.ctx, audit.Schema))
	s.sink = audit.NewPostgresSink(s.pg.DB, "audit_log")
}

func (s *PostgresSinkSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "audit_log"))
}

func (s *PostgresSinkSuite) record() audit.Record {
	return audit.Record{
		AuthLevel:      audit.AuthLevelAdmin,
		Citizen:        domain.FiscalCode("AAABBB01C02D345D"),
		Email:          "mario.rossi@example.org",
		OperationName:  "GetCitizen",
		PartitionKey:   "operator-oid",
		RowKey:         "req-1",
		QueryParamType: string(domain.CitizenIDKindFiscalCode),
		ClientIP:       "203.0.113.7",
		UserAgent:      "Firefox/140.0 (Linux)",
		RecordedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *PostgresSinkSuite) countRows() int {
	var n int
	s.Require().NoError(s.pg.DB.QueryRowContext(s.ctx, "SELECT COUNT(*) FROM audit_log").Scan(&n))
	return n
}

func (s *PostgresSinkSuite) TestInsert() {
	s.Require().NoError(s.sink.InsertOrReplace(s.ctx, s.record()))

	var authLevel, citizen, operation string
	err := s.pg.DB.QueryRowContext(s.ctx,
		"SELECT auth_level, citizen, operation_name FROM audit_log WHERE partition_key = $1 AND row_key = $2",
		"operator-oid", "req-1",
	).Scan(&authLevel, &citizen, &operation)
	s.Require().NoError(err)
	s.Equal("Admin", authLevel)
	s.Equal("AAABBB01C02D345D", citizen)
	s.Equal("GetCitizen", operation)
}

func (s *PostgresSinkSuite) TestUpsertOverwritesSameKey() {
	s.Require().NoError(s.sink.InsertOrReplace(s.ctx, s.record()))

	updated := s.record()
	updated.OperationName = "GetTransactions"
	s.Require().NoError(s.sink.InsertOrReplace(s.ctx, updated))

	s.Equal(1, s.countRows())

	var operation string
	err := s.pg.DB.QueryRowContext(s.ctx,
		"SELECT operation_name FROM audit_log WHERE row_key = $1", "req-1",
	).Scan(&operation)
	s.Require().NoError(err)
	s.Equal("GetTransactions", operation)
}

func (s *PostgresSinkSuite) TestNullCitizenOnSupportPath() {
	record := s.record()
	record.AuthLevel = audit.AuthLevelSupport
	record.Citizen = ""
	record.RowKey = "req-2"
	s.Require().NoError(s.sink.InsertOrReplace(s.ctx, record))

	var citizen *string
	err := s.pg.DB.QueryRowContext(s.ctx,
		"SELECT citizen FROM audit_log WHERE row_key = $1", "req-2",
	).Scan(&citizen)
	s.Require().NoError(err)
	s.Nil(citizen)
}
