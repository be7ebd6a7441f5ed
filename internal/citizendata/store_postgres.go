package citizendata

import (
	"context"
	"database/sql"
	"fmt"

	"citizengw/pkg/domain"
	dErrors "citizengw/pkg/domain-errors"
)

// Schema is the program data DDL, applied by deployment tooling and by
// integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS bpd_citizen (
	fiscal_code     TEXT        PRIMARY KEY,
	payoff_instr    TEXT,
	citizen_enabled BOOLEAN     NOT NULL DEFAULT TRUE,
	timestamp_tc    TIMESTAMPTZ NOT NULL,
	insert_date     TIMESTAMPTZ,
	insert_user     TEXT,
	update_date     TIMESTAMPTZ,
	update_user     TEXT
);
CREATE TABLE IF NOT EXISTS bpd_payment_instrument (
	hpan         TEXT        NOT NULL,
	fiscal_code  TEXT        NOT NULL,
	status       TEXT        NOT NULL,
	channel      TEXT,
	enabled      BOOLEAN     NOT NULL DEFAULT TRUE,
	enrollment   TIMESTAMPTZ NOT NULL,
	cancellation TIMESTAMPTZ,
	PRIMARY KEY (hpan, fiscal_code)
);
CREATE TABLE IF NOT EXISTS bpd_transaction (
	id_trx_acquirer      TEXT        NOT NULL,
	fiscal_code          TEXT        NOT NULL,
	hpan                 TEXT        NOT NULL,
	trx_timestamp        TIMESTAMPTZ NOT NULL,
	acquirer_id          TEXT,
	acquirer_descr       TEXT,
	id_trx_issuer        TEXT,
	operation_type_descr TEXT,
	amount               NUMERIC,
	amount_currency      TEXT,
	mcc                  TEXT,
	mcc_descr            TEXT,
	PRIMARY KEY (id_trx_acquirer, trx_timestamp)
);
CREATE INDEX IF NOT EXISTS bpd_transaction_fiscal_code_idx ON bpd_transaction (fiscal_code);
CREATE INDEX IF NOT EXISTS bpd_payment_instrument_fiscal_code_idx ON bpd_payment_instrument (fiscal_code)`

// PostgresStore reads program data from the relational views.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a store over the given database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetCitizen returns the registration for the fiscal code with its enrolled
// payment methods folded in.
//
// Errors: CodeNotFound when the fiscal code has no registration.
func (s *PostgresStore) GetCitizen(ctx context.Context, fiscalCode domain.FiscalCode) (Citizen, error) {
	query := `
		SELECT c.fiscal_code, c.payoff_instr, c.citizen_enabled, c.timestamp_tc,
		       c.insert_date, c.insert_user, c.update_date, c.update_user,
		       pi.hpan, pi.status
		FROM bpd_citizen c
		LEFT JOIN bpd_payment_instrument pi
		       ON pi.fiscal_code = c.fiscal_code AND pi.enabled
		WHERE c.fiscal_code = $1
	`
	rows, err := s.db.QueryContext(ctx, query, fiscalCode.String())
	if err != nil {
		return Citizen{}, fmt.Errorf("query citizen: %w", err)
	}
	defer rows.Close()

	var (
		citizen Citizen
		found   bool
	)
	for rows.Next() {
		var (
			payoffInstr        sql.NullString
			insertDate         sql.NullTime
			insertUser         sql.NullString
			updateDate         sql.NullTime
			updateUser         sql.NullString
			hpan, methodStatus sql.NullString
		)
		err := rows.Scan(
			&citizen.FiscalCode, &payoffInstr, &citizen.Enabled, &citizen.TimestampTC,
			&insertDate, &insertUser, &updateDate, &updateUser,
			&hpan, &methodStatus,
		)
		if err != nil {
			return Citizen{}, fmt.Errorf("scan citizen row: %w", err)
		}
		if !found {
			found = true
			citizen.PayoffInstrument = payoffInstr.String
			citizen.InsertUser = insertUser.String
			citizen.UpdateUser = updateUser.String
			if insertDate.Valid {
				citizen.InsertDate = &insertDate.Time
			}
			if updateDate.Valid {
				citizen.UpdateDate = &updateDate.Time
			}
			citizen.PaymentMethods = []PaymentMethod{}
		}
		if hpan.Valid {
			citizen.PaymentMethods = append(citizen.PaymentMethods, PaymentMethod{
				HPAN:   hpan.String,
				Status: PaymentMethodStatus(methodStatus.String),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return Citizen{}, fmt.Errorf("iterate citizen rows: %w", err)
	}
	if !found {
		return Citizen{}, dErrors.New(dErrors.CodeNotFound, "citizen not found")
	}
	return citizen, nil
}

// GetTransactions returns the transactions accrued on the citizen's
// instruments, most recent first.
func (s *PostgresStore) GetTransactions(ctx context.Context, fiscalCode domain.FiscalCode) ([]Transaction, error) {
	query := `
		SELECT fiscal_code, hpan, trx_timestamp, acquirer_id, acquirer_descr,
		       id_trx_acquirer, id_trx_issuer, operation_type_descr,
		       amount, amount_currency, mcc, mcc_descr
		FROM bpd_transaction
		WHERE fiscal_code = $1
		ORDER BY trx_timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query, fiscalCode.String())
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []Transaction{}
	for rows.Next() {
		var (
			trx                                   Transaction
			acquirerID, acquirerDescr, issuer     sql.NullString
			operationType, currency, mcc, mccDesc sql.NullString
			amount                                sql.NullFloat64
		)
		err := rows.Scan(
			&trx.FiscalCode, &trx.HPAN, &trx.Timestamp, &acquirerID, &acquirerDescr,
			&trx.IDTrxAcquirer, &issuer, &operationType,
			&amount, &currency, &mcc, &mccDesc,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		trx.AcquirerID = acquirerID.String
		trx.AcquirerDescr = acquirerDescr.String
		trx.IDTrxIssuer = issuer.String
		trx.OperationTypeDescr = operationType.String
		trx.Currency = currency.String
		trx.MCC = mcc.String
		trx.MCCDescr = mccDesc.String
		if amount.Valid {
			trx.Amount = &amount.Float64
		}
		transactions = append(transactions, trx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return transactions, nil
}

// GetPaymentInstruments returns the citizen's enrolled instruments.
//
// Errors: CodeNotFound when the fiscal code has no instruments.
func (s *PostgresStore) GetPaymentInstruments(ctx context.Context, fiscalCode domain.FiscalCode) ([]PaymentInstrument, error) {
	query := `
		SELECT fiscal_code, hpan, status, channel, enabled, enrollment, cancellation
		FROM bpd_payment_instrument
		WHERE fiscal_code = $1
		ORDER BY enrollment DESC
	`
	rows, err := s.db.QueryContext(ctx, query, fiscalCode.String())
	if err != nil {
		return nil, fmt.Errorf("query payment instruments: %w", err)
	}
	defer rows.Close()

	var instruments []PaymentInstrument
	for rows.Next() {
		var (
			instrument   PaymentInstrument
			channel      sql.NullString
			cancellation sql.NullTime
		)
		err := rows.Scan(
			&instrument.FiscalCode, &instrument.HPAN, &instrument.Status,
			&channel, &instrument.Enabled, &instrument.EnrollmentDate, &cancellation,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment instrument row: %w", err)
		}
		instrument.Channel = channel.String
		if cancellation.Valid {
			instrument.CancellationDate = &cancellation.Time
		}
		instruments = append(instruments, instrument)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment instrument rows: %w", err)
	}
	if len(instruments) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no payment instruments for citizen")
	}
	return instruments, nil
}
