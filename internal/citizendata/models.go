// Package citizendata reads the cashback program records served to
// back-office operators: citizen registrations, their enrolled payment
// instruments and the transactions accrued on them.
package citizendata

import (
	"time"

	"citizengw/pkg/domain"
)

// PaymentMethodStatus is the lifecycle state of an enrolled instrument.
type PaymentMethodStatus string

const (
	PaymentMethodActive   PaymentMethodStatus = "ACTIVE"
	PaymentMethodInactive PaymentMethodStatus = "INACTIVE"
)

// PaymentMethod is an instrument summary embedded in the citizen view.
type PaymentMethod struct {
	HPAN   string              `json:"hpan"`
	Status PaymentMethodStatus `json:"status"`
}

// Citizen is a program registration with its enrolled payment methods.
type Citizen struct {
	FiscalCode       domain.FiscalCode `json:"fiscal_code"`
	Enabled          bool              `json:"citizen_enabled"`
	PayoffInstrument string            `json:"payoff_instr,omitempty"`
	TimestampTC      time.Time         `json:"timestamp_tc"`
	InsertDate       *time.Time        `json:"insert_date,omitempty"`
	InsertUser       string            `json:"insert_user,omitempty"`
	UpdateDate       *time.Time        `json:"update_date,omitempty"`
	UpdateUser       string            `json:"update_user,omitempty"`
	PaymentMethods   []PaymentMethod   `json:"payment_methods"`
}

// Transaction is a single acquirer-reported transaction.
type Transaction struct {
	FiscalCode         domain.FiscalCode `json:"fiscal_code"`
	HPAN               string            `json:"hpan"`
	Timestamp          time.Time         `json:"trx_timestamp"`
	AcquirerID         string            `json:"acquirer_id,omitempty"`
	AcquirerDescr      string            `json:"acquirer_descr,omitempty"`
	IDTrxAcquirer      string            `json:"id_trx_acquirer"`
	IDTrxIssuer        string            `json:"id_trx_issuer,omitempty"`
	OperationTypeDescr string            `json:"operation_type_descr,omitempty"`
	Amount             *float64          `json:"amount,omitempty"`
	Currency           string            `json:"amount_currency,omitempty"`
	MCC                string            `json:"mcc,omitempty"`
	MCCDescr           string            `json:"mcc_descr,omitempty"`
}

// PaymentInstrument is the full record of one enrolled instrument.
type PaymentInstrument struct {
	FiscalCode       domain.FiscalCode   `json:"fiscal_code"`
	HPAN             string              `json:"hpan"`
	Status           PaymentMethodStatus `json:"status"`
	Channel          string              `json:"channel,omitempty"`
	Enabled          bool                `json:"enabled"`
	EnrollmentDate   time.Time           `json:"enrollment"`
	CancellationDate *time.Time          `json:"cancellation,omitempty"`
}
