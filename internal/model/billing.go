package model

import (
	"fmt"
	"strings"
)

// PaymentMethod is how a bill is (or will be) settled.
type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "Card"
	PaymentInsurance PaymentMethod = "Insurance"
	PaymentCash      PaymentMethod = "Cash"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentInsurance, PaymentCash:
		return true
	}
	return false
}

// ParsePaymentMethod parses a payment method case-insensitively and
// returns its canonical spelling.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card":
		return PaymentCard, nil
	case "insurance":
		return PaymentInsurance, nil
	case "cash":
		return PaymentCash, nil
	}
	return "", fmt.Errorf("invalid payment method: %q (valid: Card, Insurance, Cash)", s)
}

// BillingRecord is a bill for one patient.  A pending record is unpaid
// and lives in the ledger's heap; once paid it moves to the settled
// list and never returns.
//
// Fields:
//  PatientID     – patient the bill belongs to.
//  Amount        – total amount owed, never negative.
//  Paid          – true once settled.
//  PaymentMethod – method recorded with the latest charge.
type BillingRecord struct {
	PatientID     int           `json:"patient_id"`
	Amount        float64       `json:"amount"`
	Paid          bool          `json:"paid"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}
