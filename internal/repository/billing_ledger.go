package repository

import (
	"fmt"
	"math"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
)

// BillingLedger keeps pending bills in an array-backed max-heap ordered
// by amount and paid bills in an append-only settled list. A patient
// has at most one pending bill; repeat charges accumulate into it.
//
// BillingLedger is not safe for concurrent use.
type BillingLedger struct {
	pending []model.BillingRecord
	settled []model.BillingRecord
}

// NewBillingLedger returns an empty ledger.
func NewBillingLedger() *BillingLedger { return &BillingLedger{} }

// AddOrAccumulate charges amount to the patient's pending bill, creating
// one if none exists. An existing bill takes the new payment method and
// is moved up the heap to account for its larger amount. The returned
// record is a copy of the pending bill after the charge.
func (l *BillingLedger) AddOrAccumulate(patientID int, amount float64, method model.PaymentMethod) (model.BillingRecord, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.BillingRecord{}, fmt.Errorf("%w: amount must be a finite number: %v", ErrInvalidArgument, amount)
	}
	if amount < 0 {
		return model.BillingRecord{}, fmt.Errorf("%w: amount cannot be negative: %v", ErrInvalidArgument, amount)
	}
	if !method.Valid() {
		return model.BillingRecord{}, fmt.Errorf("%w: unknown payment method %q", ErrInvalidArgument, method)
	}
	if i := l.pendingIndex(patientID); i >= 0 {
		total := l.pending[i].Amount + amount
		if math.IsInf(total, 0) {
			return model.BillingRecord{}, fmt.Errorf("%w: charge would overflow bill of patient %d", ErrInvalidArgument, patientID)
		}
		l.pending[i].Amount = total
		l.pending[i].PaymentMethod = method
		i = l.siftUp(i)
		return l.pending[i], nil
	}
	l.pending = append(l.pending, model.BillingRecord{
		PatientID:     patientID,
		Amount:        amount,
		PaymentMethod: method,
	})
	i := l.siftUp(len(l.pending) - 1)
	return l.pending[i], nil
}

// PayLargestPending settles the bill with the largest amount and
// returns it. It fails with ErrEmptyLedger when nothing is pending.
func (l *BillingLedger) PayLargestPending() (model.BillingRecord, error) {
	if len(l.pending) == 0 {
		return model.BillingRecord{}, ErrEmptyLedger
	}
	return l.settle(0), nil
}

// PayByPatientID settles the patient's pending bill. ok is false when
// the patient has no pending bill, including when it was already paid.
func (l *BillingLedger) PayByPatientID(patientID int) (rec model.BillingRecord, ok bool) {
	i := l.pendingIndex(patientID)
	if i < 0 {
		return model.BillingRecord{}, false
	}
	return l.settle(i), true
}

// LargestPending returns the heap root without settling it.
func (l *BillingLedger) LargestPending() (model.BillingRecord, bool) {
	if len(l.pending) == 0 {
		return model.BillingRecord{}, false
	}
	return l.pending[0], true
}

// FindByPatientID returns the patient's pending bill (if any) followed
// by every settled bill in payment order.
func (l *BillingLedger) FindByPatientID(patientID int) []model.BillingRecord {
	var out []model.BillingRecord
	for _, r := range l.pending {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	for _, r := range l.settled {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out
}

// ListAll returns copies of the pending bills in heap order (the first
// element is the largest) and of the settled bills in payment order.
func (l *BillingLedger) ListAll() (pending, settled []model.BillingRecord) {
	pending = make([]model.BillingRecord, len(l.pending))
	copy(pending, l.pending)
	settled = make([]model.BillingRecord, len(l.settled))
	copy(settled, l.settled)
	return pending, settled
}

// PendingLen returns the number of unpaid bills.
func (l *BillingLedger) PendingLen() int { return len(l.pending) }

// SettledLen returns the number of paid bills.
func (l *BillingLedger) SettledLen() int { return len(l.settled) }

func (l *BillingLedger) pendingIndex(patientID int) int {
	for i, r := range l.pending {
		if r.PatientID == patientID {
			return i
		}
	}
	return -1
}

// settle removes pending[i], marks it paid and appends it to settled.
// The last element fills the hole and is sifted whichever way it needs.
func (l *BillingLedger) settle(i int) model.BillingRecord {
	rec := l.pending[i]
	rec.Paid = true
	l.settled = append(l.settled, rec)

	last := len(l.pending) - 1
	l.pending[i] = l.pending[last]
	l.pending[last] = model.BillingRecord{}
	l.pending = l.pending[:last]
	if i < len(l.pending) {
		l.siftDown(l.siftUp(i))
	}
	return rec
}

func (l *BillingLedger) siftUp(i int) int {
	for i > 0 {
		parent := (i - 1) / 2
		if l.pending[parent].Amount >= l.pending[i].Amount {
			break
		}
		l.pending[parent], l.pending[i] = l.pending[i], l.pending[parent]
		i = parent
	}
	return i
}

func (l *BillingLedger) siftDown(i int) {
	n := len(l.pending)
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n && l.pending[left].Amount > l.pending[largest].Amount {
			largest = left
		}
		if right < n && l.pending[right].Amount > l.pending[largest].Amount {
			largest = right
		}
		if largest == i {
			return
		}
		l.pending[i], l.pending[largest] = l.pending[largest], l.pending[i]
		i = largest
	}
}
