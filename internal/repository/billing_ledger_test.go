package repository

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
)

func requireHeap(t *testing.T, l *BillingLedger) {
	t.Helper()
	for i := 1; i < len(l.pending); i++ {
		parent := (i - 1) / 2
		require.GreaterOrEqual(t, l.pending[parent].Amount, l.pending[i].Amount,
			"heap order violated between %d and %d", parent, i)
	}
}

func TestBillingLedger_LargestPaidFirst(t *testing.T) {
	l := NewBillingLedger()
	_, err := l.AddOrAccumulate(7, 100, model.PaymentCash)
	require.NoError(t, err)
	_, err = l.AddOrAccumulate(3, 250, model.PaymentCard)
	require.NoError(t, err)

	rec, err := l.PayLargestPending()
	require.NoError(t, err)
	assert.Equal(t, 3, rec.PatientID)
	assert.Equal(t, 250.0, rec.Amount)
	assert.True(t, rec.Paid)
	assert.Equal(t, model.PaymentCard, rec.PaymentMethod)
}

func TestBillingLedger_AccumulatesSinglePendingRecord(t *testing.T) {
	l := NewBillingLedger()
	l.AddOrAccumulate(7, 100, model.PaymentCash)
	rec, err := l.AddOrAccumulate(7, 50, model.PaymentInsurance)
	require.NoError(t, err)
	assert.Equal(t, 150.0, rec.Amount)
	assert.Equal(t, model.PaymentInsurance, rec.PaymentMethod)

	pending, _ := l.ListAll()
	require.Len(t, pending, 1)
	assert.Equal(t, 150.0, pending[0].Amount)
}

func TestBillingLedger_AccumulationRestoresHeapOrder(t *testing.T) {
	l := NewBillingLedger()
	l.AddOrAccumulate(1, 500, model.PaymentCash)
	l.AddOrAccumulate(2, 100, model.PaymentCash)
	l.AddOrAccumulate(3, 50, model.PaymentCash)
	// patient 3 now owes the most even though it sits below the root
	l.AddOrAccumulate(3, 900, model.PaymentCard)
	requireHeap(t, l)

	top, ok := l.LargestPending()
	require.True(t, ok)
	assert.Equal(t, 3, top.PatientID)

	rec, err := l.PayLargestPending()
	require.NoError(t, err)
	assert.Equal(t, 950.0, rec.Amount)
}

func TestBillingLedger_EmptyLedger(t *testing.T) {
	l := NewBillingLedger()
	_, err := l.PayLargestPending()
	assert.True(t, errors.Is(err, ErrEmptyLedger))

	_, ok := l.LargestPending()
	assert.False(t, ok)
}

func TestBillingLedger_RejectsBadInput(t *testing.T) {
	l := NewBillingLedger()
	_, err := l.AddOrAccumulate(1, -5, model.PaymentCash)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = l.AddOrAccumulate(1, 5, "Bitcoin")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, l.PendingLen())
}

func TestBillingLedger_RejectsNonFiniteAmounts(t *testing.T) {
	l := NewBillingLedger()
	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := l.AddOrAccumulate(2, amount, model.PaymentCash)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "amount %v", amount)
	}
	assert.Zero(t, l.PendingLen())

	_, err := l.AddOrAccumulate(1, math.MaxFloat64, model.PaymentCash)
	require.NoError(t, err)
	_, err = l.AddOrAccumulate(1, math.MaxFloat64, model.PaymentCard)
	require.True(t, errors.Is(err, ErrInvalidArgument))

	// the rejected charge left the bill untouched
	rec, ok := l.LargestPending()
	require.True(t, ok)
	assert.Equal(t, math.MaxFloat64, rec.Amount)
	assert.Equal(t, model.PaymentCash, rec.PaymentMethod)
}

func TestBillingLedger_ZeroAmountAllowed(t *testing.T) {
	l := NewBillingLedger()
	_, err := l.AddOrAccumulate(1, 0, model.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, 1, l.PendingLen())
}

func TestBillingLedger_PayByPatientIDKeepsHeap(t *testing.T) {
	l := NewBillingLedger()
	amounts := []float64{90, 80, 70, 10, 20, 60, 65, 5, 6, 7}
	for i, a := range amounts {
		l.AddOrAccumulate(i+1, a, model.PaymentCard)
	}
	requireHeap(t, l)

	// remove a bill sitting deep in the heap
	rec, ok := l.PayByPatientID(5)
	require.True(t, ok)
	assert.Equal(t, 20.0, rec.Amount)
	assert.True(t, rec.Paid)
	requireHeap(t, l)

	var drained []float64
	for l.PendingLen() > 0 {
		r, err := l.PayLargestPending()
		require.NoError(t, err)
		drained = append(drained, r.Amount)
	}
	assert.Equal(t, []float64{90, 80, 70, 65, 60, 10, 7, 6, 5}, drained)
}

func TestBillingLedger_SettlementIsOneWay(t *testing.T) {
	l := NewBillingLedger()
	l.AddOrAccumulate(4, 30, model.PaymentCash)
	_, ok := l.PayByPatientID(4)
	require.True(t, ok)

	_, ok = l.PayByPatientID(4)
	assert.False(t, ok)

	pending, settled := l.ListAll()
	assert.Empty(t, pending)
	require.Len(t, settled, 1)
	assert.True(t, settled[0].Paid)

	// a new charge opens a fresh pending bill rather than touching history
	l.AddOrAccumulate(4, 12, model.PaymentCard)
	recs := l.FindByPatientID(4)
	require.Len(t, recs, 2)
	assert.False(t, recs[0].Paid)
	assert.Equal(t, 12.0, recs[0].Amount)
	assert.True(t, recs[1].Paid)
	assert.Equal(t, 30.0, recs[1].Amount)
}

func TestBillingLedger_FindUnknownPatient(t *testing.T) {
	l := NewBillingLedger()
	l.AddOrAccumulate(1, 10, model.PaymentCash)
	assert.Empty(t, l.FindByPatientID(2))
	_, ok := l.PayByPatientID(2)
	assert.False(t, ok)
}

func TestBillingLedger_RandomOperationsKeepMaxAtRoot(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := NewBillingLedger()
	for step := 0; step < 3000; step++ {
		switch rng.Intn(4) {
		case 0, 1:
			_, err := l.AddOrAccumulate(rng.Intn(60), float64(rng.Intn(1000)), model.PaymentCash)
			require.NoError(t, err)
		case 2:
			if l.PendingLen() == 0 {
				continue
			}
			var want float64
			for _, r := range l.pending {
				want = max(want, r.Amount)
			}
			rec, err := l.PayLargestPending()
			require.NoError(t, err)
			require.Equal(t, want, rec.Amount)
		case 3:
			l.PayByPatientID(rng.Intn(60))
		}
		requireHeap(t, l)
	}
}
