package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/metrics"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
	q "github.com/mahamabbas5/HospitalManagement-DSA/internal/queue"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []q.FacilityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev q.FacilityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func newTestFacility(t *testing.T) (*Facility, *recordingPublisher, *metrics.Metrics) {
	t.Helper()
	pub := &recordingPublisher{}
	m := metrics.New()
	f, err := NewFacility(repository.DefaultStaffCapacity, pub, m, zap.NewNop())
	require.NoError(t, err)
	return f, pub, m
}

func TestNewFacility_RejectsBadCapacity(t *testing.T) {
	_, err := NewFacility(0, nil, nil, nil)
	assert.True(t, errors.Is(err, repository.ErrInvalidArgument))
}

func TestFacility_BedFlow(t *testing.T) {
	f, pub, m := newTestFacility(t)
	ctx := context.Background()

	assert.Equal(t, 5, f.AddBeds([]int{1, 2, 3, 4, 5, 3}))
	for p := 1; p <= 5; p++ {
		res := f.AllocateBed(ctx, p)
		require.True(t, res.Allocated)
	}
	res := f.AllocateBed(ctx, 6)
	assert.False(t, res.Allocated)
	assert.Equal(t, 1, res.WaitingPosition)
	assert.Equal(t, []int{6}, f.WaitingList())

	snap := f.Beds()
	assert.Equal(t, 5, snap.Total)
	assert.Equal(t, 0, snap.Free)

	found, released := f.ReleaseBed(ctx, 3)
	assert.True(t, found)
	assert.True(t, released)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.BedsAllocated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BedsWaitlisted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BedsReleased))

	types := pub.types()
	require.Len(t, types, 7)
	assert.Equal(t, q.EventBedWaitlisted, types[5])
	assert.Equal(t, q.EventBedReleased, types[6])
}

func TestFacility_StaffResizeMetric(t *testing.T) {
	f, _, m := newTestFacility(t)
	for i := 0; i < 8; i++ {
		require.NoError(t, f.AddStaff(model.StaffRecord{ID: i, Name: "n", Role: model.RoleDoctor}))
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StaffResizes))
	snap := f.Staff()
	assert.Equal(t, 8, snap.Entries)
	assert.Equal(t, 20, snap.Capacity)

	err := f.AddStaff(model.StaffRecord{ID: 3, Name: "dup", Role: model.RoleDoctor})
	assert.True(t, errors.Is(err, repository.ErrDuplicateKey))
}

func TestFacility_DeleteStaffPublishes(t *testing.T) {
	f, pub, _ := newTestFacility(t)
	ctx := context.Background()
	require.NoError(t, f.AddStaff(model.StaffRecord{ID: 12, Name: "n", Role: model.RoleJanitor}))

	ok, err := f.DeleteStaff(ctx, 12)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.DeleteStaff(ctx, 12)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{q.EventStaffDeleted}, pub.types())
}

func TestFacility_BillingFlow(t *testing.T) {
	f, pub, m := newTestFacility(t)
	ctx := context.Background()

	_, err := f.PayLargestBill(ctx)
	assert.True(t, errors.Is(err, repository.ErrEmptyLedger))

	_, err = f.AddBill(7, 100, model.PaymentCash)
	require.NoError(t, err)
	_, err = f.AddBill(3, 250, model.PaymentCard)
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BillsPending))

	rec, err := f.PayLargestBill(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.PatientID)

	rec, ok := f.PayBill(ctx, 7)
	require.True(t, ok)
	assert.Equal(t, 100.0, rec.Amount)
	_, ok = f.PayBill(ctx, 7)
	assert.False(t, ok)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BillsSettled))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BillsPending))
	assert.Len(t, f.Bills().Settled, 2)
	assert.Equal(t, []string{q.EventBillSettled, q.EventBillSettled}, pub.types())
}

func TestFacility_PublishFailureDoesNotFailOperation(t *testing.T) {
	f, pub, _ := newTestFacility(t)
	pub.err = errors.New("broker down")
	f.AddBeds([]int{1})
	res := f.AllocateBed(context.Background(), 1)
	assert.True(t, res.Allocated)
}

func TestFacility_GenerationChangesOnMutation(t *testing.T) {
	f, _, _ := newTestFacility(t)
	g0 := f.Generation()
	f.Beds()
	f.Bills()
	assert.Equal(t, g0, f.Generation())

	f.AddBeds([]int{1})
	assert.NotEqual(t, g0, f.Generation())

	g1 := f.Generation()
	_, err := f.AddBill(1, -1, model.PaymentCash)
	require.Error(t, err)
	assert.Equal(t, g1, f.Generation())
}

func TestFacility_ConcurrentAllocation(t *testing.T) {
	f, _, _ := newTestFacility(t)
	ids := make([]int, 50)
	for i := range ids {
		ids[i] = i + 1
	}
	f.AddBeds(ids)

	var wg sync.WaitGroup
	results := make(chan AllocationResult, 80)
	for p := 0; p < 80; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			results <- f.AllocateBed(context.Background(), p)
		}(p)
	}
	wg.Wait()
	close(results)

	beds := map[int]bool{}
	waiting := 0
	for r := range results {
		if r.Allocated {
			require.NotNil(t, r.BedID)
			require.False(t, beds[*r.BedID], "bed %d handed out twice", *r.BedID)
			beds[*r.BedID] = true
		} else {
			waiting++
		}
	}
	assert.Len(t, beds, 50)
	assert.Equal(t, 30, waiting)
	assert.Len(t, f.WaitingList(), 30)
}
