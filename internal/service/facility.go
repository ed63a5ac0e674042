// Package service wires the in-memory facility structures to the rest of
// the application: locking for concurrent HTTP callers, metrics, logging
// and event publication.
package service

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/metrics"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
	q "github.com/mahamabbas5/HospitalManagement-DSA/internal/queue"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/repository"
)

// Facility owns the bed index, the staff directory and the billing
// ledger. The three structures share nothing; each has its own lock so
// a slow ledger scan never blocks bed allocation.
type Facility struct {
	bedsMu sync.Mutex
	beds   *repository.BedIndex

	staffMu sync.Mutex
	staff   *repository.StaffDirectory

	ledgerMu sync.Mutex
	ledger   *repository.BillingLedger

	events  EventPublisher
	metrics *metrics.Metrics
	log     *zap.Logger

	// generation changes on every mutation; the response cache keys on it.
	generation atomic.Uint64
}

// NewFacility builds a facility whose staff directory starts with
// staffCapacity buckets. A nil publisher disables events.
func NewFacility(staffCapacity int, events EventPublisher, m *metrics.Metrics, log *zap.Logger) (*Facility, error) {
	staff, err := repository.NewStaffDirectory(staffCapacity)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = NopPublisher{}
	}
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Facility{
		beds:    repository.NewBedIndex(),
		staff:   staff,
		ledger:  repository.NewBillingLedger(),
		events:  events,
		metrics: m,
		log:     log,
	}, nil
}

// Generation returns a counter that changes whenever facility state does.
func (f *Facility) Generation() uint64 { return f.generation.Load() }

func (f *Facility) touch() { f.generation.Add(1) }

func (f *Facility) publish(ctx context.Context, ev q.FacilityEvent) {
	if err := f.events.Publish(ctx, ev); err != nil {
		f.log.Warn("event publish failed", zap.String("event_type", ev.Type), zap.Error(err))
	}
}

// ---- Beds ----

// BedSnapshot is a consistent view of the bed index.
type BedSnapshot struct {
	Beds   []model.Bed `json:"beds"`
	Total  int         `json:"total"`
	Free   int         `json:"free"`
	Height int         `json:"height"`
}

// AllocationResult describes the outcome of a bed request. When
// Allocated is false the patient was placed at WaitingPosition (1-based)
// and BedID is nil. Zero is a valid bed number.
type AllocationResult struct {
	Allocated       bool `json:"allocated"`
	BedID           *int `json:"bed_id,omitempty"`
	PatientID       int  `json:"patient_id"`
	WaitingPosition int  `json:"waiting_position,omitempty"`
}

// AddBeds inserts the given bed numbers and returns how many were new.
func (f *Facility) AddBeds(ids []int) int {
	f.bedsMu.Lock()
	added := 0
	for _, id := range ids {
		if f.beds.Insert(id) {
			added++
		}
	}
	f.bedsMu.Unlock()
	if added > 0 {
		f.touch()
	}
	f.log.Info("beds added", zap.Int("requested", len(ids)), zap.Int("added", added))
	return added
}

// AllocateBed hands a free bed to the patient or puts them on the
// waiting list.
func (f *Facility) AllocateBed(ctx context.Context, patientID int) AllocationResult {
	f.bedsMu.Lock()
	bedID, ok := f.beds.Allocate(patientID)
	res := AllocationResult{Allocated: ok, PatientID: patientID}
	if ok {
		res.BedID = &bedID
	} else {
		res.WaitingPosition = len(f.beds.WaitingList())
	}
	f.bedsMu.Unlock()
	f.touch()

	ev := q.NewEvent(q.EventBedAllocated)
	ev.PatientID = patientID
	if ok {
		ev.BedID = bedID
		f.metrics.BedsAllocated.Inc()
		f.log.Info("bed allocated", zap.Int("bed_id", bedID), zap.Int("patient_id", patientID))
	} else {
		ev.Type = q.EventBedWaitlisted
		f.metrics.BedsWaitlisted.Inc()
		f.log.Info("no bed available, patient waitlisted",
			zap.Int("patient_id", patientID), zap.Int("position", res.WaitingPosition))
	}
	f.publish(ctx, ev)
	return res
}

// ReleaseBed frees an allocated bed. found is false for unknown beds and
// released is false when the bed was already free.
func (f *Facility) ReleaseBed(ctx context.Context, bedID int) (found, released bool) {
	f.bedsMu.Lock()
	found, released = f.beds.Release(bedID)
	f.bedsMu.Unlock()
	if !released {
		return found, false
	}
	f.touch()
	f.metrics.BedsReleased.Inc()
	f.log.Info("bed released", zap.Int("bed_id", bedID))

	ev := q.NewEvent(q.EventBedReleased)
	ev.BedID = bedID
	f.publish(ctx, ev)
	return true, true
}

// Beds returns every bed in ascending order with index statistics.
func (f *Facility) Beds() BedSnapshot {
	f.bedsMu.Lock()
	defer f.bedsMu.Unlock()
	return BedSnapshot{
		Beds:   f.beds.Beds(),
		Total:  f.beds.Len(),
		Free:   f.beds.Free(),
		Height: f.beds.Height(),
	}
}

// WaitingList returns the waiting patient ids in arrival order.
func (f *Facility) WaitingList() []int {
	f.bedsMu.Lock()
	defer f.bedsMu.Unlock()
	return f.beds.WaitingList()
}

// ---- Staff ----

// StaffSnapshot is a consistent view of the staff directory.
type StaffSnapshot struct {
	Records    []model.StaffRecord `json:"records"`
	Entries    int                 `json:"entries"`
	Capacity   int                 `json:"capacity"`
	LoadFactor float64             `json:"load_factor"`
}

// AddStaff stores a staff record. See repository.StaffDirectory.Insert
// for the errors it can return.
func (f *Facility) AddStaff(rec model.StaffRecord) error {
	f.staffMu.Lock()
	before := f.staff.Resizes()
	err := f.staff.Insert(rec)
	grew := f.staff.Resizes() - before
	capacity := f.staff.Capacity()
	f.staffMu.Unlock()
	if err != nil {
		f.log.Info("staff insert rejected", zap.Int("staff_id", rec.ID), zap.Error(err))
		return err
	}
	f.touch()
	if grew > 0 {
		f.metrics.StaffResizes.Add(float64(grew))
		f.log.Info("staff directory resized", zap.Int("capacity", capacity))
	}
	return nil
}

// FindStaff looks up a staff record by id.
func (f *Facility) FindStaff(id int) (model.StaffRecord, bool, error) {
	f.staffMu.Lock()
	defer f.staffMu.Unlock()
	return f.staff.Find(id)
}

// DeleteStaff removes a staff record and reports whether it existed.
func (f *Facility) DeleteStaff(ctx context.Context, id int) (bool, error) {
	f.staffMu.Lock()
	ok, err := f.staff.Delete(id)
	f.staffMu.Unlock()
	if err != nil || !ok {
		return ok, err
	}
	f.touch()
	ev := q.NewEvent(q.EventStaffDeleted)
	ev.StaffID = id
	f.publish(ctx, ev)
	return true, nil
}

// Staff returns every staff record with directory statistics.
func (f *Facility) Staff() StaffSnapshot {
	f.staffMu.Lock()
	defer f.staffMu.Unlock()
	return StaffSnapshot{
		Records:    f.staff.All(),
		Entries:    f.staff.Len(),
		Capacity:   f.staff.Capacity(),
		LoadFactor: f.staff.LoadFactor(),
	}
}

// ---- Billing ----

// LedgerSnapshot holds copies of the pending and settled bills.
type LedgerSnapshot struct {
	Pending []model.BillingRecord `json:"pending"`
	Settled []model.BillingRecord `json:"settled"`
}

// AddBill charges amount to the patient's pending bill.
func (f *Facility) AddBill(patientID int, amount float64, method model.PaymentMethod) (model.BillingRecord, error) {
	f.ledgerMu.Lock()
	rec, err := f.ledger.AddOrAccumulate(patientID, amount, method)
	pending := f.ledger.PendingLen()
	f.ledgerMu.Unlock()
	if err != nil {
		return rec, err
	}
	f.touch()
	f.metrics.BillsPending.Set(float64(pending))
	return rec, nil
}

// PayLargestBill settles the largest pending bill. It returns
// repository.ErrEmptyLedger when nothing is pending.
func (f *Facility) PayLargestBill(ctx context.Context) (model.BillingRecord, error) {
	f.ledgerMu.Lock()
	rec, err := f.ledger.PayLargestPending()
	pending := f.ledger.PendingLen()
	f.ledgerMu.Unlock()
	if err != nil {
		return rec, err
	}
	f.settled(ctx, rec, pending)
	return rec, nil
}

// PayBill settles the patient's pending bill, if any.
func (f *Facility) PayBill(ctx context.Context, patientID int) (model.BillingRecord, bool) {
	f.ledgerMu.Lock()
	rec, ok := f.ledger.PayByPatientID(patientID)
	pending := f.ledger.PendingLen()
	f.ledgerMu.Unlock()
	if !ok {
		return rec, false
	}
	f.settled(ctx, rec, pending)
	return rec, true
}

func (f *Facility) settled(ctx context.Context, rec model.BillingRecord, pending int) {
	f.touch()
	f.metrics.BillsSettled.Inc()
	f.metrics.BillsPending.Set(float64(pending))
	f.log.Info("bill settled",
		zap.Int("patient_id", rec.PatientID),
		zap.Float64("amount", rec.Amount),
		zap.String("payment_method", string(rec.PaymentMethod)))

	ev := q.NewEvent(q.EventBillSettled)
	ev.PatientID = rec.PatientID
	ev.Amount = rec.Amount
	ev.PaymentMethod = string(rec.PaymentMethod)
	f.publish(ctx, ev)
}

// LargestBill returns the largest pending bill without settling it.
func (f *Facility) LargestBill() (model.BillingRecord, bool) {
	f.ledgerMu.Lock()
	defer f.ledgerMu.Unlock()
	return f.ledger.LargestPending()
}

// FindBills returns every pending and settled bill of the patient.
func (f *Facility) FindBills(patientID int) []model.BillingRecord {
	f.ledgerMu.Lock()
	defer f.ledgerMu.Unlock()
	return f.ledger.FindByPatientID(patientID)
}

// Bills returns all pending and settled bills.
func (f *Facility) Bills() LedgerSnapshot {
	f.ledgerMu.Lock()
	defer f.ledgerMu.Unlock()
	pending, settled := f.ledger.ListAll()
	return LedgerSnapshot{Pending: pending, Settled: settled}
}
