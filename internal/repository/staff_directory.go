package repository

import (
	"fmt"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
)

// DefaultStaffCapacity is the initial number of buckets used when the
// configuration does not override it.
const DefaultStaffCapacity = 10

// maxLoadFactor is the entries/buckets ratio above which the table grows.
const maxLoadFactor = 0.75

// staffEntry is a link in a bucket chain. Each entry is owned by its
// predecessor (or by the bucket head).
type staffEntry struct {
	rec  model.StaffRecord
	next *staffEntry
}

// StaffDirectory is a hash table with separate chaining keyed by staff
// id. The hash is id mod len(buckets); the table doubles and rehashes
// once the load factor exceeds 0.75.
//
// StaffDirectory is not safe for concurrent use.
type StaffDirectory struct {
	buckets []*staffEntry
	count   int
	resizes int
}

// NewStaffDirectory returns a directory with the given number of
// buckets. capacity must be positive.
func NewStaffDirectory(capacity int) (*StaffDirectory, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: initial capacity must be greater than zero, got %d", ErrInvalidArgument, capacity)
	}
	return &StaffDirectory{buckets: make([]*staffEntry, capacity)}, nil
}

func (d *StaffDirectory) bucket(id int) int { return id % len(d.buckets) }

// Insert stores rec. It fails with ErrInvalidArgument for a negative id
// or unknown role, and with ErrDuplicateKey when the id is already
// present; in both cases the directory is not modified.
func (d *StaffDirectory) Insert(rec model.StaffRecord) error {
	if rec.ID < 0 {
		return fmt.Errorf("%w: staff id cannot be negative: %d", ErrInvalidArgument, rec.ID)
	}
	if !rec.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, rec.Role)
	}
	i := d.bucket(rec.ID)
	for e := d.buckets[i]; e != nil; e = e.next {
		if e.rec.ID == rec.ID {
			return fmt.Errorf("%w: staff id %d", ErrDuplicateKey, rec.ID)
		}
	}
	d.buckets[i] = &staffEntry{rec: rec, next: d.buckets[i]}
	d.count++
	if float64(d.count)/float64(len(d.buckets)) > maxLoadFactor {
		d.resize()
	}
	return nil
}

// resize doubles the bucket count and relinks every entry into its new
// bucket. Entries are moved, not copied, so each record stays unique.
func (d *StaffDirectory) resize() {
	old := d.buckets
	d.buckets = make([]*staffEntry, len(old)*2)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			i := d.bucket(e.rec.ID)
			e.next = d.buckets[i]
			d.buckets[i] = e
			e = next
		}
	}
	d.resizes++
}

// Find looks up a record by id. A missing id is reported with
// found == false; only a negative id is an error.
func (d *StaffDirectory) Find(id int) (rec model.StaffRecord, found bool, err error) {
	if id < 0 {
		return model.StaffRecord{}, false, fmt.Errorf("%w: staff id cannot be negative: %d", ErrInvalidArgument, id)
	}
	for e := d.buckets[d.bucket(id)]; e != nil; e = e.next {
		if e.rec.ID == id {
			return e.rec, true, nil
		}
	}
	return model.StaffRecord{}, false, nil
}

// Delete removes the record with the given id and reports whether one
// existed. Only a negative id is an error.
func (d *StaffDirectory) Delete(id int) (bool, error) {
	if id < 0 {
		return false, fmt.Errorf("%w: staff id cannot be negative: %d", ErrInvalidArgument, id)
	}
	i := d.bucket(id)
	var prev *staffEntry
	for e := d.buckets[i]; e != nil; prev, e = e, e.next {
		if e.rec.ID != id {
			continue
		}
		if prev == nil {
			d.buckets[i] = e.next
		} else {
			prev.next = e.next
		}
		d.count--
		return true, nil
	}
	return false, nil
}

// All returns every live record in bucket order.
func (d *StaffDirectory) All() []model.StaffRecord {
	out := make([]model.StaffRecord, 0, d.count)
	for _, head := range d.buckets {
		for e := head; e != nil; e = e.next {
			out = append(out, e.rec)
		}
	}
	return out
}

// Len returns the number of live records.
func (d *StaffDirectory) Len() int { return d.count }

// Capacity returns the current bucket count.
func (d *StaffDirectory) Capacity() int { return len(d.buckets) }

// Resizes returns how many times the table has grown.
func (d *StaffDirectory) Resizes() int { return d.resizes }

// LoadFactor returns entries divided by buckets.
func (d *StaffDirectory) LoadFactor() float64 {
	return float64(d.count) / float64(len(d.buckets))
}
