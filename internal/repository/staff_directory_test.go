package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
)

func staff(id int, name string) model.StaffRecord {
	return model.StaffRecord{ID: id, Name: name, Role: model.RoleNurse, Department: "ER", Shift: "night"}
}

func TestNewStaffDirectory_RejectsNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -3} {
		d, err := NewStaffDirectory(c)
		assert.Nil(t, d)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "capacity %d", c)
	}
}

func TestStaffDirectory_InsertFindDelete(t *testing.T) {
	d, err := NewStaffDirectory(DefaultStaffCapacity)
	require.NoError(t, err)

	require.NoError(t, d.Insert(staff(5, "Amina")))
	rec, found, err := d.Find(5)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Amina", rec.Name)

	ok, err := d.Delete(5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, d.Len())

	_, found, err = d.Find(5)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = d.Delete(5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaffDirectory_DuplicateRejected(t *testing.T) {
	d, _ := NewStaffDirectory(DefaultStaffCapacity)
	require.NoError(t, d.Insert(staff(5, "First")))

	err := d.Insert(staff(5, "Second"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	rec, found, _ := d.Find(5)
	require.True(t, found)
	assert.Equal(t, "First", rec.Name)
	assert.Equal(t, 1, d.Len())
}

func TestStaffDirectory_NegativeIDs(t *testing.T) {
	d, _ := NewStaffDirectory(DefaultStaffCapacity)

	err := d.Insert(staff(-1, "Nope"))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, d.Len())

	_, _, err = d.Find(-1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = d.Delete(-1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestStaffDirectory_UnknownRoleRejected(t *testing.T) {
	d, _ := NewStaffDirectory(DefaultStaffCapacity)
	rec := staff(1, "X")
	rec.Role = "surgeons"
	assert.True(t, errors.Is(d.Insert(rec), ErrInvalidArgument))
	assert.Equal(t, 0, d.Len())
}

func TestStaffDirectory_GrowthKeepsEveryRecord(t *testing.T) {
	d, _ := NewStaffDirectory(DefaultStaffCapacity)
	const n = 500
	for i := 0; i < n; i++ {
		require.NoError(t, d.Insert(staff(i*7, fmt.Sprintf("s%d", i))))
		require.LessOrEqual(t, d.LoadFactor(), maxLoadFactor)
	}
	assert.Equal(t, n, d.Len())
	assert.Greater(t, d.Resizes(), 0)
	assert.Equal(t, DefaultStaffCapacity<<d.Resizes(), d.Capacity())

	for i := 0; i < n; i++ {
		rec, found, err := d.Find(i * 7)
		require.NoError(t, err)
		require.True(t, found, "id %d lost after resize", i*7)
		assert.Equal(t, fmt.Sprintf("s%d", i), rec.Name)
	}

	ids := map[int]int{}
	for _, r := range d.All() {
		ids[r.ID]++
	}
	assert.Len(t, ids, n)
	for id, c := range ids {
		assert.Equal(t, 1, c, "id %d duplicated", id)
	}
}

func TestStaffDirectory_ResizeThreshold(t *testing.T) {
	d, _ := NewStaffDirectory(4)
	// 3/4 is not above the threshold
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Insert(staff(i, "a")))
	}
	assert.Equal(t, 4, d.Capacity())
	require.NoError(t, d.Insert(staff(3, "a")))
	assert.Equal(t, 8, d.Capacity())
}

func TestStaffDirectory_DeleteFromChainMiddle(t *testing.T) {
	d, _ := NewStaffDirectory(100)
	// 1, 101 and 201 share bucket 1; insertion prepends
	for _, id := range []int{1, 101, 201} {
		require.NoError(t, d.Insert(staff(id, "c")))
	}
	ok, err := d.Delete(101)
	require.NoError(t, err)
	require.True(t, ok)

	for _, id := range []int{1, 201} {
		_, found, _ := d.Find(id)
		assert.True(t, found, "id %d", id)
	}
	_, found, _ := d.Find(101)
	assert.False(t, found)
	assert.Equal(t, 2, d.Len())
}
