package repository

import "github.com/mahamabbas5/HospitalManagement-DSA/internal/model"

// bedNode is one slot in the AVL tree. Each node exclusively owns its
// children.
type bedNode struct {
	id        int
	available bool
	height    int
	left      *bedNode
	right     *bedNode
}

// BedIndex is a height-balanced binary search tree keyed by bed number.
// It hands out "some free bed" in O(log n) and keeps a waiting list of
// patients for whom no bed was free. Beds are never removed.
//
// BedIndex is not safe for concurrent use; callers serialize access.
type BedIndex struct {
	root    *bedNode
	size    int
	free    int
	waiting []int
}

// NewBedIndex returns an empty index.
func NewBedIndex() *BedIndex { return &BedIndex{} }

// Insert adds a bed with the given number. Duplicate numbers are
// ignored; the return value reports whether a new bed was created.
func (x *BedIndex) Insert(id int) bool {
	var added bool
	x.root = insertBed(x.root, id, &added)
	if added {
		x.size++
		x.free++
	}
	return added
}

// Allocate marks the first available bed (in-order, so the lowest
// numbered free bed) as taken and returns its number. When every bed is
// occupied the patient is appended to the waiting list and ok is false.
func (x *BedIndex) Allocate(patientID int) (bedID int, ok bool) {
	n := firstAvailable(x.root)
	if n == nil {
		x.waiting = append(x.waiting, patientID)
		return 0, false
	}
	n.available = false
	x.free--
	return n.id, true
}

// Release marks an allocated bed as available again. found is false
// for unknown bed numbers; released is false when the bed was already
// free. The waiting list is not re-matched.
func (x *BedIndex) Release(id int) (found, released bool) {
	n := x.root
	for n != nil && n.id != id {
		if id < n.id {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n == nil {
		return false, false
	}
	if n.available {
		return true, false
	}
	n.available = true
	x.free++
	return true, true
}

// Beds lists every bed in ascending order.
func (x *BedIndex) Beds() []model.Bed {
	out := make([]model.Bed, 0, x.size)
	var walk func(n *bedNode)
	walk = func(n *bedNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, model.Bed{ID: n.id, Available: n.available})
		walk(n.right)
	}
	walk(x.root)
	return out
}

// WaitingList returns a copy of the waiting patient ids in arrival order.
func (x *BedIndex) WaitingList() []int {
	out := make([]int, len(x.waiting))
	copy(out, x.waiting)
	return out
}

// Len returns the number of beds in the index.
func (x *BedIndex) Len() int { return x.size }

// Free returns the number of beds currently available.
func (x *BedIndex) Free() int { return x.free }

// Height returns the height of the tree (0 when empty).
func (x *BedIndex) Height() int { return height(x.root) }

func insertBed(n *bedNode, id int, added *bool) *bedNode {
	if n == nil {
		*added = true
		return &bedNode{id: id, available: true, height: 1}
	}
	switch {
	case id < n.id:
		n.left = insertBed(n.left, id, added)
	case id > n.id:
		n.right = insertBed(n.right, id, added)
	default:
		return n
	}
	fixHeight(n)
	return rebalance(n)
}

// firstAvailable does a depth-first search: left subtree, node, right subtree.
func firstAvailable(n *bedNode) *bedNode {
	if n == nil {
		return nil
	}
	if found := firstAvailable(n.left); found != nil {
		return found
	}
	if n.available {
		return n
	}
	return firstAvailable(n.right)
}

func height(n *bedNode) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *bedNode) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func fixHeight(n *bedNode) {
	n.height = 1 + max(height(n.left), height(n.right))
}

func rotateRight(y *bedNode) *bedNode {
	x := y.left
	y.left = x.right
	x.right = y
	fixHeight(y)
	fixHeight(x)
	return x
}

func rotateLeft(x *bedNode) *bedNode {
	y := x.right
	x.right = y.left
	y.left = x
	fixHeight(x)
	fixHeight(y)
	return y
}

func rebalance(n *bedNode) *bedNode {
	bf := balanceFactor(n)
	switch {
	case bf > 1 && balanceFactor(n.left) >= 0: // left-left
		return rotateRight(n)
	case bf < -1 && balanceFactor(n.right) <= 0: // right-right
		return rotateLeft(n)
	case bf > 1: // left-right
		n.left = rotateLeft(n.left)
		return rotateRight(n)
	case bf < -1: // right-left
		n.right = rotateRight(n.right)
		return rotateLeft(n)
	}
	return n
}
