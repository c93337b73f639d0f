package rationale

import "sort"

// Slot pairs a descriptor with the render slot its source owns.
type Slot struct {
	Index      int
	Descriptor Descriptor
}

// Reconciler holds the descriptor list of the latest frame and keeps each
// source pinned to one render slot for as long as the source stays present.
type Reconciler struct {
	current []Descriptor
	slots   map[string]int
	free    []int
	next    int
}

// NewReconciler creates an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{slots: make(map[string]int)}
}

// Reconcile replaces the current list with next and returns it.
func (r *Reconciler) Reconcile(next []Descriptor) []Descriptor {
	if r == nil {
		return next
	}
	if r.slots == nil {
		r.slots = make(map[string]int)
	}

	present := make(map[string]struct{}, len(next))
	for _, d := range next {
		present[d.SourceID] = struct{}{}
	}
	for id, slot := range r.slots {
		if _, ok := present[id]; !ok {
			delete(r.slots, id)
			r.free = append(r.free, slot)
		}
	}
	sort.Ints(r.free)

	for _, d := range next {
		if _, ok := r.slots[d.SourceID]; ok {
			continue
		}
		r.slots[d.SourceID] = r.allocate()
	}

	r.current = append(r.current[:0:0], next...)
	return r.current
}

// Current returns the latest descriptor list.
func (r *Reconciler) Current() []Descriptor {
	if r == nil {
		return nil
	}
	return r.current
}

// SlotOf returns the slot owned by a source.
func (r *Reconciler) SlotOf(sourceID string) (int, bool) {
	if r == nil {
		return 0, false
	}
	slot, ok := r.slots[sourceID]
	return slot, ok
}

// Slots returns the current descriptors paired with their slots, in list order.
func (r *Reconciler) Slots() []Slot {
	if r == nil {
		return nil
	}
	out := make([]Slot, 0, len(r.current))
	for _, d := range r.current {
		out = append(out, Slot{Index: r.slots[d.SourceID], Descriptor: d})
	}
	return out
}

// Capacity is one past the highest slot ever handed out.
func (r *Reconciler) Capacity() int {
	if r == nil {
		return 0
	}
	return r.next
}

// Reset drops every slot and the current list.
func (r *Reconciler) Reset() {
	if r == nil {
		return
	}
	r.current = nil
	r.slots = make(map[string]int)
	r.free = nil
	r.next = 0
}

func (r *Reconciler) allocate() int {
	if len(r.free) > 0 {
		slot := r.free[0]
		r.free = r.free[1:]
		return slot
	}
	slot := r.next
	r.next++
	return slot
}
