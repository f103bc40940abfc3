package domain

import "sync"

// DemandLedger is the remaining-demand state of one dispatch. It is owned by
// the dispatch driver and passed explicitly; Take is a check-and-decrement so
// concurrent callers can never deliver the same units twice.
type DemandLedger struct {
	mu        sync.Mutex
	remaining map[int]int
	initial   map[int]int
}

// NewDemandLedger seeds the ledger from every location with positive demand.
func NewDemandLedger(locations []Location) *DemandLedger {
	d := &DemandLedger{
		remaining: make(map[int]int),
		initial:   make(map[int]int),
	}
	for _, l := range locations {
		if l.Demand <= 0 {
			continue
		}
		d.remaining[l.ID] += l.Demand
		d.initial[l.ID] += l.Demand
	}
	return d
}

func (d *DemandLedger) Remaining(id int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remaining[id]
}

func (d *DemandLedger) Initial(id int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initial[id]
}

// Outstanding returns ids that still need goods, ascending.
func (d *DemandLedger) Outstanding() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]int, 0, len(d.remaining))
	for _, id := range sortedIDs(d.remaining) {
		if d.remaining[id] > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Take delivers up to want units at id and returns how many were taken.
func (d *DemandLedger) Take(id, want int) int {
	if want <= 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.remaining[id]
	if n <= 0 {
		return 0
	}
	if want < n {
		n = want
	}
	d.remaining[id] -= n
	return n
}

func (d *DemandLedger) Done() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range d.remaining {
		if n > 0 {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the remaining demand per id.
func (d *DemandLedger) Snapshot() map[int]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[int]int, len(d.remaining))
	for id, n := range d.remaining {
		out[id] = n
	}
	return out
}
