package swap

import "sync"

// lockTable hands out one mutex per slot id so that operations touching the
// same slots serialize while everything else runs in parallel. Mutexes are
// retained for the life of the process; the table is bounded by the number
// of distinct slots ever locked.
type lockTable struct {
	mu    sync.Mutex
	slots map[uint]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{slots: make(map[uint]*sync.Mutex)}
}

func (t *lockTable) get(id uint) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.slots[id]
	if !ok {
		m = &sync.Mutex{}
		t.slots[id] = m
	}
	return m
}

// lock acquires the mutex for a single slot and returns its release func.
func (t *lockTable) lock(id uint) func() {
	m := t.get(id)
	m.Lock()
	return m.Unlock
}

// lockPair acquires both slot mutexes in ascending id order. The fixed order
// means two swaps contending on overlapping pairs can never deadlock.
func (t *lockTable) lockPair(a, b uint) func() {
	if a > b {
		a, b = b, a
	}
	first := t.get(a)
	first.Lock()
	if a == b {
		return first.Unlock
	}
	second := t.get(b)
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
