package ranking

import "github.com/dalemusser/vethub/internal/domain/models"

// standardCap bounds the round-robin phase of the standard interleave.
const standardCap = 10

type emitter struct {
	out  []models.Resource
	seen map[string]struct{}
}

func newEmitter(n int) *emitter {
	return &emitter{
		out:  make([]models.Resource, 0, n),
		seen: make(map[string]struct{}, n),
	}
}

func (e *emitter) add(r models.Resource) {
	if _, dup := e.seen[r.ID]; dup {
		return
	}
	e.seen[r.ID] = struct{}{}
	e.out = append(e.out, r)
}

func (e *emitter) addRange(rs []models.Resource, from, to int) {
	if from > len(rs) {
		from = len(rs)
	}
	if to > len(rs) {
		to = len(rs)
	}
	for _, r := range rs[from:to] {
		e.add(r)
	}
}

func (e *emitter) addAll(rs []models.Resource) {
	for _, r := range rs {
		e.add(r)
	}
}

func (b Buckets) size() int { return len(b.VA) + len(b.NGO) + len(b.Other) }

// urgent emits 5 VA, 3 NGO, the next 5 VA, 3 Other, then the remaining
// NGO, VA and Other records.
func (b Buckets) urgent() []models.Resource {
	e := newEmitter(b.size())
	e.addRange(b.VA, 0, 5)
	e.addRange(b.NGO, 0, 3)
	e.addRange(b.VA, 5, 10)
	e.addRange(b.Other, 0, 3)
	e.addAll(b.NGO)
	e.addAll(b.VA)
	e.addAll(b.Other)
	return e.out
}

// standard round-robins for the first standardCap indexes, emitting
// NGO[i], VA[i/2] on even i, and Other[i], then appends the remaining VA,
// NGO and Other records.
func (b Buckets) standard() []models.Resource {
	e := newEmitter(b.size())
	for i := 0; i < standardCap; i++ {
		if i < len(b.NGO) {
			e.add(b.NGO[i])
		}
		if i%2 == 0 && i/2 < len(b.VA) {
			e.add(b.VA[i/2])
		}
		if i < len(b.Other) {
			e.add(b.Other[i])
		}
	}
	e.addAll(b.VA)
	e.addAll(b.NGO)
	e.addAll(b.Other)
	return e.out
}
