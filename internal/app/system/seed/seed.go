// Package seed derives stable pseudo-random seeds and orderings.
//
// The same input always produces the same seed, and the same seed always
// produces the same ordering, so "shuffled" result lists are reproducible
// for a given visitor session or wizard selection.
package seed

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dalemusser/vethub/internal/domain/models"
)

// ForSession returns the seed for an opaque session identifier.
func ForSession(id string) uint64 {
	return xxhash.Sum64String(id)
}

// ForSelection returns the seed for a wizard selection. An explicit
// SelectionHash wins; otherwise the seed is derived from the canonical
// selection so identical selections still order identically.
func ForSelection(s models.Selection) uint64 {
	if s.SelectionHash != "" {
		return xxhash.Sum64String(s.SelectionHash)
	}
	var b strings.Builder
	b.WriteString(s.CategoryID)
	b.WriteByte('|')
	b.WriteString(strings.Join(s.SymptomIDs, ","))
	b.WriteByte('|')
	b.WriteString(s.SeverityID)
	return xxhash.Sum64String(b.String())
}

// Key returns the ordering key of id under seed.
func Key(seed uint64, id string) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(id)
	return d.Sum64()
}

// Less orders two ids by their keys under seed, breaking ties on the id.
func Less(seed uint64, a, b string) bool {
	ka, kb := Key(seed, a), Key(seed, b)
	if ka != kb {
		return ka < kb
	}
	return a < b
}

// Pick maps seed onto [0, n). n must be positive.
func Pick(seed uint64, n int) int {
	return int(seed % uint64(n))
}
