package stack

import (
	"strings"

	"github.com/example/stackarch/internal/core/catalog"
)

// Record is the flat keyed form of a State used for snapshots and presets.
// Set-valued categories are comma-joined in catalog order.
type Record map[string]string

// ToRecord flattens s.
func ToRecord(s State) Record {
	rec := Record{string(catalog.ProjectName): s.ProjectName}
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			rec[string(c)] = strings.Join(canonicalSet(c, s.Set(c)), ",")
			continue
		}
		rec[string(c)] = s.Value(c)
	}
	return rec
}

// FromRecord rebuilds a State on top of base. Unknown keys are ignored, unknown
// set members are dropped and unknown single values keep the base value.
// The result is not trusted to be normalized.
func FromRecord(base State, rec Record) State {
	out := base.Clone()
	for key, value := range rec {
		c, ok := catalog.ParseCategory(key)
		if !ok {
			continue
		}
		if c == catalog.ProjectName {
			out.ProjectName = value
			continue
		}
		if catalog.IsMulti(c) {
			var ids []string
			for _, id := range strings.Split(value, ",") {
				id = strings.TrimSpace(id)
				if catalog.Has(c, id) {
					ids = append(ids, id)
				}
			}
			out = out.WithSet(c, ids)
			continue
		}
		if catalog.Has(c, value) {
			out = out.With(c, value)
		}
	}
	return out
}

// RecordVersion is the snapshot record format written by ToRecord.
const RecordVersion = 1
