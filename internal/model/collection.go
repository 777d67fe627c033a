package model

import (
	"encoding/json"
	"sort"
)

// Collection is the persisted record list, most recent first.
type Collection []LogRecord

// DecodeCollection parses a persisted collection. Empty input is an empty collection.
func DecodeCollection(raw []byte) (Collection, error) {
	if len(raw) == 0 {
		return Collection{}, nil
	}
	var c Collection
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// Encode serializes the collection as a JSON array.
func (c Collection) Encode() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]LogRecord(c))
}

// PushFront returns a new collection with rec at the head.
func (c Collection) PushFront(rec LogRecord) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, rec)
	return append(out, c...)
}

// Truncate keeps the first n records and reports how many were dropped.
func (c Collection) Truncate(n int) (Collection, int) {
	if n < 0 {
		n = 0
	}
	if len(c) <= n {
		return c, 0
	}
	return c[:n], len(c) - n
}

// RemoveByTime drops every record whose Time equals ts.
func (c Collection) RemoveByTime(ts string) (Collection, int) {
	out := make(Collection, 0, len(c))
	for _, rec := range c {
		if rec.Time == ts {
			continue
		}
		out = append(out, rec)
	}
	return out, len(c) - len(out)
}

// SortedByTimeDesc returns a copy ordered newest first. Ties keep their
// stored order; records with unparsable timestamps go last.
func (c Collection) SortedByTimeDesc() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := out[i].ParsedTime()
		tj, okJ := out[j].ParsedTime()
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}
