package domain

import (
	"fmt"
	"sort"
	"strings"
)

// EditKind distinguishes insertions from removals.
type EditKind string

const (
	EditInsert EditKind = "insert"
	EditRemove EditKind = "remove"
)

// Edit is a text change against the original buffer. A removal always has
// empty Text; an insertion always has Start == End.
type Edit struct {
	Kind  EditKind `json:"kind"`
	Start int      `json:"start"`
	End   int      `json:"end"`
	Text  string   `json:"text"`
}

func InsertAt(offset int, text string) Edit {
	return Edit{Kind: EditInsert, Start: offset, End: offset, Text: text}
}

func RemoveRange(start, end int) Edit {
	return Edit{Kind: EditRemove, Start: start, End: end}
}

// ApplyEdits applies non-overlapping edits to text and returns the result
// together with the number of edits applied. Edits overlapping an earlier
// one (by start offset) are left out; a further pass picks them up. Edits
// that change nothing are not counted.
func ApplyEdits(text string, edits []Edit) (string, int, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(text))
	last, applied := 0, 0
	for _, e := range sorted {
		if e.Start < 0 || e.End > len(text) || e.Start > e.End {
			return "", 0, fmt.Errorf("edit [%d,%d) outside buffer of length %d", e.Start, e.End, len(text))
		}
		if e.Start < last || (e.Kind == EditRemove && e.Start == e.End) || (e.Kind == EditInsert && e.Text == "") {
			continue
		}
		b.WriteString(text[last:e.Start])
		b.WriteString(e.Text)
		last = e.End
		applied++
	}
	b.WriteString(text[last:])
	return b.String(), applied, nil
}
