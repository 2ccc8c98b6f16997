package reconcile

import (
	"cmp"
	"slices"
)

// IndexPath locates a row inside a section.
type IndexPath struct {
	Section int `json:"section"`
	Row     int `json:"row"`
}

// Move relocates a section from one index to another.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// RowMove relocates a row. From is the row's position after Phase1 and To its
// final position.
type RowMove struct {
	From IndexPath `json:"from"`
	To   IndexPath `json:"to"`
}

// Batch is one atomic group of list updates.
type Batch struct {
	DeleteSections []int       `json:"delete_sections,omitempty"`
	InsertSections []int       `json:"insert_sections,omitempty"`
	ReloadSections []int       `json:"reload_sections,omitempty"`
	MoveSections   []Move      `json:"move_sections,omitempty"`
	DeleteRows     []IndexPath `json:"delete_rows,omitempty"`
	InsertRows     []IndexPath `json:"insert_rows,omitempty"`
	MoveRows       []RowMove   `json:"move_rows,omitempty"`
	ReloadRows     []IndexPath `json:"reload_rows,omitempty"`
}

// Empty reports whether the batch contains no updates.
func (b Batch) Empty() bool {
	return len(b.DeleteSections) == 0 && len(b.InsertSections) == 0 &&
		len(b.ReloadSections) == 0 && len(b.MoveSections) == 0 &&
		len(b.DeleteRows) == 0 && len(b.InsertRows) == 0 &&
		len(b.MoveRows) == 0 && len(b.ReloadRows) == 0
}

// Plan is the result of a reconciliation. Phase2 must be applied only after
// Phase1 has completed. A Plan is a value; callers must not modify its slices.
type Plan struct {
	Phase1 Batch `json:"phase1"`
	Phase2 Batch `json:"phase2"`
}

// Empty reports whether old and new lists were identical.
func (p Plan) Empty() bool {
	return p.Phase1.Empty() && p.Phase2.Empty()
}

// PlanSections reconciles two lists of sections.
//
// Removed sections are deleted and new ones inserted. A retained section
// whose NeedsReload is true is reloaded as a whole and its rows are not
// diffed. Every other retained section gets a row-level diff: row deletions
// and insertions join Phase1, row moves and reloads join Phase2. Sections
// that changed relative order are moved in Phase2.
//
// An empty prev produces a single insertion of every section.
func PlanSections[S Section[S, R], R Reloadable[R]](prev, next []S) Plan {
	var p Plan
	if len(prev) == 0 {
		p.Phase1.InsertSections = indices(len(next))
		return p
	}

	nextToPrev, prevToNext := match(prev, next, equatable[S])
	working := retained(prevToNext, &p.Phase1.DeleteSections)

	rows := make([]*diffResult, len(next))
	for i, j := range nextToPrev {
		switch {
		case j == -1:
			working = slices.Insert(working, i, slot{prev: -1, next: i})
			p.Phase1.InsertSections = append(p.Phase1.InsertSections, i)
		case next[i].NeedsReload(prev[j]):
			p.Phase1.ReloadSections = append(p.Phase1.ReloadSections, i)
		default:
			d := diff(prev[j].Rows(), next[i].Rows(), equatable[R], reloadable[R])
			rows[i] = &d
		}
	}

	// Position of every new section once Phase1 has been applied.
	position := make([]int, len(next))
	for pos, s := range working {
		position[s.next] = pos
	}

	for i, d := range rows {
		if d == nil {
			continue
		}
		p.Phase1.DeleteRows = append(p.Phase1.DeleteRows, paths(nextToPrev[i], d.deleted)...)
		p.Phase1.InsertRows = append(p.Phase1.InsertRows, paths(position[i], d.inserted)...)
	}

	p.Phase2.MoveSections = minimalMoves(working)
	for i, d := range rows {
		if d == nil {
			continue
		}
		for _, m := range d.moves {
			p.Phase2.MoveRows = append(p.Phase2.MoveRows, RowMove{
				From: IndexPath{Section: position[i], Row: m.From},
				To:   IndexPath{Section: i, Row: m.To},
			})
		}
		p.Phase2.ReloadRows = append(p.Phase2.ReloadRows, paths(i, d.reloads)...)
	}
	return p
}

// PlanRows reconciles the rows of a single section. Rows are only moved,
// never reloaded.
func PlanRows[R Equatable[R]](prev, next []R, section int) Plan {
	return rowPlan(diff(prev, next, equatable[R], nil), section)
}

// PlanRowsReloading is PlanRows that also reloads retained rows whose
// NeedsReload is true.
func PlanRowsReloading[R Reloadable[R]](prev, next []R, section int) Plan {
	return rowPlan(diff(prev, next, equatable[R], reloadable[R]), section)
}

func rowPlan(d diffResult, section int) Plan {
	var p Plan
	p.Phase1.DeleteRows = paths(section, d.deleted)
	p.Phase1.InsertRows = paths(section, d.inserted)
	for _, m := range d.moves {
		p.Phase2.MoveRows = append(p.Phase2.MoveRows, RowMove{
			From: IndexPath{Section: section, Row: m.From},
			To:   IndexPath{Section: section, Row: m.To},
		})
	}
	p.Phase2.ReloadRows = paths(section, d.reloads)
	return p
}

// slot is one entry of the working copy: the element's old index (-1 for an
// insertion) and its index in the new list.
type slot struct {
	prev int
	next int
}

// diffResult is the flat reconciliation of one list.
type diffResult struct {
	deleted  []int  // old indices
	inserted []int  // new indices
	moves    []Move // working position to new index
	reloads  []int  // new indices
}

// diff reconciles prev into next. needsReload may be nil.
func diff[T any](prev, next []T, equal func(a, b T) bool, needsReload func(next, prev T) bool) diffResult {
	if len(prev) == 0 {
		return diffResult{inserted: indices(len(next))}
	}

	var d diffResult
	nextToPrev, prevToNext := match(prev, next, equal)
	working := retained(prevToNext, &d.deleted)
	for i, j := range nextToPrev {
		if j == -1 {
			working = slices.Insert(working, i, slot{prev: -1, next: i})
			d.inserted = append(d.inserted, i)
		}
	}
	d.moves = minimalMoves(working)

	if needsReload != nil {
		for i, j := range nextToPrev {
			if j != -1 && needsReload(next[i], prev[j]) {
				d.reloads = append(d.reloads, i)
			}
		}
	}
	return d
}

// retained builds the working copy left after deleting unmatched old
// elements, whose indices are appended to deleted.
func retained(prevToNext []int, deleted *[]int) []slot {
	working := make([]slot, 0, len(prevToNext))
	for j, i := range prevToNext {
		if i == -1 {
			*deleted = append(*deleted, j)
			continue
		}
		working = append(working, slot{prev: j, next: i})
	}
	return working
}

// minimalMoves returns the moves that put every slot of working at its new
// index.
//
// The slots kept in place form the heaviest chain whose new indices increase
// in working order. Insertions weigh more than all retained slots together,
// so they are always kept; they already sit at their final index. Every
// retained slot weighs more than the tie-break bonus of all slots together,
// so the chain is as long as possible, and among the longest chains the one
// with most slots already at their new index wins. The remaining retained
// slots are moved and returned ordered by destination.
func minimalMoves(working []slot) []Move {
	n := len(working)
	if n == 0 {
		return nil
	}
	retainedWeight := n + 1
	insertWeight := n*(retainedWeight+1) + 1

	best := make([]int, n)
	parent := make([]int, n)
	end := -1
	for i, s := range working {
		weight := retainedWeight
		switch {
		case s.prev == -1:
			weight = insertWeight
		case s.next == i:
			weight++
		}
		best[i], parent[i] = weight, -1
		for j := 0; j < i; j++ {
			if working[j].next < s.next && best[j]+weight > best[i] {
				best[i], parent[i] = best[j]+weight, j
			}
		}
		if end == -1 || best[i] > best[end] {
			end = i
		}
	}

	keep := make([]bool, n)
	for i := end; i != -1; i = parent[i] {
		keep[i] = true
	}

	var moves []Move
	for i, s := range working {
		if !keep[i] {
			moves = append(moves, Move{From: i, To: s.next})
		}
	}
	slices.SortFunc(moves, func(a, b Move) int { return cmp.Compare(a.To, b.To) })
	return moves
}

func indices(n int) []int {
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func paths(section int, rows []int) []IndexPath {
	if len(rows) == 0 {
		return nil
	}
	out := make([]IndexPath, len(rows))
	for i, r := range rows {
		out[i] = IndexPath{Section: section, Row: r}
	}
	return out
}
