package reconcile

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id      string
	version int
}

func (r row) Equal(other row) bool     { return r.id == other.id }
func (r row) NeedsReload(old row) bool { return r.version != old.version }
func (r row) String() string           { return r.id }

type section struct {
	id      string
	version int
	rows    []row
}

func (s section) Equal(other section) bool     { return s.id == other.id }
func (s section) NeedsReload(old section) bool { return s.version != old.version }
func (s section) Rows() []row                  { return s.rows }

// tag has identity but no notion of reload.
type tag string

func (t tag) Equal(other tag) bool { return t == other }

func rows(ids ...string) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{id: id}
	}
	return out
}

func TestPlanRows_EmptyOldInsertsEverything(t *testing.T) {
	plan := PlanRows(nil, rows("A", "B", "C"), 0)

	assert.Equal(t, []IndexPath{{0, 0}, {0, 1}, {0, 2}}, plan.Phase1.InsertRows)
	assert.Empty(t, plan.Phase1.DeleteRows)
	assert.True(t, plan.Phase2.Empty(), "no moves or reloads")
}

func TestPlanRows_BothEmpty(t *testing.T) {
	assert.True(t, PlanRows[row](nil, nil, 0).Empty())
	assert.True(t, PlanRows(rows("A"), rows("A"), 3).Empty())
}

func TestPlanRows_PureReorderIsOneMove(t *testing.T) {
	plan := PlanRows(rows("A", "B", "C"), rows("C", "A", "B"), 0)

	assert.True(t, plan.Phase1.Empty(), "no inserts or deletes")
	assert.Equal(t, []RowMove{{From: IndexPath{0, 2}, To: IndexPath{0, 0}}}, plan.Phase2.MoveRows)
	assert.Empty(t, plan.Phase2.ReloadRows)
}

func TestPlanRows_InsertAndDelete(t *testing.T) {
	plan := PlanRows(rows("a", "b", "c", "d"), rows("b", "x", "d", "y"), 2)

	assert.Equal(t, []IndexPath{{2, 0}, {2, 2}}, plan.Phase1.DeleteRows)
	assert.Equal(t, []IndexPath{{2, 1}, {2, 3}}, plan.Phase1.InsertRows)
	assert.True(t, plan.Phase2.Empty())
}

func TestPlanRows_MovesAroundInsertion(t *testing.T) {
	plan := PlanRows(rows("A", "B"), rows("B", "X", "A"), 0)

	assert.Equal(t, []IndexPath{{0, 1}}, plan.Phase1.InsertRows)
	assert.Equal(t, []RowMove{
		{From: IndexPath{0, 2}, To: IndexPath{0, 0}},
		{From: IndexPath{0, 0}, To: IndexPath{0, 2}},
	}, plan.Phase2.MoveRows)
}

func TestPlanRowsReloading(t *testing.T) {
	prev := []row{{"a", 1}, {"b", 1}}
	next := []row{{"b", 2}, {"a", 1}}

	plan := PlanRowsReloading(prev, next, 0)
	assert.True(t, plan.Phase1.Empty())
	assert.Equal(t, []RowMove{{From: IndexPath{0, 1}, To: IndexPath{0, 0}}}, plan.Phase2.MoveRows)
	assert.Equal(t, []IndexPath{{0, 0}}, plan.Phase2.ReloadRows, "reload addresses the new index")

	plain := PlanRows(prev, next, 0)
	assert.Empty(t, plain.Phase2.ReloadRows, "PlanRows never reloads")
}

func TestPlanRows_EquatableOnly(t *testing.T) {
	plan := PlanRows([]tag{"x", "y"}, []tag{"y", "z"}, 1)

	assert.Equal(t, []IndexPath{{1, 0}}, plan.Phase1.DeleteRows)
	assert.Equal(t, []IndexPath{{1, 1}}, plan.Phase1.InsertRows)
	assert.True(t, plan.Phase2.Empty())
}

func TestPlanRows_DuplicatesMatchByOccurrence(t *testing.T) {
	plan := PlanRows(rows("a", "a", "b"), rows("a", "b", "a", "a"), 0)

	assert.Empty(t, plan.Phase1.DeleteRows)
	assert.Equal(t, []IndexPath{{0, 3}}, plan.Phase1.InsertRows, "only the surplus copy is new")
	assert.Equal(t, []RowMove{{From: IndexPath{0, 2}, To: IndexPath{0, 1}}}, plan.Phase2.MoveRows)

	plan = PlanRows(rows("a", "a", "a"), rows("a"), 0)
	assert.Equal(t, []IndexPath{{0, 1}, {0, 2}}, plan.Phase1.DeleteRows)
	assert.True(t, plan.Phase2.Empty())
}

func TestPlanSections_EmptyOldInsertsEverything(t *testing.T) {
	next := []section{{id: "s1", rows: rows("a")}, {id: "s2"}}
	plan := PlanSections[section, row](nil, next)

	assert.Equal(t, []int{0, 1}, plan.Phase1.InsertSections)
	assert.Empty(t, plan.Phase1.InsertRows, "rows arrive with their sections")
	assert.True(t, plan.Phase2.Empty())
}

func TestPlanSections_MixedInsertDeleteReload(t *testing.T) {
	prev := []section{
		{id: "S1", version: 1, rows: rows("a", "b")},
		{id: "S2", version: 1, rows: rows("c")},
	}
	next := []section{
		{id: "S1", version: 2, rows: rows("a", "b", "x")},
		{id: "S3", version: 1, rows: rows("d")},
	}

	plan := PlanSections[section, row](prev, next)

	assert.Equal(t, Batch{
		DeleteSections: []int{1},
		InsertSections: []int{1},
		ReloadSections: []int{0},
	}, plan.Phase1, "S1 is reloaded whole, without a row diff")
	assert.True(t, plan.Phase2.Empty(), "relative order already matches")
}

func TestPlanSections_MovesAndRowDiffs(t *testing.T) {
	prev := []section{
		{id: "S1", rows: rows("a", "b")},
		{id: "S2", rows: rows("c", "d")},
	}
	next := []section{
		{id: "S2", rows: rows("d", "c", "e")},
		{id: "S1", rows: rows("a")},
	}

	plan := PlanSections[section, row](prev, next)

	assert.Equal(t, Batch{
		DeleteRows: []IndexPath{{0, 1}},
		InsertRows: []IndexPath{{1, 2}},
	}, plan.Phase1, "deletes use old sections, inserts the post-batch sections")
	assert.Equal(t, Batch{
		MoveSections: []Move{{From: 1, To: 0}},
		MoveRows:     []RowMove{{From: IndexPath{1, 1}, To: IndexPath{0, 0}}},
	}, plan.Phase2)
}

func TestPlanSections_RowReloadsInRetainedSection(t *testing.T) {
	prev := []section{{id: "S", rows: []row{{"a", 1}, {"b", 1}}}}
	next := []section{{id: "S", rows: []row{{"a", 1}, {"b", 5}}}}

	plan := PlanSections[section, row](prev, next)
	assert.True(t, plan.Phase1.Empty())
	assert.Equal(t, Batch{ReloadRows: []IndexPath{{0, 1}}}, plan.Phase2)
}

func TestPlanSections_InsertedSectionIsNotMoved(t *testing.T) {
	prev := []section{{id: "A"}, {id: "B"}}
	next := []section{{id: "B"}, {id: "N"}, {id: "A"}}

	plan := PlanSections[section, row](prev, next)
	assert.Equal(t, []int{1}, plan.Phase1.InsertSections)
	for _, m := range plan.Phase2.MoveSections {
		assert.NotEqual(t, 1, m.To, "the inserted section already sits at its index")
	}
	assert.Equal(t, []string{"B", "N", "A"}, simulateSections(prev, next, plan))
}

// simulateRows replays a single-section plan against ids using batch
// semantics: Phase1 deletes by old index then inserts by new index; in Phase2
// moved rows land on their destination and the others keep their relative
// order in the remaining slots.
func simulateRows(prev, next []string, plan Plan) []string {
	var deleted, inserted []int
	for _, p := range plan.Phase1.DeleteRows {
		deleted = append(deleted, p.Row)
	}
	for _, p := range plan.Phase1.InsertRows {
		inserted = append(inserted, p.Row)
	}
	var moves []Move
	for _, m := range plan.Phase2.MoveRows {
		moves = append(moves, Move{From: m.From.Row, To: m.To.Row})
	}
	return simulate(prev, next, deleted, inserted, moves)
}

func simulateSections(prev, next []section, plan Plan) []string {
	ids := func(ss []section) []string {
		out := make([]string, len(ss))
		for i, s := range ss {
			out[i] = s.id
		}
		return out
	}
	return simulate(ids(prev), ids(next), plan.Phase1.DeleteSections, plan.Phase1.InsertSections, plan.Phase2.MoveSections)
}

func simulate(prev, next []string, deleted, inserted []int, moves []Move) []string {
	current := slices.Clone(prev)
	for i := len(deleted) - 1; i >= 0; i-- {
		current = slices.Delete(current, deleted[i], deleted[i]+1)
	}
	for _, i := range inserted {
		current = slices.Insert(current, i, next[i])
	}

	out := make([]string, len(current))
	filled := make([]bool, len(current))
	moved := make([]bool, len(current))
	for _, m := range moves {
		out[m.To] = current[m.From]
		filled[m.To] = true
		moved[m.From] = true
	}
	slot := 0
	for i, v := range current {
		if moved[i] {
			continue
		}
		for filled[slot] {
			slot++
		}
		out[slot] = v
		filled[slot] = true
	}
	return out
}

func TestPlanRows_ReplaysToNewOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "b", "c", "d", "e", "f", "g"}
	randomList := func() []string {
		n := rng.Intn(9)
		out := make([]string, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return out
	}

	for iter := 0; iter < 500; iter++ {
		prev, next := randomList(), randomList()
		if len(prev) == 0 {
			continue
		}

		plan := PlanRows(rows(prev...), rows(next...), 0)
		got := simulateRows(prev, next, plan)
		require.Equal(t, next, got, "prev=%v next=%v plan=%+v", prev, next, plan)

		// A move may end where it started only when the rows around it
		// shift; dropping it must then break the replay.
		for i, m := range plan.Phase2.MoveRows {
			if m.From != m.To {
				continue
			}
			without := plan
			without.Phase2.MoveRows = slices.Delete(slices.Clone(plan.Phase2.MoveRows), i, i+1)
			require.NotEqual(t, next, simulateRows(prev, next, without), "no-op move in %+v", plan)
		}
	}
}

func TestPlanRows_ReversalKeepsMiddleInPlace(t *testing.T) {
	plan := PlanRows(rows("A", "B", "C"), rows("C", "B", "A"), 0)

	assert.Equal(t, []RowMove{
		{From: IndexPath{0, 2}, To: IndexPath{0, 0}},
		{From: IndexPath{0, 0}, To: IndexPath{0, 2}},
	}, plan.Phase2.MoveRows)
	assert.Equal(t, []string{"C", "B", "A"}, simulateRows([]string{"A", "B", "C"}, []string{"C", "B", "A"}, plan))
}

func TestPlanRows_PrefersRowsAlreadyInPlace(t *testing.T) {
	// [a d], [b d] and [c d] all keep two rows; only [b d] keeps rows that
	// already sit at their new index.
	prev := []string{"a", "b", "c", "d"}
	next := []string{"c", "b", "a", "d"}
	plan := PlanRows(rows(prev...), rows(next...), 0)

	assert.Equal(t, []RowMove{
		{From: IndexPath{0, 2}, To: IndexPath{0, 0}},
		{From: IndexPath{0, 0}, To: IndexPath{0, 2}},
	}, plan.Phase2.MoveRows)
	assert.Equal(t, next, simulateRows(prev, next, plan))
}

func TestPlanSections_Reversal(t *testing.T) {
	prev := []section{{id: "A"}, {id: "B"}, {id: "C"}}
	next := []section{{id: "C"}, {id: "B"}, {id: "A"}}

	plan := PlanSections[section, row](prev, next)
	assert.True(t, plan.Phase1.Empty())
	assert.Equal(t, []Move{{From: 2, To: 0}, {From: 0, To: 2}}, plan.Phase2.MoveSections)
	assert.Equal(t, []string{"C", "B", "A"}, simulateSections(prev, next, plan))
}
