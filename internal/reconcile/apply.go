package reconcile

// Animation selects how a list view animates an update.
type Animation int

const (
	// AnimationNone applies the update without animation.
	AnimationNone Animation = iota
	// AnimationAutomatic lets the view pick a suitable animation.
	AnimationAutomatic
	// AnimationFade cross-fades the affected items.
	AnimationFade
)

func (a Animation) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationAutomatic:
		return "automatic"
	case AnimationFade:
		return "fade"
	default:
		return "unknown"
	}
}

// ListView is a sectioned list that applies structural updates in batches.
//
// Calls made inside the updates function of PerformBatchUpdates form one
// atomic batch. The view invokes completion once the batch has finished,
// reporting whether it ran to completion.
type ListView interface {
	PerformBatchUpdates(updates func(), completion func(finished bool))

	InsertSections(sections []int, animation Animation)
	DeleteSections(sections []int, animation Animation)
	ReloadSections(sections []int, animation Animation)
	MoveSection(from, to int)

	InsertRows(rows []IndexPath, animation Animation)
	DeleteRows(rows []IndexPath, animation Animation)
	ReloadRows(rows []IndexPath, animation Animation)
	MoveRow(from, to IndexPath)
}

// Apply performs plan on view as two batches. Phase2 starts from the
// completion of Phase1 and is skipped if Phase1 did not finish. Empty phases
// are not submitted. completion, which may be nil, is called exactly once
// with the outcome of the last batch that ran.
func Apply(view ListView, plan Plan, animated bool, completion func(finished bool)) {
	animation := AnimationNone
	if animated {
		animation = AnimationAutomatic
	}

	done := func(finished bool) {
		if completion != nil {
			completion(finished)
		}
	}
	second := func(finished bool) {
		if !finished || plan.Phase2.Empty() {
			done(finished)
			return
		}
		view.PerformBatchUpdates(func() { applyBatch(view, plan.Phase2, animation) }, done)
	}

	if plan.Phase1.Empty() {
		second(true)
		return
	}
	view.PerformBatchUpdates(func() { applyBatch(view, plan.Phase1, animation) }, second)
}

func applyBatch(view ListView, b Batch, animation Animation) {
	if len(b.DeleteSections) > 0 {
		view.DeleteSections(b.DeleteSections, animation)
	}
	if len(b.InsertSections) > 0 {
		view.InsertSections(b.InsertSections, animation)
	}
	if len(b.ReloadSections) > 0 {
		view.ReloadSections(b.ReloadSections, animation)
	}
	for _, m := range b.MoveSections {
		view.MoveSection(m.From, m.To)
	}
	if len(b.DeleteRows) > 0 {
		view.DeleteRows(b.DeleteRows, animation)
	}
	if len(b.InsertRows) > 0 {
		view.InsertRows(b.InsertRows, animation)
	}
	for _, m := range b.MoveRows {
		view.MoveRow(m.From, m.To)
	}
	// Reloads go last so they address rows at their final positions.
	if len(b.ReloadRows) > 0 {
		view.ReloadRows(b.ReloadRows, animation)
	}
}

// UpdateSections plans the reconciliation of prev into next and applies it
// to view. The plan is returned for inspection.
func UpdateSections[S Section[S, R], R Reloadable[R]](view ListView, prev, next []S, animated bool, completion func(finished bool)) Plan {
	plan := PlanSections[S, R](prev, next)
	Apply(view, plan, animated, completion)
	return plan
}

// UpdateRows plans the reconciliation of the rows of one section and applies
// it to view.
func UpdateRows[R Reloadable[R]](view ListView, prev, next []R, section int, animated bool, completion func(finished bool)) Plan {
	plan := PlanRowsReloading(prev, next, section)
	Apply(view, plan, animated, completion)
	return plan
}
