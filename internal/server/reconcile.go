package server

import (
	"encoding/json"

	"github.com/ironsheep/swatchkit/internal/reconcile"
)

// listItem is a row as sent by clients. Rows with equal IDs are the same
// row; a changed Version asks for a reload.
type listItem struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
}

func (i listItem) Equal(other listItem) bool     { return i.ID == other.ID }
func (i listItem) NeedsReload(old listItem) bool { return i.Version != old.Version }

// sectionItem is a section with its rows. Section identity and reloads
// follow the same rules as listItem.
type sectionItem struct {
	ID      string     `json:"id"`
	Version int        `json:"version"`
	Items   []listItem `json:"rows"`
}

func (s sectionItem) Equal(other sectionItem) bool     { return s.ID == other.ID }
func (s sectionItem) NeedsReload(old sectionItem) bool { return s.Version != old.Version }
func (s sectionItem) Rows() []listItem                 { return s.Items }

// reconcileResult is the plan together with the batches a list view received
// when the plan was applied to it.
type reconcileResult struct {
	Plan       reconcile.Plan    `json:"plan"`
	Unchanged  bool              `json:"unchanged"`
	Applied    []reconcile.Batch `json:"applied"`
	Animations []string          `json:"animations"`
	Finished   bool              `json:"finished"`
}

func recordedResult(plan reconcile.Plan, rec *reconcile.Recorder, finished bool) *reconcileResult {
	result := &reconcileResult{
		Plan:       plan,
		Unchanged:  plan.Empty(),
		Applied:    rec.Batches,
		Animations: make([]string, len(rec.Animations)),
		Finished:   finished,
	}
	if result.Applied == nil {
		result.Applied = []reconcile.Batch{}
	}
	for i, a := range rec.Animations {
		result.Animations[i] = a.String()
	}
	return result
}

func validateItems(name string, items []listItem) error {
	for i, it := range items {
		if it.ID == "" {
			return invalidArgs("%s[%d]: id is required", name, i)
		}
	}
	return nil
}

func validateSections(name string, sections []sectionItem) error {
	for i, sec := range sections {
		if sec.ID == "" {
			return invalidArgs("%s[%d]: id is required", name, i)
		}
		if err := validateItems(name+"["+sec.ID+"].rows", sec.Items); err != nil {
			return err
		}
	}
	return nil
}

// === Reconciliation Handlers ===

type reconcileRowsArgs struct {
	Old      []listItem `json:"old"`
	New      []listItem `json:"new"`
	Section  int        `json:"section"`
	Reload   *bool      `json:"reload,omitempty"`
	Animated bool       `json:"animated"`
}

func (s *Server) handleReconcileRows(args json.RawMessage) (interface{}, error) {
	var a reconcileRowsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Section < 0 {
		return nil, invalidArgs("section must not be negative, got %d", a.Section)
	}
	if err := validateItems("old", a.Old); err != nil {
		return nil, err
	}
	if err := validateItems("new", a.New); err != nil {
		return nil, err
	}

	var rec reconcile.Recorder
	var finished bool
	done := func(ok bool) { finished = ok }

	var plan reconcile.Plan
	if a.Reload == nil || *a.Reload {
		plan = reconcile.UpdateRows(&rec, a.Old, a.New, a.Section, a.Animated, done)
	} else {
		plan = reconcile.PlanRows(a.Old, a.New, a.Section)
		reconcile.Apply(&rec, plan, a.Animated, done)
	}
	return recordedResult(plan, &rec, finished), nil
}

type reconcileSectionsArgs struct {
	Old      []sectionItem `json:"old"`
	New      []sectionItem `json:"new"`
	Animated bool          `json:"animated"`
}

func (s *Server) handleReconcileSections(args json.RawMessage) (interface{}, error) {
	var a reconcileSectionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := validateSections("old", a.Old); err != nil {
		return nil, err
	}
	if err := validateSections("new", a.New); err != nil {
		return nil, err
	}

	var rec reconcile.Recorder
	var finished bool
	plan := reconcile.UpdateSections[sectionItem, listItem](&rec, a.Old, a.New, a.Animated,
		func(ok bool) { finished = ok })
	return recordedResult(plan, &rec, finished), nil
}
