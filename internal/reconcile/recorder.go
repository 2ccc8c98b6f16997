package reconcile

// Recorder is a ListView that performs nothing and records every update.
// Batches run synchronously: completion is called before PerformBatchUpdates
// returns.
type Recorder struct {
	// Batches holds one entry per PerformBatchUpdates call. Updates made
	// outside a batch each get an entry of their own.
	Batches []Batch

	// Animations lists the animation argument of every animated call, in
	// order.
	Animations []Animation

	// Interrupt makes every batch report that it did not finish.
	Interrupt bool

	open bool
}

var _ ListView = (*Recorder)(nil)

func (r *Recorder) PerformBatchUpdates(updates func(), completion func(finished bool)) {
	r.Batches = append(r.Batches, Batch{})
	r.open = true
	if updates != nil {
		updates()
	}
	r.open = false
	if completion != nil {
		completion(!r.Interrupt)
	}
}

func (r *Recorder) current() *Batch {
	if !r.open {
		r.Batches = append(r.Batches, Batch{})
	}
	return &r.Batches[len(r.Batches)-1]
}

func (r *Recorder) InsertSections(sections []int, animation Animation) {
	b := r.current()
	b.InsertSections = append(b.InsertSections, sections...)
	r.Animations = append(r.Animations, animation)
}

func (r *Recorder) DeleteSections(sections []int, animation Animation) {
	b := r.current()
	b.DeleteSections = append(b.DeleteSections, sections...)
	r.Animations = append(r.Animations, animation)
}

func (r *Recorder) ReloadSections(sections []int, animation Animation) {
	b := r.current()
	b.ReloadSections = append(b.ReloadSections, sections...)
	r.Animations = append(r.Animations, animation)
}

func (r *Recorder) MoveSection(from, to int) {
	b := r.current()
	b.MoveSections = append(b.MoveSections, Move{From: from, To: to})
}

func (r *Recorder) InsertRows(rows []IndexPath, animation Animation) {
	b := r.current()
	b.InsertRows = append(b.InsertRows, rows...)
	r.Animations = append(r.Animations, animation)
}

func (r *Recorder) DeleteRows(rows []IndexPath, animation Animation) {
	b := r.current()
	b.DeleteRows = append(b.DeleteRows, rows...)
	r.Animations = append(r.Animations, animation)
}

func (r *Recorder) ReloadRows(rows []IndexPath, animation Animation) {
	b := r.current()
	b.ReloadRows = append(b.ReloadRows, rows...)
	r.Animations = append(r.Animations, animation)
}

func (r *Recorder) MoveRow(from, to IndexPath) {
	b := r.current()
	b.MoveRows = append(b.MoveRows, RowMove{From: from, To: to})
}
