package reconcile

// Equatable is an element whose identity is decided by Equal.
type Equatable[T any] interface {
	Equal(other T) bool
}

// Reloadable is an Equatable that can tell whether it changed relative to the
// old element it is equal to.
type Reloadable[T any] interface {
	Equatable[T]
	NeedsReload(old T) bool
}

// Section is a Reloadable element that owns an ordered list of rows.
type Section[S any, R Reloadable[R]] interface {
	Reloadable[S]
	Rows() []R
}

// match pairs every element of next with the first unclaimed equal element of
// prev. The results map each index to its partner, or -1 when there is none.
func match[T any](prev, next []T, equal func(a, b T) bool) (nextToPrev, prevToNext []int) {
	nextToPrev = make([]int, len(next))
	prevToNext = make([]int, len(prev))
	for i := range prevToNext {
		prevToNext[i] = -1
	}

	for i, n := range next {
		nextToPrev[i] = -1
		for j, p := range prev {
			if prevToNext[j] == -1 && equal(n, p) {
				nextToPrev[i] = j
				prevToNext[j] = i
				break
			}
		}
	}
	return nextToPrev, prevToNext
}

func equatable[T Equatable[T]](a, b T) bool {
	return a.Equal(b)
}

func reloadable[T Reloadable[T]](next, prev T) bool {
	return next.NeedsReload(prev)
}
