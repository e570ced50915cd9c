package storefront

// Draft pairs a locally edited value with the last committed one.
type Draft[T comparable] struct {
	committed T
	local     T
}

// NewDraft starts a draft whose local value equals committed.
func NewDraft[T comparable](committed T) Draft[T] {
	return Draft[T]{committed: committed, local: committed}
}

// Local returns the value being edited.
func (d Draft[T]) Local() T { return d.local }

// Committed returns the last committed value.
func (d Draft[T]) Committed() T { return d.committed }

// Dirty reports whether the local value differs from the committed one.
func (d Draft[T]) Dirty() bool { return d.local != d.committed }

// Set replaces the local value.
func (d *Draft[T]) Set(v T) { d.local = v }

// Commit makes the local value the committed one and returns the previous
// committed value.
func (d *Draft[T]) Commit() T {
	prev := d.committed
	d.committed = d.local
	return prev
}

// Discard drops local edits.
func (d *Draft[T]) Discard() { d.local = d.committed }
