package descriptor

import "slices"

// EntitySet mirrors the values of one axiom kind. Members reflect the last
// successful read or write; Add and Remove only stage changes. A value is
// never pending both addition and removal.
type EntitySet[T comparable] struct {
	members   []T
	additions []T
	removals  []T
	singleton bool
}

// NewEntitySet returns an empty set. A singleton set holds at most one value
// after a write.
func NewEntitySet[T comparable](singleton bool) *EntitySet[T] {
	return &EntitySet[T]{singleton: singleton}
}

// Singleton reports whether the set holds at most one value.
func (s *EntitySet[T]) Singleton() bool { return s.singleton }

// Members returns a copy of the current members in insertion order.
func (s *EntitySet[T]) Members() []T { return slices.Clone(s.members) }

// Len returns the number of members.
func (s *EntitySet[T]) Len() int { return len(s.members) }

// Contains reports whether v is a member.
func (s *EntitySet[T]) Contains(v T) bool { return slices.Contains(s.members, v) }

// Value returns the first member, for singleton sets.
func (s *EntitySet[T]) Value() (T, bool) {
	if len(s.members) == 0 {
		var zero T
		return zero, false
	}
	return s.members[0], true
}

// PendingAdditions returns the values staged for assertion.
func (s *EntitySet[T]) PendingAdditions() []T { return slices.Clone(s.additions) }

// PendingRemovals returns the values staged for retraction.
func (s *EntitySet[T]) PendingRemovals() []T { return slices.Clone(s.removals) }

// Dirty reports whether any change is staged.
func (s *EntitySet[T]) Dirty() bool { return len(s.additions) > 0 || len(s.removals) > 0 }

// Add stages v for assertion. Adding a value pending removal cancels the
// removal; adding a member is a no-op. On a singleton set every other staged
// addition is dropped and every other member is staged for removal.
func (s *EntitySet[T]) Add(v T) {
	if s.singleton {
		s.additions = s.additions[:0]
		for _, m := range s.members {
			if m != v && !slices.Contains(s.removals, m) {
				s.removals = append(s.removals, m)
			}
		}
	}
	if i := slices.Index(s.removals, v); i >= 0 {
		s.removals = slices.Delete(s.removals, i, i+1)
		return
	}
	if slices.Contains(s.members, v) || slices.Contains(s.additions, v) {
		return
	}
	s.additions = append(s.additions, v)
}

// Remove stages v for retraction. Removing a value pending addition cancels
// the addition; removing a non-member is a no-op.
func (s *EntitySet[T]) Remove(v T) {
	if i := slices.Index(s.additions, v); i >= 0 {
		s.additions = slices.Delete(s.additions, i, i+1)
		return
	}
	if slices.Contains(s.members, v) && !slices.Contains(s.removals, v) {
		s.removals = append(s.removals, v)
	}
}

// Clear stages every member for removal and drops staged additions.
func (s *EntitySet[T]) Clear() {
	s.additions = nil
	for _, m := range s.members {
		if !slices.Contains(s.removals, m) {
			s.removals = append(s.removals, m)
		}
	}
}

// Discard drops every staged change.
func (s *EntitySet[T]) Discard() {
	s.additions = nil
	s.removals = nil
}

// replace sets members to values (deduplicated, order kept), clears staged
// changes and returns what appeared and what disappeared.
func (s *EntitySet[T]) replace(values []T) (added, removed []T) {
	next := make([]T, 0, len(values))
	for _, v := range values {
		if !slices.Contains(next, v) {
			next = append(next, v)
		}
	}
	for _, v := range next {
		if !slices.Contains(s.members, v) {
			added = append(added, v)
		}
	}
	for _, v := range s.members {
		if !slices.Contains(next, v) {
			removed = append(removed, v)
		}
	}
	s.members = next
	s.Discard()
	return added, removed
}

// commitAdd folds an applied addition into members.
func (s *EntitySet[T]) commitAdd(v T) {
	if i := slices.Index(s.additions, v); i >= 0 {
		s.additions = slices.Delete(s.additions, i, i+1)
	}
	if !slices.Contains(s.members, v) {
		s.members = append(s.members, v)
	}
}

// commitRemove folds an applied removal into members.
func (s *EntitySet[T]) commitRemove(v T) {
	if i := slices.Index(s.removals, v); i >= 0 {
		s.removals = slices.Delete(s.removals, i, i+1)
	}
	if i := slices.Index(s.members, v); i >= 0 {
		s.members = slices.Delete(s.members, i, i+1)
	}
}

// reset empties the set without staging anything.
func (s *EntitySet[T]) reset() {
	s.members = nil
	s.Discard()
}
