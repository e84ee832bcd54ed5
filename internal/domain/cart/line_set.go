package cart

// LineSet is the ordered set of visible cart lines. Its methods never mutate
// the receiver in place; each returns a new set so that a snapshot taken
// before a change stays intact.
type LineSet struct {
	items []LineItem
}

// NewLineSet builds a set from already-normalized lines. Lines with a
// non-positive quantity are dropped.
func NewLineSet(items []LineItem) LineSet {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return LineSet{items: out}
}

// Items returns a copy of the lines in display order
func (s LineSet) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of visible lines
func (s LineSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether no line is visible
func (s LineSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Find returns the line with the given id
func (s LineSet) Find(lineID string) (LineItem, bool) {
	for _, it := range s.items {
		if it.ID == lineID {
			return it, true
		}
	}
	return LineItem{}, false
}

// Clone returns an independent copy of the set
func (s LineSet) Clone() LineSet {
	return LineSet{items: s.Items()}
}

// WithDelta returns a set where the line's quantity changed by delta.
// A line whose quantity drops to zero or below is removed.
func (s LineSet) WithDelta(lineID string, delta int64) LineSet {
	out := make([]LineItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID == lineID {
			it.Quantity += delta
			if it.Quantity <= 0 {
				continue
			}
		}
		out = append(out, it)
	}
	return LineSet{items: out}
}

// Without returns a set with the line removed. Removing an absent line is a no-op.
func (s LineSet) Without(lineID string) LineSet {
	out := make([]LineItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != lineID {
			out = append(out, it)
		}
	}
	return LineSet{items: out}
}

// Equal reports structural equality: same ids, quantities and order
func (s LineSet) Equal(other LineSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		a, b := s.items[i], other.items[i]
		if a.ID != b.ID || a.Quantity != b.Quantity || a.ProductID != b.ProductID {
			return false
		}
	}
	return true
}
