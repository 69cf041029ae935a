package billing

// Selection is a set of invoice ids that remembers insertion order
type Selection struct {
	ids   []uint
	index map[uint]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{index: make(map[uint]struct{})}
}

// Toggle adds id if absent, removes it otherwise, and reports whether it is now selected
func (s *Selection) Toggle(id uint) bool {
	if _, ok := s.index[id]; ok {
		delete(s.index, id)
		for i, v := range s.ids {
			if v == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
		return false
	}

	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is selected
func (s *Selection) Has(id uint) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns a copy of the selected ids in insertion order
func (s *Selection) IDs() []uint {
	out := make([]uint, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = nil
	s.index = make(map[uint]struct{})
}

// Retain drops every selected id that keep rejects, preserving order
func (s *Selection) Retain(keep func(id uint) bool) {
	kept := s.ids[:0]
	for _, id := range s.ids {
		if keep(id) {
			kept = append(kept, id)
		} else {
			delete(s.index, id)
		}
	}
	s.ids = kept
}

// BatchState is the state of the batch payment button
type BatchState int

const (
	// Idle means nothing is selected
	Idle BatchState = iota
	// Selectable means at least one invoice is selected and a batch may be submitted
	Selectable
	// Processing means a batch is in flight and submission is disabled
	Processing
)

func (s BatchState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selectable:
		return "selectable"
	case Processing:
		return "processing"
	}
	return "unknown"
}

// StateOf derives the button state from the selection size and whether a batch is running
func StateOf(selected int, processing bool) BatchState {
	if processing {
		return Processing
	}
	if selected > 0 {
		return Selectable
	}
	return Idle
}
