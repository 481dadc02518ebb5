package state

// Store is the ordered dot collection. Later dots render on top and win
// hit-tests. It is owned by a single goroutine and is not safe for
// concurrent use.
type Store struct {
	dots []Dot
}

func NewStore() *Store {
	return &Store{dots: make([]Dot, 0)}
}

// Append adds d on top of the stack and returns its handle.
func (s *Store) Append(d Dot) DotID {
	s.dots = append(s.dots, d)
	return DotID(len(s.dots) - 1)
}

// FindTopmostAt returns the most recently appended dot containing (x, y).
// Points exactly on a dot's circle miss.
func (s *Store) FindTopmostAt(x, y float32) (DotID, bool) {
	for i := len(s.dots) - 1; i >= 0; i-- {
		if s.dots[i].Contains(x, y) {
			return DotID(i), true
		}
	}
	return NoDot, false
}

func (s *Store) Len() int {
	return len(s.dots)
}

func (s *Store) valid(id DotID) bool {
	return id >= 0 && int(id) < len(s.dots)
}

// Dot returns a copy of the dot behind id.
func (s *Store) Dot(id DotID) (Dot, bool) {
	if !s.valid(id) {
		return Dot{}, false
	}
	return s.dots[id], true
}

// MoveBy translates the dot by (dx, dy). Unknown ids are ignored.
func (s *Store) MoveBy(id DotID, dx, dy float32) {
	if !s.valid(id) {
		return
	}
	s.dots[id].X += dx
	s.dots[id].Y += dy
}

// ToggleColor flips the dot between color 0 and color 1.
func (s *Store) ToggleColor(id DotID) {
	if !s.valid(id) {
		return
	}
	s.dots[id].ColorIndex = 1 - s.dots[id].ColorIndex
}

func (s *Store) SetSelected(id DotID, selected bool) {
	if !s.valid(id) {
		return
	}
	s.dots[id].Selected = selected
}

// SelectedCount is a diagnostic; the controller keeps it at 0 or 1.
func (s *Store) SelectedCount() int {
	n := 0
	for _, d := range s.dots {
		if d.Selected {
			n++
		}
	}
	return n
}

// Dots returns a copy of all dots in insertion (paint) order.
func (s *Store) Dots() []Dot {
	out := make([]Dot, len(s.dots))
	copy(out, s.dots)
	return out
}
