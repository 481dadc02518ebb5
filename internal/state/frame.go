package state

// Frame is everything the renderer needs to draw one frame. It is a value
// copy and may be handed to other goroutines.
type Frame struct {
	Seq      uint64 `json:"seq"`
	Dots     []Dot  `json:"dots"`
	Pointer  Point  `json:"pointer"`
	Hovering bool   `json:"hovering"`
	Tool     Tool   `json:"tool"`
	Phase    Phase  `json:"phase"`
	Status   string `json:"status"`
	Selected int    `json:"selected"`
}

// Frame snapshots the store and ephemeral state and stamps it with the next
// sequence number.
func (c *Controller) Frame() Frame {
	return Frame{
		Seq:      c.clock.Tick(),
		Dots:     c.store.Dots(),
		Pointer:  c.pointer,
		Hovering: c.hovering,
		Tool:     c.tool,
		Phase:    c.phase,
		Status:   c.status,
		Selected: c.store.SelectedCount(),
	}
}
