package state

import "fmt"

// Phase is the controller's pointer state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Hovering
)

func (p Phase) String() string {
	switch p {
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	}
	return "idle"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*p = Idle
	case "dragging":
		*p = Dragging
	case "hovering":
		*p = Hovering
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

type Options struct {
	// Radius of dots created on empty canvas.
	Radius float32
}

func DefaultOptions() Options {
	return Options{Radius: DefaultRadius}
}

// Controller turns pointer events into Store mutations. It owns the
// selection and the ephemeral pointer state; the store only carries the
// per-dot selected flag for rendering.
type Controller struct {
	store *Store
	opts  Options
	clock Clock

	phase    Phase
	active   DotID
	selected DotID

	pointer  Point
	held     bool
	hovering bool
	tool     Tool
	status   string
}

func NewController(s *Store, opts Options) *Controller {
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	return &Controller{
		store:    s,
		opts:     opts,
		active:   NoDot,
		selected: NoDot,
	}
}

// Handle applies one pointer event. Every event is accepted; coordinates are
// neither validated nor clamped.
func (c *Controller) Handle(ev PointerEvent) {
	c.tool = ev.Tool

	switch ev.Action {
	case PrimaryDown:
		c.down(ev)
	case PrimaryMove:
		c.move(ev)
	case PrimaryUp:
		c.held = false
		if c.phase == Dragging {
			c.phase = Idle
		}
		c.status = fmt.Sprintf("UP at %.1f, %.1f", ev.X, ev.Y)
	case HoverEnter, HoverMove:
		if c.phase == Dragging {
			return
		}
		c.pointer = Point{X: ev.X, Y: ev.Y}
		c.hovering = true
		c.phase = Hovering
		if ev.Action == HoverEnter {
			c.status = "HOVER_ENTER"
		} else {
			c.status = "HOVER_MOVE"
		}
	case HoverExit:
		if c.phase == Dragging {
			return
		}
		c.hovering = false
		if c.phase == Hovering {
			c.phase = Idle
		}
		c.status = "HOVER_EXIT"
	}
}

func (c *Controller) down(ev PointerEvent) {
	c.hovering = false

	if id, ok := c.store.FindTopmostAt(ev.X, ev.Y); ok {
		if id != c.selected {
			c.selectDot(id)
			c.status = fmt.Sprintf("TAP SELECT at %.1f, %.1f", ev.X, ev.Y)
		}
		c.active = id
	} else {
		id := c.store.Append(Dot{X: ev.X, Y: ev.Y, Radius: c.opts.Radius})
		c.selectDot(id)
		c.active = id
		c.status = fmt.Sprintf("TAP ADD at %.1f, %.1f", ev.X, ev.Y)
	}

	if ev.Buttons&ButtonSecondary != 0 {
		c.store.ToggleColor(c.active)
	}

	c.held = true
	c.pointer = Point{X: ev.X, Y: ev.Y}
	c.phase = Dragging
}

// selectDot moves the selection to id, keeping the store's flags in step.
func (c *Controller) selectDot(id DotID) {
	if c.selected != NoDot {
		c.store.SetSelected(c.selected, false)
	}
	c.selected = id
	c.store.SetSelected(id, true)
}

func (c *Controller) move(ev PointerEvent) {
	if c.phase != Dragging || !c.held || c.active == NoDot {
		return
	}
	dx, dy := ev.X-c.pointer.X, ev.Y-c.pointer.Y
	c.store.MoveBy(c.active, dx, dy)
	c.pointer = Point{X: ev.X, Y: ev.Y}
	c.status = fmt.Sprintf("MOVE to %.1f, %.1f", ev.X, ev.Y)
}

func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Pointer() Point { return c.pointer }
func (c *Controller) Held() bool { return c.held }
func (c *Controller) Hovering() bool { return c.hovering }
func (c *Controller) Tool() Tool { return c.tool }
func (c *Controller) Status() string { return c.status }
func (c *Controller) Radius() float32 { return c.opts.Radius }
func (c *Controller) Active() DotID { return c.active }
func (c *Controller) Selected() DotID { return c.selected }
