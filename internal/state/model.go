package state

import "fmt"

// DefaultRadius is the radius given to dots created by a tap on empty canvas.
const DefaultRadius float32 = 50

type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// DotID is a stable handle into a Store. Dots are never deleted, so an ID
// stays valid for the lifetime of the store.
type DotID int

// NoDot marks the absence of a dot reference.
const NoDot DotID = -1

// Dot is one placed marker. Radius is fixed when the dot is created.
type Dot struct {
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Radius     float32 `json:"radius"`
	Selected   bool    `json:"selected"`
	ColorIndex int     `json:"color"`
}

// Contains reports whether (x, y) lies strictly inside the dot.
func (d Dot) Contains(x, y float32) bool {
	dx, dy := x-d.X, y-d.Y
	return dx*dx+dy*dy < d.Radius*d.Radius
}

// Tool is the kind of pointer reported by the input device.
type Tool int

const (
	ToolNormal Tool = iota
	ToolEraser
)

func (t Tool) String() string {
	if t == ToolEraser {
		return "eraser"
	}
	return "normal"
}

func (t Tool) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*t = ToolNormal
	case "eraser":
		*t = ToolEraser
	default:
		return fmt.Errorf("unknown tool %q", b)
	}
	return nil
}

// Buttons is the button-state bitmask carried by a pointer event.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
)

// Action is the phase of a pointer event.
type Action int

const (
	PrimaryDown Action = iota
	PrimaryMove
	PrimaryUp
	HoverEnter
	HoverMove
	HoverExit
)

func (a Action) String() string {
	switch a {
	case PrimaryDown:
		return "down"
	case PrimaryMove:
		return "move"
	case PrimaryUp:
		return "up"
	case HoverEnter:
		return "hover-enter"
	case HoverMove:
		return "hover-move"
	case HoverExit:
		return "hover-exit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// PointerEvent is a single input sample delivered by the host UI.
type PointerEvent struct {
	Action  Action
	X, Y    float32
	Tool    Tool
	Buttons Buttons
}
