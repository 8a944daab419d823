// Package input translates key codes and pointer positions into game
// commands. Keys use DOM KeyboardEvent.code names so bindings read the same
// on every host.
package input

import (
	"slices"
	"time"
)

// Key is a DOM key code such as "Space", "ArrowUp" or "KeyW".
type Key string

const (
	KeySpace      Key = "Space"
	KeyEscape     Key = "Escape"
	KeyEnter      Key = "Enter"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyW          Key = "KeyW"
	KeyA          Key = "KeyA"
	KeyS          Key = "KeyS"
	KeyD          Key = "KeyD"
	KeyP          Key = "KeyP"
	KeyR          Key = "KeyR"
	KeyQ          Key = "KeyQ"
	Digit1        Key = "Digit1"
	Digit2        Key = "Digit2"
	Digit3        Key = "Digit3"
)

// Command is a discrete game action.
type Command int

const (
	None Command = iota
	Jump
	Slide
	Pause
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Shoot
	Choose1
	Choose2
	Choose3
	Start
	Restart
	Quit
)

var commandNames = [...]string{
	None:      "none",
	Jump:      "jump",
	Slide:     "slide",
	Pause:     "pause",
	MoveUp:    "move-up",
	MoveDown:  "move-down",
	MoveLeft:  "move-left",
	MoveRight: "move-right",
	Shoot:     "shoot",
	Choose1:   "choose-1",
	Choose2:   "choose-2",
	Choose3:   "choose-3",
	Start:     "start",
	Restart:   "restart",
	Quit:      "quit",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Choice returns the zero-based index of a Choose command, or -1.
func (c Command) Choice() int {
	if c >= Choose1 && c <= Choose3 {
		return int(c - Choose1)
	}
	return -1
}

// Event is a command edge. Pressed is false when a held key is released.
type Event struct {
	Command Command
	Pressed bool
}

// Bindings maps keys to commands for one game.
type Bindings map[Key]Command

// Lookup returns the command bound to k, or None.
func (b Bindings) Lookup(k Key) Command {
	return b[k]
}

// Translate turns a key edge into an event. ok is false for unbound keys.
func (b Bindings) Translate(k Key, pressed bool) (Event, bool) {
	cmd := b.Lookup(k)
	if cmd == None {
		return Event{}, false
	}
	return Event{Command: cmd, Pressed: pressed}, true
}

// RunnerBindings are the runner's keys.
func RunnerBindings() Bindings {
	return Bindings{
		KeySpace:     Jump,
		KeyArrowUp:   Jump,
		KeyW:         Jump,
		KeyArrowDown: Slide,
		KeyS:         Slide,
		KeyEscape:    Pause,
		KeyP:         Pause,
		KeyEnter:     Start,
		KeyR:         Restart,
		KeyQ:         Quit,
	}
}

// NexusBindings are the nexus keys. Shooting is bound to the pointer.
func NexusBindings() Bindings {
	return Bindings{
		KeyW:          MoveUp,
		KeyArrowUp:    MoveUp,
		KeyS:          MoveDown,
		KeyArrowDown:  MoveDown,
		KeyA:          MoveLeft,
		KeyArrowLeft:  MoveLeft,
		KeyD:          MoveRight,
		KeyArrowRight: MoveRight,
		KeySpace:      Shoot,
		KeyEscape:     Pause,
		KeyP:          Pause,
		Digit1:        Choose1,
		Digit2:        Choose2,
		Digit3:        Choose3,
		KeyEnter:      Start,
		KeyR:          Restart,
		KeyQ:          Quit,
	}
}

// ChessBindings are the chess keys. Moves are made with the pointer.
func ChessBindings() Bindings {
	return Bindings{
		KeyR:      Restart,
		KeyEscape: Quit,
		KeyQ:      Quit,
	}
}

// RunnerTouch maps a touch at height y on a canvas of the given height: the
// top half jumps, the bottom half slides.
func RunnerTouch(y, height float64) Command {
	if y < height/2 {
		return Jump
	}
	return Slide
}

// Sequence detects a key combination typed in order. With a timeout the
// buffer clears after that much idle time; a strict sequence also clears when
// a key outside the sequence is pressed.
type Sequence struct {
	keys    []Key
	timeout time.Duration
	strict  bool

	buf  []Key
	last time.Time
}

// NewSequence creates a detector for keys.
func NewSequence(keys []Key, timeout time.Duration, strict bool) *Sequence {
	return &Sequence{keys: keys, timeout: timeout, strict: strict}
}

// Feed records k pressed at now and reports whether the sequence completed.
// A completed sequence starts over.
func (s *Sequence) Feed(k Key, now time.Time) bool {
	if s.timeout > 0 && !s.last.IsZero() && now.Sub(s.last) >= s.timeout {
		s.buf = s.buf[:0]
	}
	s.last = now

	if s.strict && !slices.Contains(s.keys, k) {
		s.buf = s.buf[:0]
		return false
	}

	s.buf = append(s.buf, k)
	if len(s.buf) > len(s.keys) {
		s.buf = slices.Delete(s.buf, 0, len(s.buf)-len(s.keys))
	}
	if slices.Equal(s.buf, s.keys) {
		s.buf = s.buf[:0]
		return true
	}
	return false
}

// SiderCode opens the runner when "sider" is typed with pauses under 2 s.
func SiderCode() *Sequence {
	return NewSequence([]Key{KeyS, "KeyI", KeyD, "KeyE", KeyR}, 2*time.Second, false)
}

// KonamiCode opens the runner on up up down down left right left right.
func KonamiCode() *Sequence {
	return NewSequence([]Key{
		KeyArrowUp, KeyArrowUp, KeyArrowDown, KeyArrowDown,
		KeyArrowLeft, KeyArrowRight, KeyArrowLeft, KeyArrowRight,
	}, 0, true)
}

// PlayCode opens nexus when "play" is typed.
func PlayCode() *Sequence {
	return NewSequence([]Key{KeyP, "KeyL", KeyA, "KeyY"}, 0, false)
}
