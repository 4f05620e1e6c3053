package models

import "strings"

// Key enumerates the keyboard events the screens react to.
type Key string

const (
	KeyF1        Key = "F1"
	KeyF2        Key = "F2"
	KeyF3        Key = "F3"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEscape    Key = "Escape"
	KeySpace     Key = "Space"
	KeyUnknown   Key = "Unknown"
)

// ParseKey normalizes a key name as sent by a client. Names are matched case
// insensitively and a literal " " is accepted for Space.
func ParseKey(raw string) Key {
	if raw == " " {
		return KeySpace
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "f1":
		return KeyF1
	case "f2":
		return KeyF2
	case "f3":
		return KeyF3
	case "arrowup", "up":
		return KeyArrowUp
	case "arrowdown", "down":
		return KeyArrowDown
	case "escape", "esc":
		return KeyEscape
	case "space", "spacebar":
		return KeySpace
	default:
		return KeyUnknown
	}
}

// Mode is the calculator screen state.
type Mode string

const (
	ModeCommand Mode = "command"
	ModeMenu    Mode = "menu"
	ModeHelp    Mode = "help"
)

// ModeForKey reports the mode a function key switches to.
func ModeForKey(k Key) (Mode, bool) {
	switch k {
	case KeyF1:
		return ModeCommand, true
	case KeyF2:
		return ModeMenu, true
	case KeyF3:
		return ModeHelp, true
	default:
		return "", false
	}
}
