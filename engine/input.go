package engine

import (
	"unicode"

	"github.com/gazed/servoview/coalesce"
)

// Modifiers is a bitfield matching the ABI's modifiers field verbatim;
// the web engine interprets the bits itself.
type Modifiers uint32

const modifierShift Modifiers = 1 << 0

// WheelDeltaMode classifies a Wheel event's delta units.
type WheelDeltaMode int

const (
	WheelDeltaPixel WheelDeltaMode = iota
	WheelDeltaLine
	WheelDeltaPage
)

// KeyLocation distinguishes keys that appear more than once on a
// keyboard (shift, control, the numeric keypad).
type KeyLocation int

const (
	KeyLocationStandard KeyLocation = iota
	KeyLocationLeft
	KeyLocationRight
	KeyLocationNumpad
)

// Key is the logical key identity: either a printable character or a
// named non-printable key, matching the sum type W3C UI Events describes
// as KeyboardEvent.key.
type Key struct {
	IsCharacter bool
	Character   rune
	Named       NamedKey
}

// TranslatedInputEvent is what process_pending hands the embedded web
// engine after applying §4.5's input translation rules to a raw ABI
// coalesce.InputEvent.
type TranslatedInputEvent struct {
	Kind uint32

	X, Y      float32
	Modifiers Modifiers

	MouseButton uint32
	MouseDown   bool

	WheelDeltaX, WheelDeltaY, WheelDeltaZ float64
	WheelMode                             WheelDeltaMode

	KeyDown     bool
	KeyLocation KeyLocation
	Repeat      bool
	IsComposing bool
	Code        Code
	Key         Key
}

// translateInputEvent applies §4.5's input translation rules to one raw
// ABI event.
func translateInputEvent(ev coalesce.InputEvent) TranslatedInputEvent {
	out := TranslatedInputEvent{
		Kind:      ev.Kind,
		X:         ev.X,
		Y:         ev.Y,
		Modifiers: Modifiers(ev.Modifiers),
	}

	switch ev.Kind {
	case coalesce.InputKindMouseButton:
		out.MouseButton = ev.MouseButton
		out.MouseDown = ev.MouseAction == 0

	case coalesce.InputKindWheel:
		out.WheelDeltaX = ev.WheelDeltaX
		out.WheelDeltaY = ev.WheelDeltaY
		out.WheelDeltaZ = ev.WheelDeltaZ
		switch ev.WheelMode {
		case 1:
			out.WheelMode = WheelDeltaLine
		case 2:
			out.WheelMode = WheelDeltaPage
		default:
			out.WheelMode = WheelDeltaPixel
		}

	case coalesce.InputKindKey:
		out.KeyDown = ev.KeyState == 0
		out.Repeat = ev.Repeat != 0
		out.IsComposing = ev.IsComposing != 0
		switch ev.KeyLocation {
		case 1:
			out.KeyLocation = KeyLocationLeft
		case 2:
			out.KeyLocation = KeyLocationRight
		case 3:
			out.KeyLocation = KeyLocationNumpad
		default:
			out.KeyLocation = KeyLocationStandard
		}
		out.Code = glfwKeyToCode(ev.GLFWKey)
		out.Key = glfwKeyToKey(ev.GLFWKey, ev.KeyCodepoint, out.Modifiers)
	}

	return out
}

// glfwKeyToKey implements §4.5's key-identity precedence: a non-control
// typed codepoint wins, then a named key, then a US-layout ASCII
// fallback, then the zero Key value.
func glfwKeyToKey(glfwKey, keyCodepoint uint32, modifiers Modifiers) Key {
	if keyCodepoint != 0 {
		if ch := rune(keyCodepoint); !unicode.IsControl(ch) {
			return Key{IsCharacter: true, Character: ch}
		}
	}

	if named, ok := glfwKeyToNamedKey(glfwKey); ok {
		return Key{Named: named}
	}

	if ch, ok := glfwKeyToChar(glfwKey, modifiers&modifierShift != 0); ok {
		return Key{IsCharacter: true, Character: ch}
	}

	return Key{}
}
