// Package session holds the per-visitor form state: the text to encode and
// its style. State changes go through Reduce; encoding is an effect the
// caller runs when Reduce asks for it.
package session

import (
	"github.com/sua7dev/qr-generator/qr"
)

// WarningEmptyInput is shown when the form is submitted without text.
const WarningEmptyInput = "Por favor, introduce una URL o texto para generar el QR."

// Phase is where a page view is in the submit cycle.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseEncoding Phase = "encoding"
	PhaseReady    Phase = "ready"
)

// State is the form state of one session.
type State struct {
	Text    string
	Style   qr.Style
	Phase   Phase
	Warning string
}

// Default returns the state of a fresh session, pre-filled with text.
func Default(text string) State {
	return State{
		Text:  text,
		Style: qr.DefaultStyle(),
		Phase: PhaseIdle,
	}
}

// Action is a user interaction. The set is closed: Submit, Reset and
// StyleChange.
type Action interface {
	isAction()
}

// Submit is the "Generar QR" button, carrying the text field.
type Submit struct {
	Text string
}

// Reset is the "Restablecer Opciones" button.
type Reset struct{}

// StyleChange is any edit of the color pickers or sliders.
type StyleChange struct {
	Style qr.Style
}

func (Submit) isAction()      {}
func (Reset) isAction()       {}
func (StyleChange) isAction() {}

// Effect is the I/O the caller must perform after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectEncode asks the caller to encode State.Text with State.Style.
	EffectEncode
)

// Reducer applies actions to states. DefaultText is what Reset restores into
// the text field.
type Reducer struct {
	DefaultText string
}

// Reduce returns the state that follows s after a, and the effect to run.
// It never encodes anything itself.
func (r Reducer) Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case StyleChange:
		s.Style = a.Style.Normalize()
		s.Phase = PhaseIdle
		s.Warning = ""
		return s, EffectNone

	case Submit:
		s.Text = a.Text
		s.Style = s.Style.Normalize()
		if a.Text == "" {
			s.Phase = PhaseIdle
			s.Warning = WarningEmptyInput
			return s, EffectNone
		}
		s.Phase = PhaseEncoding
		s.Warning = ""
		return s, EffectEncode

	case Reset:
		return Default(r.DefaultText), EffectNone
	}
	return s, EffectNone
}

// Complete moves an encoding state to ready once the image was produced.
func Complete(s State) State {
	if s.Phase == PhaseEncoding {
		s.Phase = PhaseReady
	}
	return s
}

// Fail moves an encoding state back to idle with warning.
func Fail(s State, warning string) State {
	if s.Phase == PhaseEncoding {
		s.Phase = PhaseIdle
		s.Warning = warning
	}
	return s
}
