package core

import (
	"slices"
	"testing"
)

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionPause)
	f.Set(ActionNone)

	if !f.Has(ActionLeft) || !f.Has(ActionPause) {
		t.Error("Has should report set actions")
	}
	if f.Has(ActionRight) || f.Has(ActionNone) {
		t.Error("Has should not report unset actions")
	}
	if got := f.Actions(); !slices.Equal(got, []Action{ActionLeft, ActionPause}) {
		t.Errorf("Actions() = %v", got)
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("Clear should empty the frame")
	}
}

func TestNewInputFrame(t *testing.T) {
	f := NewInputFrame(ActionUp, ActionRestart)
	if !f.Has(ActionUp) || !f.Has(ActionRestart) || f.Has(ActionDown) {
		t.Errorf("NewInputFrame = %v", f.Actions())
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionUp, "Up"},
		{ActionContinue, "Continue"},
		{ActionPause, "Pause"},
		{Action(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}

func TestActionIsMove(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsMove() {
			t.Errorf("%v should be a move", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionConfirm, ActionQuit} {
		if a.IsMove() {
			t.Errorf("%v should not be a move", a)
		}
	}
}

func TestColorBright(t *testing.T) {
	if !ColorBrightMagenta.Bright() || ColorMagenta.Bright() || ColorGray.Bright() {
		t.Error("Bright() misclassifies colours")
	}
}
