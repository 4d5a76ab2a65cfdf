package core

import "testing"

func TestParseAction(t *testing.T) {
	for a, name := range actionNames {
		got, err := ParseAction(" " + name + " ")
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %v, %v, expected %v", name, got, err, a)
		}
	}
	if _, err := ParseAction("jump"); err == nil {
		t.Error("ParseAction(jump) should fail")
	}
}

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action Action
		want   Direction
		ok     bool
	}{
		{ActionUp, Up, true},
		{ActionDown, Down, true},
		{ActionLeft, Left, true},
		{ActionRight, Right, true},
		{ActionStart, 0, false},
		{ActionQuit, 0, false},
	}
	for _, tc := range tests {
		got, ok := tc.action.Direction()
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%v.Direction() = %v, %v, expected %v, %v", tc.action, got, ok, tc.want, tc.ok)
		}
	}
}
