package structures

import "testing"

func TestResolveToggle(t *testing.T) {
	cases := []struct {
		operand    byte
		styleValue bool
		want       bool
	}{
		{0x00, true, false},
		{0x00, false, false},
		{0x01, true, true},
		{0x01, false, true},
		{0x80, true, true},
		{0x80, false, false},
		{0x81, true, false},
		{0x81, false, true},
	}
	for _, c := range cases {
		if got := ResolveToggle(c.operand, c.styleValue); got != c.want {
			t.Errorf("ResolveToggle(%#x, %v) = %v, want %v", c.operand, c.styleValue, got, c.want)
		}
	}
}
