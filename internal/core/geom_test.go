package core

import "testing"

func TestNewSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		want  Size
		empty bool
	}{
		{"regular", 800, 600, Size{800, 600}, false},
		{"negative width", -5, 10, Size{0, 10}, true},
		{"zero height", 10, 0, Size{10, 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewSize(tc.w, tc.h)
			if got != tc.want {
				t.Errorf("NewSize(%d, %d) = %v, expected %v", tc.w, tc.h, got, tc.want)
			}
			if got.Empty() != tc.empty {
				t.Errorf("Empty() = %v, expected %v", got.Empty(), tc.empty)
			}
		})
	}
}

func TestMax(t *testing.T) {
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}
