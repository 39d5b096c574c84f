package grid

import "testing"

func TestVerticalOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start string
		want  float64
	}{
		{"07:00", 0},
		{"08:30", 90},
		{"20:00", 1170},
		{"06:00", -90}, // before the grid origin: not clamped
	}
	for _, c := range cases {
		got, err := VerticalOffset(c.start)
		if err != nil {
			t.Fatalf("VerticalOffset(%s): %v", c.start, err)
		}
		if got != c.want {
			t.Fatalf("VerticalOffset(%s) = %v, want %v", c.start, got, c.want)
		}
	}

	if _, err := VerticalOffset("25:00"); err == nil {
		t.Fatalf("want error on invalid time")
	}
}

func TestHeight(t *testing.T) {
	t.Parallel()

	got, err := Height("08:00", "10:00")
	if err != nil {
		t.Fatalf("Height: %v", err)
	}
	if got != 180 {
		t.Fatalf("Height(08:00,10:00) = %v, want 180", got)
	}

	// inverted ranges stay negative for the caller to handle
	got, err = Height("10:00", "09:00")
	if err != nil {
		t.Fatalf("Height: %v", err)
	}
	if got != -90 {
		t.Fatalf("Height(10:00,09:00) = %v, want -90", got)
	}
}
