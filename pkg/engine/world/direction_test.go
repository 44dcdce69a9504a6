package world

import "testing"

func TestDirectionOpposite(t *testing.T) {
	for _, d := range AllDirections() {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: Opposite is not an involution", d)
		}
		if d.Delta().Add(d.Opposite().Delta()) != (Point{}) {
			t.Errorf("%v: deltas of opposite directions should cancel", d)
		}
	}
}

func TestFromDegrees(t *testing.T) {
	cases := map[int]Direction{
		0:    North,
		90:   East,
		180:  South,
		270:  West,
		360:  North,
		-90:  West,
		450:  East,
		44:   North,
		46:   East,
		-180: South,
	}
	for deg, want := range cases {
		if got := FromDegrees(deg); got != want {
			t.Errorf("FromDegrees(%d) = %v, want %v", deg, got, want)
		}
	}
	for _, d := range AllDirections() {
		if FromDegrees(d.Degrees()) != d {
			t.Errorf("FromDegrees(%v.Degrees()) round trip failed", d)
		}
	}
}

func TestDistances(t *testing.T) {
	a, b := Pt(1, 2), Pt(4, 6)
	if got := Euclidean(a, b); got != 5 {
		t.Errorf("Euclidean = %v, want 5", got)
	}
	if got := Chebyshev(a, b); got != 4 {
		t.Errorf("Chebyshev = %d, want 4", got)
	}
	if got := Manhattan(a, b); got != 7 {
		t.Errorf("Manhattan = %d, want 7", got)
	}
}
