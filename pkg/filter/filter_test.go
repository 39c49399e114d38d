package filter

import "testing"

func TestBox_ZeroOutsideRadius(t *testing.T) {
	b := Box{RX: 0.5, RY: 0.5}
	if b.Evaluate(0.4, 0.4) != 1 {
		t.Error("expected weight 1 inside radius")
	}
	if b.Evaluate(0.6, 0) != 0 || b.Evaluate(0, 0.6) != 0 {
		t.Error("expected weight 0 outside radius")
	}
}

func TestTriangle_PeaksAtCenterAndDecaysLinearly(t *testing.T) {
	tr := Triangle{RX: 1, RY: 1}
	center := tr.Evaluate(0, 0)
	edge := tr.Evaluate(0.5, 0)
	if center <= edge {
		t.Errorf("expected center weight %v > half-radius weight %v", center, edge)
	}
	if tr.Evaluate(1, 0) != 0 {
		t.Error("expected weight 0 exactly at the radius")
	}
}

func TestGaussian_ZeroAtRadius(t *testing.T) {
	g := NewGaussian(2, 2, 0.5)
	if v := g.Evaluate(2, 0); v != 0 {
		t.Errorf("Evaluate at radius = %v, want 0", v)
	}
	if v := g.Evaluate(0, 2); v != 0 {
		t.Errorf("Evaluate at radius = %v, want 0", v)
	}
}

func TestGaussian_PeaksAtCenter(t *testing.T) {
	g := NewGaussian(2, 2, 0.5)
	center := g.Evaluate(0, 0)
	off := g.Evaluate(1, 1)
	if center <= off {
		t.Errorf("expected center weight %v > off-center weight %v", center, off)
	}
	if center <= 0 {
		t.Error("expected positive weight at center")
	}
}

func TestMitchell_ZeroOutsideRadius(t *testing.T) {
	m := NewMitchell(2, 2, 1.0/3, 1.0/3)
	if v := m.Evaluate(2, 0); v != 0 {
		t.Errorf("Evaluate at radius edge = %v, want 0", v)
	}
}

func TestMitchell_PositiveAtCenter(t *testing.T) {
	m := NewMitchell(2, 2, 1.0/3, 1.0/3)
	if v := m.Evaluate(0, 0); v <= 0 {
		t.Errorf("Evaluate at center = %v, want > 0", v)
	}
}

func TestLanczosSinc_OneAtCenter(t *testing.T) {
	l := NewLanczosSinc(3, 3, 3)
	v := l.Evaluate(0, 0)
	if v < 0.99 || v > 1.01 {
		t.Errorf("Evaluate at center = %v, want ~1", v)
	}
}

func TestLanczosSinc_ZeroBeyondRadius(t *testing.T) {
	l := NewLanczosSinc(3, 3, 3)
	if v := l.Evaluate(4, 0); v != 0 {
		t.Errorf("Evaluate beyond radius = %v, want 0", v)
	}
}

func TestAllFilters_SatisfyInterface(t *testing.T) {
	filters := []Filter{
		Box{RX: 1, RY: 1},
		Triangle{RX: 1, RY: 1},
		NewGaussian(1, 1, 0.5),
		NewMitchell(1, 1, 1.0/3, 1.0/3),
		NewLanczosSinc(1, 1, 3),
	}
	for _, f := range filters {
		if f.RadiusX() <= 0 || f.RadiusY() <= 0 {
			t.Errorf("%T: expected positive radius", f)
		}
	}
}
