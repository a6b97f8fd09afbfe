package color

import (
	"errors"
	"math"
	"testing"
)

func algebra(f Factory, v ...float64) Algebra {
	return FromComponents(f, v)
}

func groupDistance(g, h Group) float64 {
	return math.Sqrt(g.Mult(h.Adj()).Log().Square())
}

func TestNewFactory(t *testing.T) {
	tests := []struct {
		colors     int
		components int
		wantErr    bool
	}{
		{1, 1, false},
		{2, 3, false},
		{3, 0, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		f, err := NewFactory(tt.colors)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedColors) {
				t.Errorf("NewFactory(%d) err = %v, want ErrUnsupportedColors", tt.colors, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewFactory(%d): %v", tt.colors, err)
		}
		if f.Components() != tt.components {
			t.Errorf("components = %d, want %d", f.Components(), tt.components)
		}
		if f.Components() != ComponentsFor(tt.colors) {
			t.Errorf("ComponentsFor(%d) = %d, want %d", tt.colors, ComponentsFor(tt.colors), f.Components())
		}
	}
}

func TestAlgebraArithmetic(t *testing.T) {
	for _, colors := range []int{1, 2} {
		f, _ := NewFactory(colors)
		n := f.Components()

		a, b := f.Zero(), f.Zero()
		for i := 0; i < n; i++ {
			a.Set(i, float64(i+1))
			b.Set(i, 0.5*float64(i+1))
		}

		sum := a.Add(b)
		diff := a.Sub(b)
		scaled := a.Mult(2)
		for i := 0; i < n; i++ {
			if got, want := sum.Get(i), 1.5*float64(i+1); got != want {
				t.Errorf("colors=%d: Add[%d] = %v, want %v", colors, i, got, want)
			}
			if got, want := diff.Get(i), 0.5*float64(i+1); got != want {
				t.Errorf("colors=%d: Sub[%d] = %v, want %v", colors, i, got, want)
			}
			if got, want := scaled.Get(i), 2*float64(i+1); got != want {
				t.Errorf("colors=%d: Mult[%d] = %v, want %v", colors, i, got, want)
			}
		}

		c := a.Copy()
		c.AddAssign(b)
		if a.Get(0) != 1 {
			t.Errorf("colors=%d: Copy aliases the original", colors)
		}
		c.Clear()
		if c.Square() != 0 {
			t.Errorf("colors=%d: Clear left %v", colors, c.Square())
		}
	}
}

func TestExpLogRoundTrip(t *testing.T) {
	u1, _ := NewFactory(1)
	su2, _ := NewFactory(2)

	tests := []struct {
		name string
		a    Algebra
	}{
		{"u1 small", algebra(u1, 0.1)},
		{"u1 negative", algebra(u1, -2.5)},
		{"su2 axis", algebra(su2, 0, 0, 1.2)},
		{"su2 generic", algebra(su2, 0.3, -0.7, 0.4)},
		{"su2 zero", algebra(su2, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := tt.a.Exp().Log()
			if d := math.Sqrt(back.Sub(tt.a).Square()); d > 1e-12 {
				t.Errorf("Log(Exp(a)) differs by %v", d)
			}
		})
	}
}

func TestActPreservesNorm(t *testing.T) {
	su2, _ := NewFactory(2)
	q := algebra(su2, 0.2, 1.1, -0.4)
	g := algebra(su2, 1.3, -0.2, 2.1).Exp()

	r := q.Act(g)
	if math.Abs(r.Square()-q.Square()) > 1e-12 {
		t.Errorf("|Act(q)|² = %v, want %v", r.Square(), q.Square())
	}

	back := r.Act(g.Adj())
	if d := math.Sqrt(back.Sub(q).Square()); d > 1e-12 {
		t.Errorf("Act(g†)·Act(g) differs from identity by %v", d)
	}
}

func TestActIsAdjointAction(t *testing.T) {
	su2, _ := NewFactory(2)
	a := algebra(su2, 0.5, -0.3, 0.8)
	g := algebra(su2, -0.9, 0.4, 0.1).Exp()

	lhs := a.Act(g).Exp()
	rhs := g.Mult(a.Exp()).Mult(g.Adj())
	if d := groupDistance(lhs, rhs); d > 1e-12 {
		t.Errorf("exp(g a g†) != g exp(a) g†, distance %v", d)
	}
}

func TestU1ActIsTrivial(t *testing.T) {
	u1, _ := NewFactory(1)
	q := algebra(u1, 0.7)
	g := algebra(u1, 1.9).Exp()

	if got := q.Act(g).Get(0); got != 0.7 {
		t.Errorf("Act = %v, want 0.7", got)
	}
}

func TestPow(t *testing.T) {
	su2, _ := NewFactory(2)
	g := algebra(su2, 0.4, 0.2, -0.6).Exp()

	if d := groupDistance(Pow(g, 1), g); d > 1e-12 {
		t.Errorf("Pow(g, 1) differs from g by %v", d)
	}
	if d := groupDistance(Pow(g, 0), su2.Identity()); d > 1e-12 {
		t.Errorf("Pow(g, 0) differs from identity by %v", d)
	}

	half := Pow(g, 0.5)
	if d := groupDistance(half.Mult(half), g); d > 1e-12 {
		t.Errorf("Pow(g, 0.5)² differs from g by %v", d)
	}
}

func TestProjFirstOrder(t *testing.T) {
	for _, colors := range []int{1, 2} {
		f, _ := NewFactory(colors)
		a := f.Zero()
		for i := 0; i < a.Components(); i++ {
			a.Set(i, 1e-4*float64(i+1))
		}
		p := a.Exp().Proj()
		if d := math.Sqrt(p.Sub(a).Square()); d > 1e-10 {
			t.Errorf("colors=%d: Proj(Exp(a)) - a = %v", colors, d)
		}
	}
}
