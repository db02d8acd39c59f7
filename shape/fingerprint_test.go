package shape

import (
	"strings"
	"testing"
)

func mustBuild(t *testing.T, b *Builder) Params {
	t.Helper()
	p, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

// TestFingerprint_IgnoresNonKeyFields verifies size and overlay settings do not
// change the base fingerprint.
func TestFingerprint_IgnoresNonKeyFields(t *testing.T) {
	base := func() *Builder {
		return NewBuilder().Kind(Oval).Solid(0xFF336699).StrokeWidth(2).StrokeColor(Black).Radius(4)
	}

	ref := Fingerprint(mustBuild(t, base()))

	variants := map[string]*Builder{
		"size":          base().Size(120, 48),
		"width only":    base().Width(7),
		"overlay":       base().Overlay(true),
		"overlay color": base().OverlayColor(0xFFFF0000),
	}
	for name, b := range variants {
		t.Run(name, func(t *testing.T) {
			if got := Fingerprint(mustBuild(t, b)); got != ref {
				t.Errorf("Fingerprint() = %q, want %q", got, ref)
			}
		})
	}
}

// TestFingerprint_DistinguishesKeyFields verifies each key field changes the key.
func TestFingerprint_DistinguishesKeyFields(t *testing.T) {
	base := func() *Builder {
		return NewBuilder().Kind(Rectangle).Solid(0xFF112233).StrokeWidth(1).StrokeColor(0xFF000001).Radius(3)
	}
	ref := Fingerprint(mustBuild(t, base()))

	variants := map[string]*Builder{
		"kind":         base().Kind(Ring),
		"solid":        base().Solid(0xFF112234),
		"states":       base().States(NewStateColorMap(0xFF112233)),
		"stroke width": base().StrokeWidth(2),
		"stroke color": base().StrokeColor(0xFF000002),
		"radius":       base().Radius(3.5),
		"radii":        base().Radii(3, 3, 3, 3, 0, 0, 0, 0),
	}
	for name, b := range variants {
		t.Run(name, func(t *testing.T) {
			if got := Fingerprint(mustBuild(t, b)); got == ref {
				t.Errorf("Fingerprint() = %q, want a different key", got)
			}
		})
	}
}

// TestFingerprint_NoAdjacentFieldCollision verifies digits cannot shift between
// neighbouring fields.
func TestFingerprint_NoAdjacentFieldCollision(t *testing.T) {
	a := mustBuild(t, NewBuilder().StrokeWidth(3).StrokeColor(12))
	b := mustBuild(t, NewBuilder().StrokeWidth(31).StrokeColor(2))
	if Fingerprint(a) == Fingerprint(b) {
		t.Fatalf("fingerprints collide: %q", Fingerprint(a))
	}
}

func TestFingerprint_RadiiCollapse(t *testing.T) {
	uniform := Fingerprint(mustBuild(t, NewBuilder().Radius(5)))

	tests := []struct {
		name     string
		radii    []float64
		collapse bool
	}{
		{"exact", []float64{5, 5, 5, 5, 5, 5, 5, 5}, true},
		{"within tolerance above", []float64{5.0, 5.0, 5.004, 5.0, 5.0, 5.0, 5.0, 5.0}, true},
		{"within tolerance below", []float64{5.0, 4.995, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0}, true},
		{"beyond tolerance above", []float64{5.0, 5.02, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0}, false},
		// A signed comparison would wrongly collapse this one.
		{"larger later entry", []float64{5, 9, 5, 9, 5, 9, 5, 9}, false},
		{"smaller later entry", []float64{5, 1, 5, 1, 5, 1, 5, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fingerprint(mustBuild(t, NewBuilder().Radii(tt.radii...)))
			if tt.collapse && got != uniform {
				t.Errorf("Fingerprint() = %q, want %q", got, uniform)
			}
			if !tt.collapse && got == uniform {
				t.Errorf("Fingerprint() = %q, want distinct from uniform", got)
			}
		})
	}
}

func TestFingerprint_UnsetRadiusIsZero(t *testing.T) {
	p := mustBuild(t, NewBuilder())
	if got := Fingerprint(p); !strings.HasSuffix(got, "|r=0") {
		t.Errorf("Fingerprint() = %q, want suffix |r=0", got)
	}
}

func TestFingerprint_StateMapOrderIndependent(t *testing.T) {
	m1 := NewStateColorMap(White,
		StateColor{State: StatePressed, Color: 0xFF0000FF},
		StateColor{State: StateDefault, Color: 0xFF00FF00},
	)
	m2 := NewStateColorMap(White,
		StateColor{State: StateDefault, Color: 0xFF00FF00},
		StateColor{State: StatePressed, Color: 0xFF0000FF},
	)
	a := Fingerprint(mustBuild(t, NewBuilder().States(m1)))
	b := Fingerprint(mustBuild(t, NewBuilder().States(m2)))
	if a != b {
		t.Errorf("fingerprints differ: %q vs %q", a, b)
	}
}

func TestFingerprint_StateMapKeepsSolid(t *testing.T) {
	m := NewStateColorMap(White, StateColor{State: StatePressed, Color: 0xFF0000FF})
	red := mustBuild(t, NewBuilder().States(m).Solid(0xFFFF0000))
	blue := mustBuild(t, NewBuilder().States(m).Solid(0xFF0000FF))

	if Fingerprint(red) == Fingerprint(blue) {
		t.Errorf("solid colors under one state map share key %q", Fingerprint(red))
	}
	want := "k=0|f=" + m.String() + "/4294901760|sw=0|sc=0|r=0"
	if got := Fingerprint(red); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprint_Format(t *testing.T) {
	p := mustBuild(t, NewBuilder().Kind(Oval).Solid(255).StrokeWidth(2).StrokeColor(7).Radius(1.5))
	want := "k=1|f=255|sw=2|sc=7|r=1.5"
	if got := Fingerprint(p); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestEffectFingerprint(t *testing.T) {
	plain := mustBuild(t, NewBuilder().Solid(White))
	overlay := mustBuild(t, NewBuilder().Solid(White).Overlay(true))
	colored := mustBuild(t, NewBuilder().Solid(White).OverlayColor(Black))

	keys := map[string]string{
		"plain":   EffectFingerprint(plain),
		"overlay": EffectFingerprint(overlay),
		"colored": EffectFingerprint(colored),
	}
	seen := make(map[string]string)
	for name, k := range keys {
		if prev, ok := seen[k]; ok {
			t.Errorf("%s and %s share key %q", name, prev, k)
		}
		seen[k] = name
	}

	if !strings.HasPrefix(keys["overlay"], Fingerprint(overlay)) {
		t.Errorf("EffectFingerprint() = %q, want base prefix %q", keys["overlay"], Fingerprint(overlay))
	}
}

func TestRadiiUniform(t *testing.T) {
	if RadiiUniform(nil) {
		t.Error("RadiiUniform(nil) = true, want false")
	}
	if !RadiiUniform([]float64{2}) {
		t.Error("RadiiUniform([2]) = false, want true")
	}
}
