package resource

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_RegisterAndCreate(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("stub", func(cfg map[string]any) (Provider, error) {
		return &stubProvider{name: "stub"}, nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, err := reg.Create("stub", map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p == nil || p.Name() != "stub" {
		t.Fatalf("unexpected provider: %#v", p)
	}
}

func TestRegistry_RegisterErrors(t *testing.T) {
	reg := NewRegistry()
	factory := func(cfg map[string]any) (Provider, error) { return &stubProvider{name: "stub"}, nil }
	_ = reg.Register("stub", factory)

	if err := reg.Register("stub", factory); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if err := reg.Register("  ", factory); !errors.Is(err, ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}
	if err := reg.Register("other", nil); !errors.Is(err, ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	if _, err := NewRegistry().Create("missing", nil); !errors.Is(err, ErrProviderNotRegistered) {
		t.Fatalf("expected ErrProviderNotRegistered, got %v", err)
	}
}

func TestDefaultRegistry_Builtins(t *testing.T) {
	if got := DefaultRegistry.List(); !reflect.DeepEqual(got, []string{"env", "map"}) {
		t.Fatalf("List() = %v", got)
	}

	t.Setenv("TS_TEST_ACCENT", "#F00")
	env, err := DefaultRegistry.Create("env", map[string]any{"prefix": "TS_TEST_"})
	if err != nil {
		t.Fatalf("Create(env) error = %v", err)
	}
	if v, err := env.Resolve(context.Background(), "accent"); err != nil || v != "#F00" {
		t.Fatalf("env.Resolve() = %q, %v", v, err)
	}

	theme, err := DefaultRegistry.Create("map", map[string]any{
		"name":   "theme",
		"values": map[string]string{"primary": "#123"},
	})
	if err != nil {
		t.Fatalf("Create(map) error = %v", err)
	}
	if theme.Name() != "theme" {
		t.Fatalf("Name() = %q", theme.Name())
	}

	if _, err := DefaultRegistry.Create("map", nil); !errors.Is(err, ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration for unnamed map, got %v", err)
	}
}
