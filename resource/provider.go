package resource

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider looks up resource values by name.
//
// Implementations must be safe for concurrent use. A missing name is an
// error wrapping ErrNotFound.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, name string) (string, error)
}

// MapProvider serves values from a fixed map, such as a theme.
type MapProvider struct {
	name   string
	values map[string]string
}

// NewMapProvider creates a provider over a copy of values.
func NewMapProvider(name string, values map[string]string) *MapProvider {
	m := make(map[string]string, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &MapProvider{name: name, values: m}
}

// Name implements Provider.
func (p *MapProvider) Name() string { return p.name }

// Resolve implements Provider.
func (p *MapProvider) Resolve(_ context.Context, name string) (string, error) {
	v, ok := p.values[name]
	if !ok {
		return "", fmt.Errorf("%w: %s:%s", ErrNotFound, p.name, name)
	}
	return v, nil
}

// EnvProvider serves values from environment variables. The name is
// upper-cased and prefixed, so with prefix "TINYSHAPE_" the name "accent"
// reads TINYSHAPE_ACCENT.
type EnvProvider struct {
	Prefix string
}

// Name implements Provider.
func (p EnvProvider) Name() string { return "env" }

// Resolve implements Provider.
func (p EnvProvider) Resolve(_ context.Context, name string) (string, error) {
	key := p.Prefix + strings.ToUpper(name)
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("%w: $%s", ErrNotFound, key)
	}
	return v, nil
}

var (
	_ Provider = (*MapProvider)(nil)
	_ Provider = EnvProvider{}
)
