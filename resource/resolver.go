package resource

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jonwraymond/tinyshape/platform"
	"github.com/jonwraymond/tinyshape/shape"
)

// RefPrefix starts every resource reference.
const RefPrefix = "resref:"

// MaxDimension bounds a resolved dimension in pixels.
const MaxDimension = 1 << 16

// Resolver resolves values and resource references using registered
// providers. Values with the prefix "resref:" are looked up; other values
// are returned after strict environment expansion.
//
// A nil *Resolver expands the environment but knows no providers.
type Resolver struct {
	mu        sync.RWMutex
	providers map[string]Provider
	strict    bool
}

// NewResolver creates a resolver. A strict resolver rejects empty values.
func NewResolver(strict bool, providers ...Provider) *Resolver {
	r := &Resolver{
		providers: make(map[string]Provider),
		strict:    strict,
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a provider under its name.
func (r *Resolver) Register(p Provider) {
	if r == nil || p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[p.Name()] = p
}

// expandEnv replaces $VAR and ${VAR} with their environment values. Every
// unset variable is reported, sorted, in one ErrMissingEnv error. "$$" is a
// literal dollar sign.
func expandEnv(s string) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}
	var missing []string
	out := os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := os.LookupEnv(name)
		if !ok && !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return out, nil
}

// ParseRef parses a reference of the form resref:<provider>:<name>.
func ParseRef(value string) (provider, name string, ok bool) {
	if !strings.HasPrefix(value, RefPrefix) {
		return "", "", false
	}
	provider, name, found := strings.Cut(strings.TrimPrefix(value, RefPrefix), ":")
	if !found || provider == "" || name == "" {
		return "", "", false
	}
	return provider, name, true
}

// ResolveValue expands the environment in value and resolves it if it is a
// reference.
func (r *Resolver) ResolveValue(ctx context.Context, value string) (string, error) {
	expanded, err := expandEnv(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}

	providerName, name, ok := ParseRef(expanded)
	if !ok {
		if r != nil && r.strict && expanded == "" {
			return "", ErrEmptyValue
		}
		return expanded, nil
	}
	if r == nil {
		return "", fmt.Errorf("%w: %q", ErrProviderNotRegistered, providerName)
	}

	r.mu.RLock()
	p, found := r.providers[providerName]
	r.mu.RUnlock()
	if !found {
		return "", fmt.Errorf("%w: %q", ErrProviderNotRegistered, providerName)
	}

	resolved, err := p.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	resolved = strings.TrimSpace(resolved)
	if r.strict && resolved == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyValue, expanded)
	}
	return resolved, nil
}

// ResolveColor resolves value to a color in #RGB, #RRGGBB or #AARRGGBB form.
func (r *Resolver) ResolveColor(ctx context.Context, value string) (shape.Color, error) {
	s, err := r.ResolveValue(ctx, value)
	if err != nil {
		return 0, err
	}
	c, err := shape.ParseColor(s)
	if err != nil {
		return 0, fmt.Errorf("resource: color %q: %w", value, err)
	}
	return c, nil
}

// ResolveFloat resolves value to a number.
func (r *Resolver) ResolveFloat(ctx context.Context, value string) (float64, error) {
	s, err := r.ResolveValue(ctx, value)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("resource: number %q: %w", value, err)
	}
	return f, nil
}

// ResolveDimension resolves value to pixels. Values may carry a "dp" suffix,
// converted with d, or a "px" suffix; bare numbers are pixels. A nil d
// means platform.Default().
func (r *Resolver) ResolveDimension(ctx context.Context, value string, d platform.Density) (int, error) {
	s, err := r.ResolveValue(ctx, value)
	if err != nil {
		return 0, err
	}
	if d == nil {
		d = platform.Default()
	}

	num, dp := s, false
	switch {
	case strings.HasSuffix(s, "dp"):
		num, dp = strings.TrimSuffix(s, "dp"), true
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) || f > MaxDimension {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, value)
	}
	px := int(math.Round(f))
	if dp {
		px = d.DPToPixels(f)
	}
	if px < 0 || px > MaxDimension {
		return 0, fmt.Errorf("%w: %q exceeds %d pixels", ErrInvalidDimension, value, MaxDimension)
	}
	return px, nil
}

// ResolveRadii resolves value to a comma-separated list of radii.
func (r *Resolver) ResolveRadii(ctx context.Context, value string) ([]float64, error) {
	s, err := r.ResolveValue(ctx, value)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("resource: radii %q: %w", value, err)
		}
		out[i] = f
	}
	return out, nil
}
