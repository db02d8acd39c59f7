package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/jonwraymond/tinyshape/drawable"
	"github.com/jonwraymond/tinyshape/platform"
	"github.com/jonwraymond/tinyshape/resource"
	"github.com/jonwraymond/tinyshape/shape"
)

// envPrefix namespaces resref:env:<name> lookups.
const envPrefix = "TINYSHAPE_RES_"

func newResolver(strict bool) (*resource.Resolver, error) {
	env, err := resource.DefaultRegistry.Create("env", map[string]any{"prefix": envPrefix})
	if err != nil {
		return nil, err
	}
	return resource.NewResolver(strict, env), nil
}

// buildRequest turns flag values into a shape request on svc.
func buildRequest(ctx context.Context, svc *drawable.Service, r *resource.Resolver, d platform.Density, o options) (*drawable.Request, error) {
	kind, err := shape.ParseKind(o.kind)
	if err != nil {
		return nil, err
	}
	fill, err := r.ResolveColor(ctx, o.color)
	if err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}

	req := svc.Shape().Kind(kind).Solid(fill)

	if o.strokeWidth != 0 {
		sc, err := r.ResolveColor(ctx, o.strokeColor)
		if err != nil {
			return nil, fmt.Errorf("-stroke-color: %w", err)
		}
		req.Stroke(o.strokeWidth, sc)
	}

	if o.radii != "" {
		radii, err := r.ResolveRadii(ctx, o.radii)
		if err != nil {
			return nil, fmt.Errorf("-radii: %w", err)
		}
		req.Radii(radii...)
	} else {
		radius, err := r.ResolveFloat(ctx, o.radius)
		if err != nil {
			return nil, fmt.Errorf("-radius: %w", err)
		}
		req.Radius(radius)
	}

	dims := []struct {
		flag, value string
		set         func(int) *drawable.Request
	}{
		{"-size", o.size, func(v int) *drawable.Request { return req.Size(v, v) }},
		{"-width", o.width, req.Width},
		{"-height", o.height, req.Height},
	}
	for _, dim := range dims {
		if dim.value == "" {
			continue
		}
		v, err := r.ResolveDimension(ctx, dim.value, d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dim.flag, err)
		}
		dim.set(v)
	}

	if o.overlay {
		req.Overlay(true)
	}
	if o.overlayColor != "" {
		oc, err := r.ResolveColor(ctx, o.overlayColor)
		if err != nil {
			return nil, fmt.Errorf("-overlay-color: %w", err)
		}
		req.OverlayColor(oc)
	}

	if _, err := req.Params(); err != nil {
		return nil, err
	}
	return req, nil
}

func parseState(s string) (shape.State, error) {
	for st := shape.StateDefault; st <= shape.StateDisabled; st++ {
		if strings.EqualFold(strings.TrimSpace(s), st.String()) {
			return st, nil
		}
	}
	return shape.StateDefault, fmt.Errorf("unknown state %q", s)
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
