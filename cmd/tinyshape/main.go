// Command tinyshape materializes a shape and writes it as a PNG.
//
// Color, radius and size flags accept literal values, ${VAR} references, or
// resref:<provider>:<name> references resolved through the env provider
// (TINYSHAPE_RES_<NAME>).
//
//	tinyshape -kind oval -color '#FF3366CC' -size 48dp -overlay -state pressed -out button.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonwraymond/tinyshape/cache"
	"github.com/jonwraymond/tinyshape/drawable"
	"github.com/jonwraymond/tinyshape/engine"
	"github.com/jonwraymond/tinyshape/health"
	"github.com/jonwraymond/tinyshape/observe"
	"github.com/jonwraymond/tinyshape/platform"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "tinyshape:", err)
		os.Exit(1)
	}
}

type options struct {
	kind         string
	color        string
	strokeWidth  int
	strokeColor  string
	radius       string
	radii        string
	width        string
	height       string
	size         string
	overlay      bool
	overlayColor string
	state        string
	mode         string
	policy       string
	capacity     int
	renders      int
	repeat       int
	out          string
	logLevel     string
	metrics      string
	strict       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("tinyshape", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.kind, "kind", "rectangle", "shape kind: rectangle, oval, line or ring")
	fs.StringVar(&o.color, "color", "#00000000", "fill color (#RGB, #RRGGBB or #AARRGGBB)")
	fs.IntVar(&o.strokeWidth, "stroke", 0, "stroke width in pixels")
	fs.StringVar(&o.strokeColor, "stroke-color", "#FF000000", "stroke color")
	fs.StringVar(&o.radius, "radius", "0", "uniform corner radius")
	fs.StringVar(&o.radii, "radii", "", "eight comma-separated corner radii")
	fs.StringVar(&o.width, "width", "", "width (px or dp), default 20dp")
	fs.StringVar(&o.height, "height", "", "height (px or dp), default 20dp")
	fs.StringVar(&o.size, "size", "", "width and height (px or dp)")
	fs.BoolVar(&o.overlay, "overlay", false, "add an interaction overlay")
	fs.StringVar(&o.overlayColor, "overlay-color", "", "overlay color; implies -overlay")
	fs.StringVar(&o.state, "state", "default", "state to draw: default, pressed, focused, hovered or disabled")
	fs.StringVar(&o.mode, "mode", "lenient", "overlay color mode: lenient or strict")
	fs.StringVar(&o.policy, "policy", "bypass", "overlay cache policy: bypass or keyed")
	fs.IntVar(&o.capacity, "capacity", 0, "cache capacity (0 = default)")
	fs.IntVar(&o.renders, "renders", 0, "max concurrent renders (0 = unbounded)")
	fs.IntVar(&o.repeat, "repeat", 1, "materialize the shape this many times")
	fs.StringVar(&o.out, "out", "shape.png", "output PNG path")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error (empty disables logging)")
	fs.StringVar(&o.metrics, "metrics", "none", "metrics exporter: stdout, otlp, prometheus or none")
	fs.BoolVar(&o.strict, "strict-refs", false, "reject references that resolve to empty values")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if o.repeat < 1 {
		return options{}, fmt.Errorf("repeat must be at least 1, got %d", o.repeat)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	plat, err := platform.FromEnv()
	if err != nil {
		return err
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "tinyshape",
		Version:     version,
		Global:      true,
		Metrics:     observe.MetricsConfig{Enabled: o.metrics != "none", Exporter: o.metrics},
		Logging:     observe.LoggingConfig{Enabled: o.logLevel != "", Level: o.logLevel},
	})
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	defer func() {
		err = errors.Join(err, obs.Shutdown(context.WithoutCancel(ctx)))
	}()

	resolver, err := newResolver(o.strict)
	if err != nil {
		return err
	}

	mode, err := engine.ParseMode(o.mode)
	if err != nil {
		return err
	}
	policy, err := drawable.ParseOverlayPolicy(o.policy)
	if err != nil {
		return err
	}

	eng, err := engine.New(engine.Config{Mode: mode, MaxConcurrentRenders: o.renders},
		engine.WithPlatform(plat),
		engine.WithLogger(obs.Logger()),
	)
	if err != nil {
		return err
	}
	svc, err := drawable.New(drawable.Config{Capacity: o.capacity, OverlayPolicy: policy, Mode: mode},
		drawable.WithObserver(obs),
		drawable.WithEngine(eng),
	)
	if err != nil {
		return err
	}
	defer svc.Close()

	req, err := buildRequest(ctx, svc, resolver, plat, o)
	if err != nil {
		return err
	}
	state, err := parseState(o.state)
	if err != nil {
		return err
	}

	out, err := req.Get(ctx)
	for i := 1; err == nil && i < o.repeat; i++ {
		out, err = req.Get(ctx)
	}
	if err != nil {
		return err
	}

	if err := writePNG(o.out, out.Image(state)); err != nil {
		return err
	}

	agg := health.NewAggregator(health.AggregatorConfig{Sequential: true, Logger: obs.Logger()})
	agg.Register("cache", health.NewCacheChecker(func() cache.Stats { return svc.Stats().Stats }, health.CacheCheckerConfig{}))
	agg.Register("platform", health.NewPlatformChecker(plat))
	results := agg.CheckAll(ctx)

	st := svc.Stats()
	b := out.Bounds()
	fmt.Fprintf(stdout, "wrote %s (%dx%d, %s)\n", o.out, b.Dx(), b.Dy(), state)
	fmt.Fprintf(stdout, "cache: size=%d/%d hits=%d misses=%d bypassed=%d evictions=%d\n",
		st.Size, st.Capacity, st.Hits, st.Misses, st.Bypassed, st.Evictions)
	fmt.Fprintf(stdout, "overlay: degraded=%d synthesized=%d\n", st.Degraded, st.Synthesized)
	for _, name := range agg.CheckerNames() {
		r := results[name]
		fmt.Fprintf(stdout, "health %s: %s (%s)\n", name, r.Status, r.Message)
	}
	return nil
}
