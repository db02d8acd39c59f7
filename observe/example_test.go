package observe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonwraymond/tinyshape/observe"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "tinyshape",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	fmt.Println("Observer created successfully")
	// Output:
	// Observer created successfully
}

func ExampleNewObserver_validation() {
	_, err := observe.NewObserver(context.Background(), observe.Config{})
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleShapeMeta_SpanName() {
	meta := observe.ShapeMeta{Kind: "oval"}
	fmt.Println(meta.SpanName())
	// Output:
	// shape.materialize.oval
}

func ExampleLogger_WithShape() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf).WithShape(observe.ShapeMeta{
		Kind:    "rectangle",
		Overlay: true,
	})
	logger.Warn(context.Background(), "overlay requested without a state color map")

	var entry map[string]any
	_ = json.Unmarshal(buf.Bytes(), &entry)
	fmt.Println(entry["level"], entry["shape.kind"], entry["shape.overlay"])
	// Output:
	// warn rectangle true
}

func ExampleMiddleware_Wrap() {
	mw := observe.NopMiddleware()
	run := mw.Wrap(func(ctx context.Context, meta observe.ShapeMeta) (string, error) {
		return "miss", nil
	})

	outcome, err := run(context.Background(), observe.ShapeMeta{Kind: "oval"})
	fmt.Println(outcome, err)
	// Output:
	// miss <nil>
}
