package hexgrid

// RenderOption configures a single Render call.
//
// Example:
//
//	res, err := hexgrid.Render(params, hexgrid.WithRasterizer(hexgrid.RasterizerCoverage))
type RenderOption func(*renderOptions)

// renderOptions holds optional configuration for a render.
type renderOptions struct {
	rasterizer RasterizerMode
	observer   func(Stage)
}

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		rasterizer: RasterizerScanline,
	}
}

// WithRasterizer selects the polygon rasterizer.
func WithRasterizer(m RasterizerMode) RenderOption {
	return func(o *renderOptions) {
		o.rasterizer = m
	}
}

// WithStageObserver registers a callback invoked as each pipeline stage
// completes, in order. Intended for diagnostics and tests.
func WithStageObserver(fn func(Stage)) RenderOption {
	return func(o *renderOptions) {
		o.observer = fn
	}
}
