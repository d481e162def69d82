package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererOption configures optional renderer settings.
type RendererOption func(*wgpuRendererImpl)

// WithPresentMode sets the surface present mode. The default is
// wgpu.PresentModeFifo (vsync).
//
// Parameters:
//   - mode: the present mode to use
//
// Returns:
//   - RendererOption: the option to apply
func WithPresentMode(mode wgpu.PresentMode) RendererOption {
	return func(r *wgpuRendererImpl) {
		r.presentMode = mode
	}
}

// WithClearColor sets the render pass clear color.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - RendererOption: the option to apply
func WithClearColor(red, green, blue, alpha float64) RendererOption {
	return func(r *wgpuRendererImpl) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}

// WithForceFallbackAdapter forces a software adapter, useful for environments
// without a hardware GPU.
//
// Returns:
//   - RendererOption: the option to apply
func WithForceFallbackAdapter() RendererOption {
	return func(r *wgpuRendererImpl) {
		r.forceFallbackAdapter = true
	}
}
