package engine

import (
	"github.com/duskglow/loupe/engine/camera"
	"github.com/duskglow/loupe/engine/config"
	"github.com/duskglow/loupe/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*viewerEngine)

// WithConfig sets the viewer configuration.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.cfg = cfg
	}
}

// WithScenePath sets the glTF asset to import at startup, overriding the
// configuration's scene path.
//
// Parameters:
//   - path: path to a .gltf or .glb file
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScenePath(path string) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.scenePath = path
	}
}

// WithWindow sets a pre-configured window for the engine to use rather than
// allowing the engine to create one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.win = w
	}
}

// WithCamera sets a pre-configured camera, replacing the default built from
// the window aspect ratio.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.cam = cam
	}
}

// WithController sets a pre-configured camera controller, replacing the
// default built from the configuration's speed and sensitivity.
//
// Parameters:
//   - controller: the controller to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithController(controller camera.CameraController) EngineBuilderOption {
	return func(e *viewerEngine) {
		e.controller = controller
	}
}
