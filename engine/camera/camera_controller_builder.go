package camera

// CameraControllerOption is a functional option for configuring a camera
// controller. Use the With* functions to create options.
type CameraControllerOption func(cc *cameraControllerImpl)

// WithSpeed sets the movement speed in world units per second.
//
// Parameters:
//   - speed: movement speed, must be positive
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.speed = speed
		}
	}
}

// WithSensitivity sets the rotation sensitivity multiplier applied to mouse
// deltas.
//
// Parameters:
//   - sensitivity: rotation sensitivity, must be positive
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if sensitivity > 0 {
			cc.sensitivity = sensitivity
		}
	}
}
