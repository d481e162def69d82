package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraOption is a functional option for configuring a camera.
// Use the With* functions to create options.
type CameraOption func(c *cameraImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - position: world-space camera position
//
// Returns:
//   - CameraOption: option function to apply
func WithPosition(position mgl32.Vec3) CameraOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithYaw sets the initial horizontal angle in radians.
//
// Parameters:
//   - yaw: horizontal angle in radians
//
// Returns:
//   - CameraOption: option function to apply
func WithYaw(yaw float32) CameraOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the initial vertical angle in radians. Clamped to just
// under +-90 degrees on construction.
//
// Parameters:
//   - pitch: vertical angle in radians
//
// Returns:
//   - CameraOption: option function to apply
func WithPitch(pitch float32) CameraOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraOption: option function to apply
func WithFov(fov float32) CameraOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the initial aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraOption: option function to apply
func WithAspect(aspect float32) CameraOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraOption: option function to apply
func WithClipPlanes(near, far float32) CameraOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
