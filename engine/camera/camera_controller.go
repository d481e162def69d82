package camera

import "time"

// MovementAxis is one of the six discrete movement directions the controller
// accumulates between frames.
type MovementAxis uint8

const (
	AxisForward MovementAxis = iota
	AxisBackward
	AxisLeft
	AxisRight
	AxisUp
	AxisDown
)

// CameraController accumulates discrete movement flags and continuous
// mouse/scroll deltas between frames, then integrates them into a camera pose
// with explicit Euler steps at update time. An accumulate-then-integrate
// design, not a physical simulation: no acceleration, no damping.
type CameraController interface {
	// ProcessKeyboard records a movement axis going down or up. The axis
	// contributes to position integration for as long as it is held.
	//
	// Parameters:
	//   - axis: the movement direction
	//   - pressed: true on key down, false on key up
	ProcessKeyboard(axis MovementAxis, pressed bool)

	// ProcessMouse accumulates a mouse movement delta. Deltas rotate the
	// camera at the next UpdateDirection call and are consumed by it.
	//
	// Parameters:
	//   - dx, dy: mouse movement since the previous event, in pixels
	ProcessMouse(dx, dy float32)

	// ProcessScroll accumulates a scroll delta, integrated as movement
	// along the full (pitch-aware) front vector.
	//
	// Parameters:
	//   - delta: scroll amount, positive toward the scene
	ProcessScroll(delta float32)

	// UpdateDirection applies accumulated mouse deltas to the camera's yaw
	// and pitch, consuming them.
	//
	// Parameters:
	//   - cam: the camera to rotate
	//   - dt: elapsed time since the previous update
	UpdateDirection(cam Camera, dt time.Duration)

	// UpdatePosition integrates held movement axes and accumulated scroll
	// into the camera's position.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - dt: elapsed time since the previous update
	UpdatePosition(cam Camera, dt time.Duration)

	// Speed returns the movement speed in world units per second.
	Speed() float32

	// Sensitivity returns the rotation sensitivity multiplier.
	Sensitivity() float32
}
