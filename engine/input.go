package engine

import (
	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/camera"
)

// InputEvent is the closed set of abstract input events the engine dispatches.
// The window shell translates raw device events into these before they reach
// the fly-camera session.
type InputEvent interface {
	isInputEvent()
}

// KeyPressing reports a movement key going (or staying) down.
type KeyPressing struct {
	Axis camera.MovementAxis
}

// KeyUp reports a movement key release.
type KeyUp struct {
	Axis camera.MovementAxis
}

// MouseWheel reports scroll wheel movement.
type MouseWheel struct {
	DeltaY float32
}

// MouseRightDown opens the fly-camera look session.
type MouseRightDown struct{}

// MouseRightUp closes the fly-camera look session.
type MouseRightUp struct{}

// MouseMove reports relative cursor movement.
type MouseMove struct {
	DeltaX float32
	DeltaY float32
}

func (KeyPressing) isInputEvent()    {}
func (KeyUp) isInputEvent()          {}
func (MouseWheel) isInputEvent()     {}
func (MouseRightDown) isInputEvent() {}
func (MouseRightUp) isInputEvent()   {}
func (MouseMove) isInputEvent()      {}

// movementAxisForKey maps a virtual key code to a movement axis.
//
// Parameters:
//   - keyCode: the virtual key code from the window shell
//
// Returns:
//   - camera.MovementAxis: the mapped axis
//   - bool: false if the key is not a movement key
func movementAxisForKey(keyCode uint32) (camera.MovementAxis, bool) {
	switch keyCode {
	case common.KeyW:
		return camera.AxisForward, true
	case common.KeyS:
		return camera.AxisBackward, true
	case common.KeyA:
		return camera.AxisLeft, true
	case common.KeyD:
		return camera.AxisRight, true
	case common.KeyE, common.KeySpace:
		return camera.AxisUp, true
	case common.KeyQ:
		return camera.AxisDown, true
	}
	return 0, false
}

// flySession is the state machine gating camera rotation and movement behind
// the right mouse button. Movement keys only register while the look session
// is open; releasing the button releases every held axis so no movement
// leaks past the session.
type flySession struct {
	rotating bool
	pressed  map[camera.MovementAxis]bool
}

func newFlySession() *flySession {
	return &flySession{
		pressed: make(map[camera.MovementAxis]bool),
	}
}

// Rotating reports whether the look session is open.
func (s *flySession) Rotating() bool {
	return s.rotating
}

// Handle feeds one input event through the session, forwarding to the
// controller where the session state allows it.
//
// Parameters:
//   - event: the abstract input event
//   - controller: the camera controller receiving accepted events
//
// Returns:
//   - bool: true if the event was consumed
func (s *flySession) Handle(event InputEvent, controller camera.CameraController) bool {
	switch ev := event.(type) {
	case MouseRightDown:
		s.rotating = true
		return true

	case MouseRightUp:
		s.rotating = false
		for axis := range s.pressed {
			controller.ProcessKeyboard(axis, false)
			delete(s.pressed, axis)
		}
		return true

	case MouseMove:
		if !s.rotating {
			return false
		}
		controller.ProcessMouse(ev.DeltaX, ev.DeltaY)
		return true

	case MouseWheel:
		controller.ProcessScroll(ev.DeltaY)
		return true

	case KeyPressing:
		if !s.rotating {
			return false
		}
		s.pressed[ev.Axis] = true
		controller.ProcessKeyboard(ev.Axis, true)
		return true

	case KeyUp:
		if !s.pressed[ev.Axis] {
			return false
		}
		delete(s.pressed, ev.Axis)
		controller.ProcessKeyboard(ev.Axis, false)
		return true
	}

	return false
}
