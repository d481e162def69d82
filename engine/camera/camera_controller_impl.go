package camera

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Movement amounts are held at 1 while the key is down and reset to 0 on
// release; mouse and scroll deltas accumulate and are consumed by the next
// integration step.
type cameraControllerImpl struct {
	mu *sync.Mutex

	amountForward  float32
	amountBackward float32
	amountLeft     float32
	amountRight    float32
	amountUp       float32
	amountDown     float32

	rotateHorizontal float32
	rotateVertical   float32
	scroll           float32

	speed       float32
	sensitivity float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new CameraController with the specified
// options. Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the configured controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		speed:       4.0,
		sensitivity: 0.4,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKeyboard(axis MovementAxis, pressed bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var amount float32
	if pressed {
		amount = 1.0
	}
	switch axis {
	case AxisForward:
		cc.amountForward = amount
	case AxisBackward:
		cc.amountBackward = amount
	case AxisLeft:
		cc.amountLeft = amount
	case AxisRight:
		cc.amountRight = amount
	case AxisUp:
		cc.amountUp = amount
	case AxisDown:
		cc.amountDown = amount
	}
}

func (cc *cameraControllerImpl) ProcessMouse(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotateHorizontal += dx
	cc.rotateVertical += dy
}

func (cc *cameraControllerImpl) ProcessScroll(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.scroll += delta
}

func (cc *cameraControllerImpl) UpdateDirection(cam Camera, dt time.Duration) {
	cc.mu.Lock()
	h, v := cc.rotateHorizontal, cc.rotateVertical
	cc.rotateHorizontal = 0
	cc.rotateVertical = 0
	cc.mu.Unlock()

	seconds := float32(dt.Seconds())
	cam.SetYaw(cam.Yaw() + h*cc.sensitivity*seconds)
	cam.SetPitch(cam.Pitch() - v*cc.sensitivity*seconds)
}

func (cc *cameraControllerImpl) UpdatePosition(cam Camera, dt time.Duration) {
	cc.mu.Lock()
	forwardAmount := cc.amountForward - cc.amountBackward
	rightAmount := cc.amountRight - cc.amountLeft
	upAmount := cc.amountUp - cc.amountDown
	scroll := cc.scroll
	cc.scroll = 0
	cc.mu.Unlock()

	seconds := float32(dt.Seconds())
	position := cam.Position()

	// Planar movement follows yaw only so forward/back stays horizontal
	// regardless of pitch.
	yaw := cam.Yaw()
	cosYaw := float32(math.Cos(float64(yaw)))
	sinYaw := float32(math.Sin(float64(yaw)))
	forward := mgl32.Vec3{cosYaw, 0, sinYaw}
	right := mgl32.Vec3{-sinYaw, 0, cosYaw}

	position = position.Add(forward.Mul(forwardAmount * cc.speed * seconds))
	position = position.Add(right.Mul(rightAmount * cc.speed * seconds))

	// Scroll dollies along the full front vector, pitch included.
	position = position.Add(cam.Front().Mul(scroll * cc.speed * cc.sensitivity * seconds))

	position[1] += upAmount * cc.speed * seconds

	cam.SetPosition(position)
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}
