package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/duskglow/loupe/common"
)

// safeMaxPitch keeps pitch just under +-90 degrees so the front vector never
// becomes collinear with the world up axis.
const safeMaxPitch = float32(math.Pi/2) - 0.0001

// openglToWGPU remaps OpenGL's [-1, 1] clip-space depth to WebGPU's [0, 1].
// Column-major.
var openglToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32 // radians, 0 looks down +X
	pitch    float32 // radians, clamped to +-safeMaxPitch

	fov    float32
	aspect float32
	near   float32
	far    float32
}

// Camera is a first-person fly camera: a position plus yaw/pitch angles with
// no roll. The front vector is derived from the angles; view and projection
// matrices are recomputed on demand from current state.
type Camera interface {
	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position.
	SetPosition(position mgl32.Vec3)

	// Yaw returns the horizontal angle in radians.
	Yaw() float32

	// SetYaw sets the horizontal angle in radians.
	SetYaw(yaw float32)

	// Pitch returns the vertical angle in radians.
	Pitch() float32

	// SetPitch sets the vertical angle in radians, clamped to just under
	// +-90 degrees.
	SetPitch(pitch float32)

	// Front returns the normalized view direction computed from yaw and
	// pitch via spherical-to-Cartesian conversion.
	Front() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// SetAspect sets the aspect ratio. Called on window resize.
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the look-to view matrix for the current pose.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection with depth
	// remapped to WebGPU's [0, 1] clip range.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view for the current pose.
	ViewProjectionMatrix() mgl32.Mat4

	// Uniform packs the current pose into the GPU camera uniform layout.
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 5},
		yaw:      -float32(math.Pi / 2),
		pitch:    0,
		fov:      mgl32.DegToRad(45),
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      1000.0,
	}
	for _, opt := range options {
		opt(c)
	}
	c.pitch = common.Clamp(c.pitch, -safeMaxPitch, safeMaxPitch)
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) SetYaw(yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) SetPitch(pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = common.Clamp(pitch, -safeMaxPitch, safeMaxPitch)
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front()
}

// front computes the view direction from yaw/pitch. Caller must hold the mutex.
func (c *cameraImpl) front() mgl32.Vec3 {
	cosPitch := float32(math.Cos(float64(c.pitch)))
	return mgl32.Vec3{
		cosPitch * float32(math.Cos(float64(c.yaw))),
		float32(math.Sin(float64(c.pitch))),
		cosPitch * float32(math.Sin(float64(c.yaw))),
	}.Normalize()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

func (c *cameraImpl) viewMatrix() mgl32.Mat4 {
	front := c.front()
	return mgl32.LookAtV(c.position, c.position.Add(front), mgl32.Vec3{0, 1, 0})
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix()
}

func (c *cameraImpl) projectionMatrix() mgl32.Mat4 {
	return openglToWGPU.Mul4(mgl32.Perspective(c.fov, c.aspect, c.near, c.far))
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix().Mul4(c.viewMatrix())
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()

	front := c.front()
	viewProj := c.projectionMatrix().Mul4(c.viewMatrix())
	return GPUCameraUniform{
		ViewPosition: [4]float32{c.position.X(), c.position.Y(), c.position.Z(), 1},
		ViewFront:    [4]float32{front.X(), front.Y(), front.Z(), 0},
		ViewProj:     [16]float32(viewProj),
	}
}
