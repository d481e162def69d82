// Package engine wires the viewer together: window, renderer, importer,
// camera, frame updater and editor history, driven by a single-threaded
// per-frame loop on the window's message thread.
package engine

import (
	"fmt"
	"time"

	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/camera"
	"github.com/duskglow/loupe/engine/config"
	"github.com/duskglow/loupe/engine/editor"
	"github.com/duskglow/loupe/engine/loader"
	"github.com/duskglow/loupe/engine/profiler"
	"github.com/duskglow/loupe/engine/renderer"
	"github.com/duskglow/loupe/engine/scene"
	"github.com/duskglow/loupe/engine/window"
)

// Engine is the viewer's context object. It owns every runtime component;
// there are no package-level singletons besides the logger.
type Engine interface {
	// Window returns the underlying window shell.
	//
	// Returns:
	//   - window.Window: the window instance, nil before Run
	Window() window.Window

	// Camera returns the fly camera.
	Camera() camera.Camera

	// Controller returns the camera controller.
	Controller() camera.CameraController

	// Scene returns the resident imported scene. Nil before Run imports it.
	Scene() *scene.ImportedScene

	// Undo returns the editor undo manager.
	Undo() *editor.UndoManager

	// Dispatch feeds one abstract input event through the fly-camera session
	// and editor shortcuts.
	//
	// Parameters:
	//   - event: the input event to dispatch
	Dispatch(event InputEvent)

	// Run opens the window, imports the scene and blocks in the frame loop
	// until the window closes. GPU resources are released before it returns.
	//
	// Returns:
	//   - error: if the scene import fails
	Run() error

	// Quit closes the window, ending the frame loop.
	Quit()
}

// viewerEngine implements the Engine interface.
type viewerEngine struct {
	cfg       config.Config
	scenePath string

	win        window.Window
	rend       renderer.Renderer
	cam        camera.Camera
	controller camera.CameraController

	sceneData *scene.ImportedScene
	sceneID   scene.SceneID
	updater   *scene.FrameUpdater
	undo      *editor.UndoManager

	session  *flySession
	ctrlHeld bool

	// Cursor tracking for relative mouse deltas. The baseline resets when a
	// look session opens so the first sample is not a jump.
	lastMouseX   int32
	lastMouseY   int32
	haveBaseline bool

	lastFrame time.Time
	prof      *profiler.Profiler
}

var _ Engine = &viewerEngine{}

// NewEngine creates an Engine with the provided options. The window and GPU
// stack are not touched until Run.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the configured engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &viewerEngine{
		cfg:     config.Default(),
		undo:    editor.NewUndoManager(),
		session: newFlySession(),
		prof:    profiler.NewProfiler(time.Second),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.scenePath == "" {
		e.scenePath = e.cfg.Import.ScenePath
	}
	return e
}

func (e *viewerEngine) Window() window.Window {
	return e.win
}

func (e *viewerEngine) Camera() camera.Camera {
	return e.cam
}

func (e *viewerEngine) Controller() camera.CameraController {
	return e.controller
}

func (e *viewerEngine) Scene() *scene.ImportedScene {
	return e.sceneData
}

func (e *viewerEngine) Undo() *editor.UndoManager {
	return e.undo
}

func (e *viewerEngine) Run() error {
	if e.scenePath == "" {
		return fmt.Errorf("no scene path configured")
	}

	if e.win == nil {
		e.win = window.NewWindow(
			window.WithTitle(e.cfg.Window.Title),
			window.WithWidth(e.cfg.Window.Width),
			window.WithHeight(e.cfg.Window.Height),
		)
	}

	cc := e.cfg.Renderer.ClearColor
	e.rend = renderer.NewWGPURenderer(
		e.win.SurfaceDescriptor(),
		e.win.Width(),
		e.win.Height(),
		renderer.WithClearColor(cc[0], cc[1], cc[2], cc[3]),
	)

	aspect := float32(e.win.Width()) / float32(e.win.Height())
	if e.cam == nil {
		e.cam = camera.NewCamera(camera.WithAspect(aspect))
	} else {
		e.cam.SetAspect(aspect)
	}
	if e.controller == nil {
		e.controller = camera.NewCameraController(
			camera.WithSpeed(e.cfg.Camera.Speed),
			camera.WithSensitivity(e.cfg.Camera.Sensitivity),
		)
	}

	importer := loader.NewImporter(loader.ImportDeps{
		Device:         e.rend.Device(),
		NodeLayout:     e.rend.NodeLayout(),
		MaterialLayout: e.rend.MaterialLayout(),
	}, loader.WithWorkerCount(e.cfg.Import.Workers))

	imported, err := importer.Import(e.scenePath)
	if err != nil {
		e.rend.Release()
		return fmt.Errorf("failed to import %s: %w", e.scenePath, err)
	}
	e.sceneData = imported
	e.sceneID, _ = imported.DefaultScene()
	e.updater = scene.NewFrameUpdater(e.rend.Device())

	e.wireCallbacks()

	e.lastFrame = time.Now()
	e.win.SetUpdateCallback(e.frame)
	e.win.ProcessMessages()

	e.sceneData.Release()
	e.rend.Release()
	return nil
}

func (e *viewerEngine) Quit() {
	if e.win != nil {
		if err := e.win.Close(); err != nil {
			common.LogWarn("failed to close window: %v", err)
		}
	}
}

// wireCallbacks translates raw window events into abstract input events and
// editor shortcuts.
func (e *viewerEngine) wireCallbacks() {
	e.win.SetResizeCallback(func(width, height int) {
		e.rend.Resize(width, height)
		if height > 0 {
			e.cam.SetAspect(float32(width) / float32(height))
		}
	})

	e.win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyLeftCtrl:
			e.ctrlHeld = true
			return
		case common.KeyZ:
			if e.ctrlHeld {
				if err := e.undo.Undo(e.sceneData); err != nil {
					common.LogWarn("undo failed: %v", err)
				}
				return
			}
		case common.KeyY:
			if e.ctrlHeld {
				if err := e.undo.Redo(e.sceneData); err != nil {
					common.LogWarn("redo failed: %v", err)
				}
				return
			}
		}
		if axis, ok := movementAxisForKey(keyCode); ok {
			e.Dispatch(KeyPressing{Axis: axis})
		}
	})

	e.win.SetKeyUpCallback(func(keyCode uint32) {
		if keyCode == common.KeyLeftCtrl {
			e.ctrlHeld = false
			return
		}
		if axis, ok := movementAxisForKey(keyCode); ok {
			e.Dispatch(KeyUp{Axis: axis})
		}
	})

	e.win.SetRightMouseDownCallback(func(x, y int32) {
		e.Dispatch(MouseRightDown{})
	})
	e.win.SetRightMouseUpCallback(func(x, y int32) {
		e.Dispatch(MouseRightUp{})
	})

	e.win.SetMouseMoveCallback(func(x, y int32) {
		if !e.session.Rotating() {
			return
		}
		if !e.haveBaseline {
			e.lastMouseX, e.lastMouseY = x, y
			e.haveBaseline = true
			return
		}
		dx := float32(x - e.lastMouseX)
		dy := float32(y - e.lastMouseY)
		e.lastMouseX, e.lastMouseY = x, y
		e.Dispatch(MouseMove{DeltaX: dx, DeltaY: dy})
	})

	e.win.SetScrollCallback(func(delta float32) {
		e.Dispatch(MouseWheel{DeltaY: delta})
	})
}

func (e *viewerEngine) Dispatch(event InputEvent) {
	switch event.(type) {
	case MouseRightDown:
		e.haveBaseline = false
		if e.win != nil {
			e.win.SetCursorCaptured(true)
		}
	case MouseRightUp:
		if e.win != nil {
			e.win.SetCursorCaptured(false)
		}
	}
	e.session.Handle(event, e.controller)
}

// frame runs one tick of the viewer loop: integrate input, upload the camera
// uniform, refresh node transforms, then record and submit the frame.
func (e *viewerEngine) frame() {
	now := time.Now()
	dt := now.Sub(e.lastFrame)
	e.lastFrame = now

	e.controller.UpdateDirection(e.cam, dt)
	e.controller.UpdatePosition(e.cam, dt)

	uniform := e.cam.Uniform()
	e.rend.WriteCameraUniform(uniform.Marshal())

	e.updater.Update(e.sceneData, e.sceneID)

	if err := e.rend.RenderFrame(e.sceneData, e.updater.Visible()); err != nil {
		common.LogError("frame dropped: %v", err)
	}

	e.prof.Tick()
}
