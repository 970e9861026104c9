package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Orbit defaults.
const (
	ZoomBase             float32 = 1.2
	DefaultZoomLevel     float32 = 2
	DefaultMinZoomLevel  float32 = 0.1
	DefaultMaxZoomLevel  float32 = 32
	DefaultOrbitSpeed    float32 = 0.03
	DefaultPanSpeed      float32 = 0.005
	DefaultElevation     float32 = 0.25 * math32.Pi
	DefaultMinElevation  float32 = 0
	DefaultMaxElevation  float32 = 0.49 * math32.Pi
	DefaultZoomStepScale float32 = 1
)

type orbitState struct {
	target    mgl32.Vec3
	azimuth   float32
	elevation float32
	zoom      float32
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	orbitState
	initial orbitState

	minZoom      float32
	maxZoom      float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	panSpeed   float32
	zoomScale  float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller looking at the origin from above and in front.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},
		orbitState: orbitState{
			elevation: DefaultElevation,
			zoom:      DefaultZoomLevel,
		},
		minZoom:      DefaultMinZoomLevel,
		maxZoom:      DefaultMaxZoomLevel,
		minElevation: DefaultMinElevation,
		maxElevation: DefaultMaxElevation,
		orbitSpeed:   DefaultOrbitSpeed,
		panSpeed:     DefaultPanSpeed,
		zoomScale:    DefaultZoomStepScale,
	}

	for _, option := range options {
		option(cc)
	}

	cc.zoom = common.Clamp(cc.zoom, cc.minZoom, cc.maxZoom)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.initial = cc.orbitState
	return cc
}

// offset is the vector from the target to the camera. Caller must hold the mutex.
func (cc *cameraControllerImpl) offset() mgl32.Vec3 {
	r := math32.Pow(ZoomBase, cc.zoom)
	cosE, sinE := math32.Cos(cc.elevation), math32.Sin(cc.elevation)
	cosA, sinA := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)
	return mgl32.Vec3{r * cosE * sinA, r * sinE, r * cosE * cosA}
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target.Add(cc.offset())
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return math32.Pow(ZoomBase, cc.zoom)
}

func (cc *cameraControllerImpl) ZoomLevel() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) Zoom(steps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoom = common.Clamp(cc.zoom-steps*cc.zoomScale, cc.minZoom, cc.maxZoom)
}

func (cc *cameraControllerImpl) Orbit(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= dx * cc.orbitSpeed
	cc.elevation = common.Clamp(cc.elevation+dy*cc.orbitSpeed, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	step := cc.panSpeed * cc.zoom
	ox, oz := -dx*step, -dy*step
	cosA, sinA := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)
	cc.target[0] += ox*cosA + oz*sinA
	cc.target[2] += -ox*sinA + oz*cosA
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbitState = cc.initial
}
