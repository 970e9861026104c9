package scene

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logging"
	"github.com/go-gl/mathgl/mgl32"
)

// LightRadius is the hit and draw radius of a light marker.
const LightRadius float32 = 0.1

// Kind identifies the variant of a scene Object.
type Kind int

const (
	KindSphere Kind = iota
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// ObjectID is a stable handle into the scene arena. The zero value never refers to a live object.
type ObjectID struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether the handle is the zero handle.
func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}

// Object is a selectable scene entry. Lights are small spheres so they can be picked and dragged like
// any other object.
type Object struct {
	ID       ObjectID
	Kind     Kind
	Name     string
	Position mgl32.Vec3
	Radius   float32
	Color    mgl32.Vec3
	Selected bool
}

// NewSphere returns a sphere object ready to be added to a scene.
func NewSphere(name string, position mgl32.Vec3, radius float32, color mgl32.Vec3) Object {
	return Object{Kind: KindSphere, Name: name, Position: position, Radius: radius, Color: color}
}

// NewLight returns a light marker object ready to be added to a scene.
func NewLight(name string, position mgl32.Vec3, color mgl32.Vec3) Object {
	return Object{Kind: KindLight, Name: name, Position: position, Radius: LightRadius, Color: color}
}

// Intersect hit-tests the object against a ray.
//
// Parameters:
//   - ray: the picking ray
//
// Returns:
//   - float32: the nearest hit parameter
//   - bool: true when the ray hits the object
func (o Object) Intersect(ray geometry.Ray) (float32, bool) {
	switch o.Kind {
	case KindSphere:
		return geometry.RaySphere(ray, o.Position, o.Radius)
	case KindLight:
		return geometry.RaySphere(ray, o.Position, LightRadius)
	default:
		return 0, false
	}
}

// Bounds returns the bounding sphere used for frustum culling.
func (o Object) Bounds() geometry.Sphere {
	switch o.Kind {
	case KindLight:
		return geometry.Sphere{Center: o.Position, Radius: LightRadius}
	default:
		return geometry.Sphere{Center: o.Position, Radius: o.Radius}
	}
}

// Hit is the result of a nearest-hit scene query.
type Hit struct {
	ID ObjectID
	T  float32
}

// Scene owns an arena of Objects addressed by ObjectID handles.
// Objects are copied in and out; the only way to mutate a live object is through the Scene.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Add inserts an object into the arena. The object's ID and Selected fields are ignored.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - ObjectID: the handle of the new object
	Add(obj Object) ObjectID

	// Get returns a copy of a live object.
	//
	// Parameters:
	//   - id: the object's handle
	//
	// Returns:
	//   - Object: the object copy
	//   - bool: false if the handle is stale or unknown
	Get(id ObjectID) (Object, bool)

	// Remove destroys an object. Its handle, and any copy of it, becomes stale.
	//
	// Parameters:
	//   - id: the object's handle
	//
	// Returns:
	//   - bool: true if the object existed
	Remove(id ObjectID) bool

	// Reset destroys every object and rebuilds the arena from the given set. Handles issued before the
	// reset are stale afterwards.
	//
	// Parameters:
	//   - objects: the replacement set
	Reset(objects ...Object)

	// Objects returns copies of all live objects in arena order.
	//
	// Returns:
	//   - []Object: the live objects
	Objects() []Object

	// Len returns the number of live objects.
	Len() int

	// SetPosition moves a live object.
	//
	// Parameters:
	//   - id: the object's handle
	//   - position: the new world-space position
	//
	// Returns:
	//   - bool: false if the handle is stale
	SetPosition(id ObjectID, position mgl32.Vec3) bool

	// Select clears every selection flag, then selects the given object.
	//
	// Parameters:
	//   - id: the object's handle
	//
	// Returns:
	//   - bool: false if the handle is stale, in which case the selection is left cleared
	Select(id ObjectID) bool

	// ClearSelection clears the selection flag on every object.
	ClearSelection()

	// Selected returns the selected object, if any.
	//
	// Returns:
	//   - Object: the selected object
	//   - bool: false when nothing is selected
	Selected() (Object, bool)

	// CastRay finds the object with the smallest non-negative hit parameter along the ray. On an exact
	// tie the object earlier in arena order wins.
	//
	// Parameters:
	//   - ray: the picking ray
	//
	// Returns:
	//   - Hit: the nearest hit
	//   - bool: false if no object is hit
	CastRay(ray geometry.Ray) (Hit, bool)

	// Visible returns copies of the live objects whose bounds intersect the frustum, in arena order.
	//
	// Parameters:
	//   - frustum: the view frustum
	//
	// Returns:
	//   - []Object: the visible objects
	Visible(frustum common.Frustum) []Object

	// Close stops the scene's worker pool.
	Close()
}

type slot struct {
	obj        Object
	generation uint32
	alive      bool
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	logger *slog.Logger

	slots []slot
	free  []uint32
	live  int

	// Objects at or above parallelThreshold are hit-tested across computePool.
	parallelThreshold int
	computePool       worker.DynamicWorkerPool
	computeWorkers    int

	pending []Object
}

var _ Scene = &scene{}

// NewScene creates a new Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:                &sync.RWMutex{},
		name:              name,
		computeWorkers:    max(runtime.NumCPU()-1, 1),
		parallelThreshold: DefaultParallelThreshold,
	}

	for _, option := range options {
		option(s)
	}

	s.logger = logging.Component(s.logger, "scene").With("scene", name)
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	for _, obj := range s.pending {
		s.insert(obj)
	}
	s.pending = nil

	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Add(obj Object) ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(obj)
}

func (s *scene) insert(obj Object) ObjectID {
	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}

	sl := &s.slots[index]
	sl.generation++
	sl.alive = true
	obj.ID = ObjectID{Index: index, Generation: sl.generation}
	obj.Selected = false
	sl.obj = obj
	s.live++

	s.logger.Debug("added object", "kind", obj.Kind, "name", obj.Name, "index", index)
	return obj.ID
}

// lookup returns the slot for a live handle, or nil.
func (s *scene) lookup(id ObjectID) *slot {
	if int(id.Index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[id.Index]
	if !sl.alive || sl.generation != id.Generation {
		return nil
	}
	return sl
}

func (s *scene) Get(id ObjectID) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl := s.lookup(id)
	if sl == nil {
		return Object{}, false
	}
	return sl.obj, true
}

func (s *scene) Remove(id ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.lookup(id)
	if sl == nil {
		return false
	}
	s.logger.Debug("removed object", "kind", sl.obj.Kind, "name", sl.obj.Name, "index", id.Index)
	sl.alive = false
	sl.obj = Object{}
	s.free = append(s.free, id.Index)
	s.live--
	return true
}

func (s *scene) Reset(objects ...Object) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.free = s.free[:0]
	for i := len(s.slots) - 1; i >= 0; i-- {
		sl := &s.slots[i]
		sl.alive = false
		sl.obj = Object{}
		s.free = append(s.free, uint32(i))
	}
	s.live = 0

	for _, obj := range objects {
		s.insert(obj)
	}
	s.logger.Info("scene reset", "objects", len(objects))
}

func (s *scene) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, 0, s.live)
	for i := range s.slots {
		if s.slots[i].alive {
			out = append(out, s.slots[i].obj)
		}
	}
	return out
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

func (s *scene) SetPosition(id ObjectID, position mgl32.Vec3) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.lookup(id)
	if sl == nil {
		return false
	}
	sl.obj.Position = position
	return true
}

func (s *scene) Select(id ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelection()
	sl := s.lookup(id)
	if sl == nil {
		return false
	}
	sl.obj.Selected = true
	return true
}

func (s *scene) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelection()
}

func (s *scene) clearSelection() {
	for i := range s.slots {
		s.slots[i].obj.Selected = false
	}
}

func (s *scene) Selected() (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.slots {
		if s.slots[i].alive && s.slots[i].obj.Selected {
			return s.slots[i].obj, true
		}
	}
	return Object{}, false
}

func (s *scene) CastRay(ray geometry.Ray) (Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.live < s.parallelThreshold {
		return nearest(s.slots, ray)
	}
	return s.castParallel(ray)
}

// nearest scans slots in order; strict comparison keeps the earliest slot on ties.
func nearest(slots []slot, ray geometry.Ray) (Hit, bool) {
	var best Hit
	found := false
	for i := range slots {
		if !slots[i].alive {
			continue
		}
		t, ok := slots[i].obj.Intersect(ray)
		if !ok {
			continue
		}
		if !found || t < best.T {
			best = Hit{ID: slots[i].obj.ID, T: t}
			found = true
		}
	}
	return best, found
}

type chunkResult struct {
	hit Hit
	ok  bool
}

// castParallel splits the arena into contiguous chunks, one task per chunk, and reduces the chunk
// results in arena order so ties resolve exactly as in the sequential scan.
func (s *scene) castParallel(ray geometry.Ray) (Hit, bool) {
	chunks := s.computeWorkers
	size := (len(s.slots) + chunks - 1) / chunks
	results := make([]chunkResult, chunks)

	// A WaitGroup is the per-cast barrier; pool.Wait() waits for idle exit.
	var wg sync.WaitGroup
	for c := range chunks {
		lo := c * size
		if lo >= len(s.slots) {
			break
		}
		hi := min(lo+size, len(s.slots))
		part := s.slots[lo:hi]
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: c,
			Do: func() (any, error) {
				defer wg.Done()
				hit, ok := nearest(part, ray)
				results[c] = chunkResult{hit: hit, ok: ok}
				return nil, nil
			},
		})
	}
	wg.Wait()

	var best Hit
	found := false
	for _, r := range results {
		if r.ok && (!found || r.hit.T < best.T) {
			best = r.hit
			found = true
		}
	}
	return best, found
}

func (s *scene) Visible(frustum common.Frustum) []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, 0, s.live)
	for i := range s.slots {
		if !s.slots[i].alive {
			continue
		}
		b := s.slots[i].obj.Bounds()
		if frustum.ContainsSphere(b.Center, b.Radius) {
			out = append(out, s.slots[i].obj)
		}
	}
	return out
}

func (s *scene) Close() {
	s.computePool.Stop()
}
