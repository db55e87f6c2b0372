// Package layout owns the canonical container layout. The Engine is the only
// mutator: every accepted operation produces a new snapshot that is pushed
// to subscribed views, and every rejected operation leaves the layout
// exactly as it was.
package layout

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/piwi3910/ContainerPlan/internal/engine"
	"github.com/piwi3910/ContainerPlan/internal/model"
)

// Operation names used in errors, logs and metrics.
const (
	OpAddItem          = "add_item"
	OpAddWall          = "add_wall"
	OpAddWindow        = "add_window"
	OpRemoveItem       = "remove_item"
	OpRemoveStructure  = "remove_structure"
	OpSetEditingWalls  = "set_editing_walls"
	OpSelectWall       = "select_wall"
	OpToggleWallEdit   = "toggle_wall_edit"
	OpNudgeWall        = "nudge_wall"
	OpDragWall         = "drag_wall"
	OpCommitWallDrag   = "commit_wall_drag"
	OpWallMoved        = "wall_moved"
	OpSetContainerSize = "set_container_size"
	OpSetInsulation    = "set_insulation"
)

// StructureKind selects the list RemoveStructure operates on.
type StructureKind string

const (
	StructureWall   StructureKind = "wall"
	StructureWindow StructureKind = "window"
)

// OpObserver is notified after every Engine operation with its outcome.
type OpObserver interface {
	ObserveOp(op string, err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers an operation observer.
func WithObserver(o OpObserver) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// WithInitial overrides the catalog's default container size and insulation.
// Empty values keep the catalog default.
func WithInitial(sizeID, insulationID string) Option {
	return func(e *Engine) {
		e.initialSize = sizeID
		e.initialInsulation = insulationID
	}
}

// Engine holds the canonical layout and exposes the planner operations.
// It is safe for concurrent use. Views receive snapshots after the lock is
// released, so they may call back into the Engine from Sync; a snapshot
// produced from inside Sync reaches that view once its Sync returns.
type Engine struct {
	mu        sync.Mutex
	catalog   model.Catalog
	layout    model.Layout
	drag      *engine.DragSession
	version   uint64
	outbox    *Snapshot
	hub       *Hub
	logger    *slog.Logger
	observers []OpObserver

	initialSize       string
	initialInsulation string
}

// New creates an Engine over a private copy of cat, starting with the
// catalog's default container size and insulation and an empty layout.
func New(cat model.Catalog, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog: cat.Clone(),
		hub:     NewHub(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	size := e.catalog.InitialContainerSize()
	if e.initialSize != "" {
		s, ok := e.catalog.FindContainerSize(e.initialSize)
		if !ok {
			return nil, refError("new", KindContainer, e.initialSize, ErrUnknownReference)
		}
		size = s
	}
	ins := e.catalog.InitialInsulation()
	if e.initialInsulation != "" {
		o, ok := e.catalog.FindInsulation(e.initialInsulation)
		if !ok {
			return nil, refError("new", KindInsulation, e.initialInsulation, ErrUnknownReference)
		}
		ins = o
	}

	e.layout.Container = size.Container()
	e.layout.Insulation = ins.Insulation()
	e.version = 1
	e.hub.Publish(newSnapshot(e.version, e.layout))
	e.logger.Info("layout engine ready",
		"container", size.ID,
		"insulation", ins.ID,
	)
	return e, nil
}

// Catalog returns a copy of the catalog the Engine was built with.
func (e *Engine) Catalog() model.Catalog {
	return e.catalog.Clone()
}

// Snapshot returns a consistent copy of the current layout.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return newSnapshot(e.version, e.layout)
}

// Totals returns the running price breakdown.
func (e *Engine) Totals() model.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Totals()
}

// Subscribe registers a view that is not ready yet; see Hub.Subscribe.
func (e *Engine) Subscribe(v View) *Subscription { return e.hub.Subscribe(v) }

// SubscribeReady registers a view and delivers the current snapshot at once.
func (e *Engine) SubscribeReady(v View) *Subscription { return e.hub.SubscribeReady(v) }

// AddItem places a new instance of the catalog furniture id at the first free
// spot of the interior.
func (e *Engine) AddItem(id string) (model.Item, error) {
	defer e.lock()()

	def, ok := e.catalog.FindItem(id)
	if !ok {
		return model.Item{}, e.reject(refError(OpAddItem, KindItem, id, ErrUnknownReference))
	}
	x, y, ok := engine.FindItemSpot(def.W, def.D, e.layout.ItemFootprints(), e.layout.Bounds())
	if !ok {
		return model.Item{}, e.reject(refError(OpAddItem, KindItem, id, ErrNoSpace))
	}

	item := def.NewItem(x, y)
	e.layout.Items = append(e.layout.Items, item)
	e.commit(OpAddItem, "kind", KindItem, "ref", id, "index", len(e.layout.Items)-1, "x", x, "y", y)
	return item, nil
}

// AddWall places a new wall of the given option on the back wall line at the
// first free x.
func (e *Engine) AddWall(id string) (model.Wall, error) {
	defer e.lock()()

	opt, ok := e.catalog.FindWallOption(id)
	if !ok {
		return model.Wall{}, e.reject(refError(OpAddWall, KindWall, id, ErrUnknownReference))
	}
	depth := e.catalog.WallDepth
	y := engine.StructureLine(e.layout.Container, e.layout.Insulation.Thickness, depth)
	x, ok := engine.FindStructureSpot(opt.W, depth, y, e.layout.WallFootprints(), e.layout.Bounds())
	if !ok {
		return model.Wall{}, e.reject(refError(OpAddWall, KindWall, id, ErrNoSpace))
	}

	wall := opt.NewWall(x, y, depth, float64(e.layout.Container.Height))
	e.layout.Walls = append(e.layout.Walls, wall)
	e.drag = nil
	e.commit(OpAddWall, "kind", KindWall, "ref", id, "index", len(e.layout.Walls)-1, "x", x, "y", y)
	return wall, nil
}

// AddWindow places a new window on the back wall line. Windows are only
// checked against other windows, never against walls.
func (e *Engine) AddWindow(id string) (model.Window, error) {
	defer e.lock()()

	opt, ok := e.catalog.FindWindowOption(id)
	if !ok {
		return model.Window{}, e.reject(refError(OpAddWindow, KindWindow, id, ErrUnknownReference))
	}
	depth := e.catalog.WallDepth
	y := engine.StructureLine(e.layout.Container, e.layout.Insulation.Thickness, depth)
	x, ok := engine.FindStructureSpot(opt.W, depth, y, e.layout.WindowFootprints(), e.layout.Bounds())
	if !ok {
		return model.Window{}, e.reject(refError(OpAddWindow, KindWindow, id, ErrNoSpace))
	}

	win := opt.NewWindow(x, y, depth)
	e.layout.Windows = append(e.layout.Windows, win)
	e.commit(OpAddWindow, "kind", KindWindow, "ref", id, "index", len(e.layout.Windows)-1, "x", x, "y", y)
	return win, nil
}

// RemoveItem deletes the item at index i.
func (e *Engine) RemoveItem(i int) error {
	defer e.lock()()

	if i < 0 || i >= len(e.layout.Items) {
		return e.reject(indexError(OpRemoveItem, KindItem, i, ErrUnknownReference))
	}
	e.layout.Items = slices.Delete(e.layout.Items, i, i+1)
	e.commit(OpRemoveItem, "kind", KindItem, "index", i)
	return nil
}

// RemoveStructure deletes the wall or window at index i. Removing a wall
// repairs the selected wall index.
func (e *Engine) RemoveStructure(kind StructureKind, i int) error {
	defer e.lock()()

	switch kind {
	case StructureWall:
		if i < 0 || i >= len(e.layout.Walls) {
			return e.reject(indexError(OpRemoveStructure, KindWall, i, ErrUnknownReference))
		}
		e.layout.Walls = slices.Delete(e.layout.Walls, i, i+1)
		e.layout.SelectedWall = repairSelection(e.layout.SelectedWall, i)
		e.drag = nil
	case StructureWindow:
		if i < 0 || i >= len(e.layout.Windows) {
			return e.reject(indexError(OpRemoveStructure, KindWindow, i, ErrUnknownReference))
		}
		e.layout.Windows = slices.Delete(e.layout.Windows, i, i+1)
	default:
		return e.reject(refError(OpRemoveStructure, KindStructure, string(kind), ErrUnknownReference))
	}
	e.commit(OpRemoveStructure, "kind", string(kind), "index", i)
	return nil
}

// repairSelection adjusts a selected index after the entry at removed is
// deleted from the list.
func repairSelection(sel *int, removed int) *int {
	if sel == nil {
		return nil
	}
	switch j := *sel; {
	case j == removed:
		return nil
	case j > removed:
		j--
		return &j
	default:
		return &j
	}
}

// SetEditingWalls switches wall edit mode. Leaving edit mode clears the
// selection.
func (e *Engine) SetEditingWalls(on bool) {
	defer e.lock()()

	e.layout.EditingWalls = on
	if !on {
		e.layout.SelectedWall = nil
	}
	e.drag = nil
	e.commit(OpSetEditingWalls, "editing", on)
}

// SelectWall selects the wall at *i, or clears the selection when i is nil.
func (e *Engine) SelectWall(i *int) error {
	defer e.lock()()

	if i == nil {
		e.layout.SelectedWall = nil
		e.drag = nil
		e.commit(OpSelectWall, "index", nil)
		return nil
	}
	idx := *i
	if idx < 0 || idx >= len(e.layout.Walls) {
		return e.reject(indexError(OpSelectWall, KindWall, idx, ErrUnknownReference))
	}
	e.layout.SelectedWall = &idx
	e.drag = nil
	e.commit(OpSelectWall, "index", idx)
	return nil
}

// ToggleWallEdit is the per-wall edit button: it enters edit mode with wall i
// selected, or leaves edit mode when wall i is already the one being edited.
func (e *Engine) ToggleWallEdit(i int) error {
	defer e.lock()()

	if i < 0 || i >= len(e.layout.Walls) {
		return e.reject(indexError(OpToggleWallEdit, KindWall, i, ErrUnknownReference))
	}
	sel := e.layout.SelectedWall
	if e.layout.EditingWalls && sel != nil && *sel == i {
		e.layout.EditingWalls = false
		e.layout.SelectedWall = nil
	} else {
		idx := i
		e.layout.EditingWalls = true
		e.layout.SelectedWall = &idx
	}
	e.drag = nil
	e.commit(OpToggleWallEdit, "index", i, "editing", e.layout.EditingWalls)
	return nil
}

// NudgeWall applies one discrete edit to the selected wall. The change is
// validated as a whole and committed only if the result is in bounds and
// overlaps no other wall.
func (e *Engine) NudgeWall(op engine.NudgeOp) (model.Wall, error) {
	defer e.lock()()

	idx, err := e.selectedWall(OpNudgeWall)
	if err != nil {
		return model.Wall{}, e.reject(err)
	}
	candidate, nerr := engine.ApplyNudge(e.layout.Walls[idx], op)
	if nerr != nil {
		return model.Wall{}, e.reject(&OpError{Op: OpNudgeWall, Kind: KindNudge, Index: idx, Ref: string(op), Err: ErrUnknownReference})
	}
	if !engine.ValidateWall(candidate, engine.OtherWalls(e.layout.Walls, idx), e.layout.Bounds()) {
		return model.Wall{}, e.reject(&OpError{Op: OpNudgeWall, Kind: KindWall, Index: idx, Ref: string(op), Err: ErrPlacementBlocked})
	}

	e.layout.Walls[idx] = candidate
	e.drag = nil
	e.commit(OpNudgeWall, "index", idx, "nudge", string(op), "x", candidate.X, "y", candidate.Y,
		"length", candidate.Length, "orientation", string(candidate.Orientation))
	return candidate, nil
}

// DragWallContinuous feeds one pointer position of an interactive drag of the
// selected wall and returns the position to present. The layout is not
// changed until CommitWallDrag.
func (e *Engine) DragWallContinuous(p model.Point) (model.Point, error) {
	defer e.lock()()

	idx, err := e.selectedWall(OpDragWall)
	if err != nil {
		return model.Point{}, e.reject(err)
	}
	pos := e.dragSession(idx).Move(p)
	e.observe(OpDragWall, nil)
	e.logger.Debug("wall drag update", "op", OpDragWall, "index", idx, "x", pos.X, "y", pos.Y)
	return pos, nil
}

// DragPosition returns the last valid position of the active drag, if any.
// A drag ends on commit and on every accepted mutation.
func (e *Engine) DragPosition() (model.Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return model.Point{}, false
	}
	return e.drag.LastValid(), true
}

// CommitWallDrag ends the drag of the selected wall at p. The final position
// is snapped to the grid and re-validated; when the snap is blocked the last
// valid continuous position is committed instead.
func (e *Engine) CommitWallDrag(p model.Point) (model.Wall, error) {
	defer e.lock()()

	idx, err := e.selectedWall(OpCommitWallDrag)
	if err != nil {
		return model.Wall{}, e.reject(err)
	}
	session := e.dragSession(idx)
	e.drag = nil
	session.Move(p)
	final, ok := session.Release()
	if !ok {
		return model.Wall{}, e.reject(indexError(OpCommitWallDrag, KindWall, idx, ErrPlacementBlocked))
	}

	wall := session.Candidate(final)
	e.layout.Walls[idx] = wall
	moves, rejected := session.Stats()
	e.commit(OpCommitWallDrag, "index", idx, "x", wall.X, "y", wall.Y, "moves", moves, "rolled_back", rejected)
	return wall, nil
}

// ApplyWallMoved handles the drag-release event sent back by a view. The
// position is rounded to the grid and validated like a nudge. Events for a
// wall that no longer exists, or whose index now holds another wall, are
// ignored.
func (e *Engine) ApplyWallMoved(ev WallMoved) (model.Wall, error) {
	defer e.lock()()

	if ev.Index < 0 || ev.Index >= len(e.layout.Walls) || e.layout.Walls[ev.Index].ID != ev.WallID {
		e.logger.Debug("stale wall moved event ignored", "op", OpWallMoved, "index", ev.Index, "wall_id", ev.WallID)
		return model.Wall{}, nil
	}
	if !e.layout.EditingWalls {
		return model.Wall{}, e.reject(indexError(OpWallMoved, KindWall, ev.Index, ErrPrecondition))
	}
	candidate := e.layout.Walls[ev.Index]
	candidate.X = math.Round(ev.X)
	candidate.Y = math.Round(ev.Y)
	if !engine.ValidateWall(candidate, engine.OtherWalls(e.layout.Walls, ev.Index), e.layout.Bounds()) {
		return model.Wall{}, e.reject(indexError(OpWallMoved, KindWall, ev.Index, ErrPlacementBlocked))
	}

	e.layout.Walls[ev.Index] = candidate
	e.drag = nil
	e.commit(OpWallMoved, "index", ev.Index, "x", candidate.X, "y", candidate.Y)
	return candidate, nil
}

// SetContainerSize switches the container and clears the layout.
func (e *Engine) SetContainerSize(id string) error {
	defer e.lock()()

	size, ok := e.catalog.FindContainerSize(id)
	if !ok {
		return e.reject(refError(OpSetContainerSize, KindContainer, id, ErrUnknownReference))
	}
	e.layout.Container = size.Container()
	e.layout.Reset()
	e.drag = nil
	e.commit(OpSetContainerSize, "ref", id, "length", size.LengthUnits, "width", size.WidthUnits)
	return nil
}

// SetInsulation switches the insulation and clears the layout.
func (e *Engine) SetInsulation(id string) error {
	defer e.lock()()

	opt, ok := e.catalog.FindInsulation(id)
	if !ok {
		return e.reject(refError(OpSetInsulation, KindInsulation, id, ErrUnknownReference))
	}
	e.layout.Insulation = opt.Insulation()
	e.layout.Reset()
	e.drag = nil
	e.commit(OpSetInsulation, "ref", id, "thickness", opt.Thickness)
	return nil
}

// selectedWall checks the wall edit preconditions and returns the selected
// index.
func (e *Engine) selectedWall(op string) (int, *OpError) {
	if !e.layout.EditingWalls {
		return 0, &OpError{Op: op, Kind: KindWall, Index: -1, Err: fmt.Errorf("%w: not editing walls", ErrPrecondition)}
	}
	if e.layout.SelectedWall == nil {
		return 0, &OpError{Op: op, Kind: KindWall, Index: -1, Err: fmt.Errorf("%w: no wall selected", ErrPrecondition)}
	}
	idx := *e.layout.SelectedWall
	if idx < 0 || idx >= len(e.layout.Walls) {
		return 0, indexError(op, KindWall, idx, ErrUnknownReference)
	}
	return idx, nil
}

// dragSession returns the active drag of wall idx, starting a new one when
// none is active.
func (e *Engine) dragSession(idx int) *engine.DragSession {
	if e.drag == nil || e.drag.Index() != idx {
		e.drag = engine.NewDragSession(idx, e.layout.Walls[idx],
			engine.OtherWalls(e.layout.Walls, idx), e.layout.Bounds())
	}
	return e.drag
}

// lock acquires the Engine and returns the function that releases it and
// then publishes the snapshot produced by a successful mutation, if any.
func (e *Engine) lock() func() {
	e.mu.Lock()
	return func() {
		out := e.outbox
		e.outbox = nil
		e.mu.Unlock()
		if out != nil {
			e.hub.Publish(*out)
		}
	}
}

// commit records a successful mutation. Must be called with e.mu held.
func (e *Engine) commit(op string, attrs ...any) {
	e.version++
	snap := newSnapshot(e.version, e.layout)
	e.outbox = &snap
	e.logger.Info("layout updated", append([]any{"op", op, "version", e.version, "total", snap.Totals.Total}, attrs...)...)
	e.observe(op, nil)
}

// reject logs and reports a rejected operation. Must be called with e.mu held.
func (e *Engine) reject(err *OpError) error {
	e.logger.Debug("operation rejected",
		"op", err.Op,
		"kind", err.Kind,
		"index", err.Index,
		"ref", err.Ref,
		"error", err.Err.Error(),
	)
	e.observe(err.Op, err)
	return err
}

func (e *Engine) observe(op string, err error) {
	for _, o := range e.observers {
		o.ObserveOp(op, err)
	}
}
