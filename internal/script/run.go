package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/ContainerPlan/internal/engine"
	"github.com/piwi3910/ContainerPlan/internal/layout"
	"github.com/piwi3910/ContainerPlan/internal/model"
)

// Result is the outcome of one executed command.
type Result struct {
	Command Command
	Detail  string // human-readable effect of an accepted command
	Err     error  // rejection returned by the Engine
}

// Code returns the result label of the outcome, e.g. "ok" or "no_space".
func (r Result) Code() string { return layout.ErrorCode(r.Err) }

// Runner executes parsed commands against an Engine.
type Runner struct {
	engine      *layout.Engine
	stopOnError bool
}

// NewRunner returns a Runner for e. With stopOnError set, Run stops at the
// first rejected command.
func NewRunner(e *layout.Engine, stopOnError bool) *Runner {
	return &Runner{engine: e, stopOnError: stopOnError}
}

// Run executes cmds in order. Rejections are recorded in the results; the
// returned error is non-nil only when the runner stopped early.
func (r *Runner) Run(cmds []Command) ([]Result, error) {
	results := make([]Result, 0, len(cmds))
	for _, c := range cmds {
		res := r.Exec(c)
		results = append(results, res)
		if res.Err != nil && r.stopOnError {
			return results, fmt.Errorf("line %d: %s: %w", c.Line, c, res.Err)
		}
	}
	return results, nil
}

// Exec executes a single command.
func (r *Runner) Exec(c Command) Result {
	detail, err := r.exec(c)
	return Result{Command: c, Detail: detail, Err: err}
}

func (r *Runner) exec(c Command) (string, error) {
	e := r.engine
	switch c.Name {
	case "size":
		return "container " + c.Args[0], e.SetContainerSize(c.Args[0])
	case "insulation":
		return "insulation " + c.Args[0], e.SetInsulation(c.Args[0])
	case "item":
		it, err := e.AddItem(c.Args[0])
		return fmt.Sprintf("%s at (%g, %g)", it.Name, it.X, it.Y), err
	case "wall":
		w, err := e.AddWall(c.Args[0])
		return fmt.Sprintf("%s at (%g, %g)", w.Name, w.X, w.Y), err
	case "window":
		w, err := e.AddWindow(c.Args[0])
		return fmt.Sprintf("%s at (%g, %g)", w.Name, w.X, w.Y), err
	case "edit":
		on, _ := parseSwitch(c.Args[0])
		e.SetEditingWalls(on)
		return fmt.Sprintf("editing walls: %t", on), nil
	case "select":
		if strings.ToLower(c.Args[0]) == "none" {
			return "selection cleared", e.SelectWall(nil)
		}
		idx, _ := strconv.Atoi(c.Args[0])
		return fmt.Sprintf("wall #%d selected", idx), e.SelectWall(&idx)
	case "toggle":
		idx, _ := strconv.Atoi(c.Args[0])
		return fmt.Sprintf("wall #%d edit toggled", idx), e.ToggleWallEdit(idx)
	case "nudge":
		op, _ := engine.ParseNudgeOp(c.Args[0])
		w, err := e.NudgeWall(op)
		return describeWall(w), err
	case "drag":
		p, _ := parsePoint(c.Args)
		pos, err := e.DragWallContinuous(p)
		return fmt.Sprintf("presented at (%g, %g)", pos.X, pos.Y), err
	case "release":
		p, err := r.releasePoint(c.Args)
		if err != nil {
			return "", err
		}
		w, err := e.CommitWallDrag(p)
		return describeWall(w), err
	case "moved":
		idx, _ := strconv.Atoi(c.Args[0])
		p, _ := parsePoint(c.Args[1:])
		w, err := e.ApplyWallMoved(layout.WallMoved{Index: idx, WallID: r.wallID(idx), X: p.X, Y: p.Y})
		if err == nil && w.ID == "" {
			return fmt.Sprintf("stale wall #%d ignored", idx), nil
		}
		return describeWall(w), err
	case "remove":
		idx, _ := strconv.Atoi(c.Args[1])
		switch strings.ToLower(c.Args[0]) {
		case "item":
			return fmt.Sprintf("item #%d removed", idx), e.RemoveItem(idx)
		case "wall":
			return fmt.Sprintf("wall #%d removed", idx), e.RemoveStructure(layout.StructureWall, idx)
		default:
			return fmt.Sprintf("window #%d removed", idx), e.RemoveStructure(layout.StructureWindow, idx)
		}
	}
	return "", fmt.Errorf("line %d: %w: unknown command %q", c.Line, ErrSyntax, c.Name)
}

// releasePoint returns the explicit release position. Without one it is the
// last valid position of the active drag, or the selected wall's current
// position when no drag is active.
func (r *Runner) releasePoint(args []string) (model.Point, error) {
	if len(args) == 2 {
		return parsePoint(args)
	}
	if p, ok := r.engine.DragPosition(); ok {
		return p, nil
	}
	snap := r.engine.Snapshot()
	sel := snap.Layout.SelectedWall
	if sel == nil || *sel < 0 || *sel >= len(snap.Layout.Walls) {
		// Let the Engine report the precondition.
		return model.Point{}, nil
	}
	w := snap.Layout.Walls[*sel]
	return model.Point{X: w.X, Y: w.Y}, nil
}

func describeWall(w model.Wall) string {
	return fmt.Sprintf("%s at (%g, %g) length %g orientation %s", w.Name, w.X, w.Y, w.Length, w.Orientation)
}

// wallID returns the ID of the wall currently at index i, or "" when there
// is none.
func (r *Runner) wallID(i int) string {
	walls := r.engine.Snapshot().Layout.Walls
	if i < 0 || i >= len(walls) {
		return ""
	}
	return walls[i].ID
}
