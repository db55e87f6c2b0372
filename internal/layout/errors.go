package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Rejection causes. Every rejected operation returns an *OpError wrapping one
// of these and leaves the layout untouched.
var (
	ErrNoSpace          = errors.New("no space available")
	ErrPlacementBlocked = errors.New("placement blocked")
	ErrPrecondition     = errors.New("precondition failed")
	ErrUnknownReference = errors.New("unknown reference")
)

// Entity kinds named in errors and logs.
const (
	KindItem       = "item"
	KindWall       = "wall"
	KindWindow     = "window"
	KindContainer  = "container size"
	KindInsulation = "insulation"
	KindNudge      = "nudge operation"
	KindStructure  = "structure kind"
)

// OpError describes a rejected Engine operation.
type OpError struct {
	Op    string // Engine operation, e.g. "add_item"
	Kind  string // Entity kind the operation addressed
	Index int    // List index, -1 when the operation is not index-addressed
	Ref   string // Catalog or option id, empty when not applicable
	Err   error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Kind != "" {
		b.WriteString(" ")
		b.WriteString(e.Kind)
	}
	if e.Ref != "" {
		fmt.Fprintf(&b, " %q", e.Ref)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " #%d", e.Index)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

func refError(op, kind, ref string, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Index: -1, Ref: ref, Err: err}
}

func indexError(op, kind string, index int, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Index: index, Err: err}
}

// ErrorCode maps an operation result onto a short stable label for logs and
// metrics.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoSpace):
		return "no_space"
	case errors.Is(err, ErrPlacementBlocked):
		return "placement_blocked"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrUnknownReference):
		return "unknown_reference"
	default:
		return "error"
	}
}
