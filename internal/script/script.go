// Package script drives a layout Engine from a line-oriented plan file.
//
// Each non-empty line holds one command and its arguments separated by
// whitespace. A '#' starts a comment that runs to the end of the line.
//
//	size 40ft
//	insulation foam
//	item desk
//	wall steel
//	window fixed
//	edit on|off
//	select N|none
//	toggle N
//	nudge left|right|up|down|rotate|grow|shrink
//	drag X Y
//	release [X Y]
//	moved N X Y
//	remove item|wall|window N
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/piwi3910/ContainerPlan/internal/engine"
	"github.com/piwi3910/ContainerPlan/internal/model"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("syntax error")

// Command is one parsed script line.
type Command struct {
	Line int
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// arity lists the accepted argument counts per command.
var arity = map[string][]int{
	"size":       {1},
	"insulation": {1},
	"item":       {1},
	"wall":       {1},
	"window":     {1},
	"edit":       {1},
	"select":     {1},
	"toggle":     {1},
	"nudge":      {1},
	"drag":       {2},
	"release":    {0, 2},
	"moved":      {3},
	"remove":     {2},
}

// Parse reads a whole script. Unknown commands, wrong argument counts and
// malformed numbers are reported with their line number.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd := Command{Line: line, Name: strings.ToLower(fields[0]), Args: fields[1:]}
		if err := check(cmd); err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}

// ParseString is Parse over an in-memory script.
func ParseString(s string) ([]Command, error) {
	return Parse(strings.NewReader(s))
}

func check(c Command) error {
	counts, ok := arity[c.Name]
	if !ok {
		return syntaxError(c, "unknown command %q", c.Name)
	}
	valid := false
	for _, n := range counts {
		if len(c.Args) == n {
			valid = true
		}
	}
	if !valid {
		return syntaxError(c, "%s takes %s argument(s), got %d", c.Name, joinCounts(counts), len(c.Args))
	}

	switch c.Name {
	case "edit":
		if _, err := parseSwitch(c.Args[0]); err != nil {
			return syntaxError(c, "%v", err)
		}
	case "select":
		if strings.ToLower(c.Args[0]) != "none" {
			if _, err := strconv.Atoi(c.Args[0]); err != nil {
				return syntaxError(c, "invalid wall index %q", c.Args[0])
			}
		}
	case "toggle":
		if _, err := strconv.Atoi(c.Args[0]); err != nil {
			return syntaxError(c, "invalid wall index %q", c.Args[0])
		}
	case "nudge":
		if _, err := engine.ParseNudgeOp(c.Args[0]); err != nil {
			return syntaxError(c, "%v", err)
		}
	case "drag", "release":
		if _, err := parsePoint(c.Args); err != nil {
			return syntaxError(c, "%v", err)
		}
	case "moved":
		if _, err := strconv.Atoi(c.Args[0]); err != nil {
			return syntaxError(c, "invalid wall index %q", c.Args[0])
		}
		if _, err := parsePoint(c.Args[1:]); err != nil {
			return syntaxError(c, "%v", err)
		}
	case "remove":
		switch strings.ToLower(c.Args[0]) {
		case "item", "wall", "window":
		default:
			return syntaxError(c, "cannot remove %q", c.Args[0])
		}
		if _, err := strconv.Atoi(c.Args[1]); err != nil {
			return syntaxError(c, "invalid index %q", c.Args[1])
		}
	}
	return nil
}

func syntaxError(c Command, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", c.Line, ErrSyntax, fmt.Sprintf(format, args...))
}

func joinCounts(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " or ")
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func parsePoint(args []string) (model.Point, error) {
	if len(args) == 0 {
		return model.Point{}, nil
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid x %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid y %q", args[1])
	}
	return model.Point{X: x, Y: y}, nil
}
