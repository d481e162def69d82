// Package editor implements the command layer behind scene editing: a closed
// set of mutating commands where every application yields its inverse, and an
// undo manager built on top of that pairing. There is no UI here; callers
// dispatch commands and the manager keeps the history honest.
package editor

import (
	"errors"
	"fmt"

	"github.com/duskglow/loupe/engine/scene"
)

// ErrUnknownNode is returned when a command targets a node identity that is
// not resident in the scene.
var ErrUnknownNode = errors.New("editor: unknown node")

// Axis selects which component of a vector-valued transform field a command
// mutates.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Command is one mutation of the resident scene. Applying a command returns
// the command that undoes it. The set of commands is closed; external
// packages cannot add members.
type Command interface {
	// Apply performs the mutation and returns its inverse.
	//
	// Parameters:
	//   - s: the resident imported scene
	//
	// Returns:
	//   - Command: the inverse command, which restores the prior value
	//   - error: ErrUnknownNode if the target node is not resident
	Apply(s *scene.ImportedScene) (Command, error)

	isCommand()
}

// SetNodePosition sets one component of a node's local translation.
type SetNodePosition struct {
	Node  scene.NodeID
	Axis  Axis
	Value float32
}

// SetNodeScale sets one component of a node's local scale.
type SetNodeScale struct {
	Node  scene.NodeID
	Axis  Axis
	Value float32
}

var (
	_ Command = SetNodePosition{}
	_ Command = SetNodeScale{}
)

func (SetNodePosition) isCommand() {}
func (SetNodeScale) isCommand()    {}

func (c SetNodePosition) Apply(s *scene.ImportedScene) (Command, error) {
	node, ok := s.Nodes[c.Node]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, c.Node)
	}
	inverse := SetNodePosition{Node: c.Node, Axis: c.Axis, Value: node.Transform.Position[int(c.Axis)]}
	node.Transform.Position[int(c.Axis)] = c.Value
	return inverse, nil
}

func (c SetNodeScale) Apply(s *scene.ImportedScene) (Command, error) {
	node, ok := s.Nodes[c.Node]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, c.Node)
	}
	inverse := SetNodeScale{Node: c.Node, Axis: c.Axis, Value: node.Transform.Scale[int(c.Axis)]}
	node.Transform.Scale[int(c.Axis)] = c.Value
	return inverse, nil
}
