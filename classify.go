package latex

import "fmt"

// Class tells how the marker treats a node
type Class int

const (
	LeafClass        Class = iota // node without children
	EnvironmentClass              // named environment with children
	CommandClass                  // command with arguments
	MathClass                     // math region or math environment with children
	GenericClass                  // any other container: document, group, argument
)

func (c Class) String() string {
	switch c {
	case LeafClass:
		return "leaf"
	case EnvironmentClass:
		return "environment"
	case CommandClass:
		return "command"
	case MathClass:
		return "math"
	case GenericClass:
		return "generic"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// classify puts a node into one of the classes. Text fragments count as children, so math region with plain text
// only is still a math region. Math environments (equation, pmatrix etc) are math regions as well. Node kinds without
// special treatment fall into GenericClass.
func (r *rules) classify(n *Node) Class {
	if len(n.Children) == 0 {
		return LeafClass
	}

	switch n.Kind {
	case MathKind:
		if r.math[n.Data] {
			return MathClass
		}

		return GenericClass
	case EnvironmentKind:
		if r.mathEnv[n.Data] {
			return MathClass
		}

		return EnvironmentClass
	case CommandKind:
		return CommandClass
	default:
		return GenericClass
	}
}

// isTextCommand reports if node is a command from the text commands list, eg. \text{...} inside math
func (r *rules) isTextCommand(n *Node) bool {
	return n.Kind == CommandKind && r.text[n.Data]
}

// hasTextCommand reports if any descendant of the node is a text command
func (r *rules) hasTextCommand(n *Node) bool {
	for _, child := range n.Children {
		if r.isTextCommand(child) || r.hasTextCommand(child) {
			return true
		}
	}

	return false
}
