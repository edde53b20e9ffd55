package latex

import "fmt"

type Kind int

const (
	TextKind Kind = iota
	DocumentKind
	GroupKind
	ArgumentKind
	CommandKind
	EnvironmentKind
	MathKind
	CommentKind
)

var kindNames = map[Kind]string{
	TextKind:        "text",
	DocumentKind:    "document",
	GroupKind:       "group",
	ArgumentKind:    "argument",
	CommandKind:     "command",
	EnvironmentKind: "environment",
	MathKind:        "math",
	CommentKind:     "comment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown node kind %d", int(k))
	}

	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown node kind %q", string(text))
}

// Node is an element of a document tree.
//
// Data holds the text of a TextKind or CommentKind node, the name of a command or environment (without backslash),
// the opening delimiter of math ($, $$, \( or \[) and the opening bracket of an argument ({ or [).
type Node struct {
	Kind     Kind    `json:"kind"`
	Data     string  `json:"data,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{Kind: n.Kind, Data: n.Data}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}

	return c
}
