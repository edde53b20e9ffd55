package latex_test

import (
	"testing"

	"github.com/eolymp/go-latex-mask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarker_Classify(t *testing.T) {
	text := func(t string) *latex.Node {
		return &latex.Node{Kind: latex.TextKind, Data: t}
	}

	node := func(kind latex.Kind, data string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: kind, Data: data, Children: children}
	}

	cfg := latex.DefaultConfig()
	cfg.MathDelimiters = []string{"$", "$$"}

	m, err := latex.NewMarker(cfg)
	require.NoError(t, err)

	tt := []struct {
		name  string
		node  *latex.Node
		class latex.Class
	}{
		{name: "text", node: text("x"), class: latex.LeafClass},
		{name: "comment", node: node(latex.CommentKind, " note"), class: latex.LeafClass},
		{name: "command without arguments", node: node(latex.CommandKind, "alpha"), class: latex.LeafClass},
		{name: "empty environment", node: node(latex.EnvironmentKind, "center"), class: latex.LeafClass},
		{name: "empty math", node: node(latex.MathKind, "$"), class: latex.LeafClass},
		{name: "command", node: node(latex.CommandKind, "textbf", node(latex.ArgumentKind, "{", text("x"))), class: latex.CommandClass},
		{name: "environment", node: node(latex.EnvironmentKind, "definition", text("x")), class: latex.EnvironmentClass},
		{name: "equation", node: node(latex.EnvironmentKind, "equation", text("x")), class: latex.MathClass},
		{name: "align with star", node: node(latex.EnvironmentKind, "align*", text("x")), class: latex.MathClass},
		{name: "empty equation", node: node(latex.EnvironmentKind, "equation"), class: latex.LeafClass},
		{name: "math with text only", node: node(latex.MathKind, "$", text("x")), class: latex.MathClass},
		{name: "display math", node: node(latex.MathKind, "$$", node(latex.CommandKind, "alpha")), class: latex.MathClass},
		{name: "math with unconfigured delimiter", node: node(latex.MathKind, "\\[", text("x")), class: latex.GenericClass},
		{name: "document", node: node(latex.DocumentKind, "", text("x")), class: latex.GenericClass},
		{name: "group", node: node(latex.GroupKind, "", text("x")), class: latex.GenericClass},
		{name: "argument", node: node(latex.ArgumentKind, "{", text("x")), class: latex.GenericClass},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.class, m.Classify(tc.node), "got %v", m.Classify(tc.node))
		})
	}
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "leaf", latex.LeafClass.String())
	assert.Equal(t, "math", latex.MathClass.String())
	assert.Equal(t, "class(42)", latex.Class(42).String())
}
