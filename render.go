package latex

import (
	"fmt"
	"io"
	"strings"
)

// Render writes node back as LaTeX source. Parsed documents render exactly as they were read, except for whitespace
// inside \begin{...} and \end{...}.
func Render(w io.Writer, node *Node) error {
	return render(w, node)
}

// RenderString renders nodes into a string
func RenderString(nodes ...*Node) (string, error) {
	var b strings.Builder
	for _, node := range nodes {
		if err := render(&b, node); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func render(w io.Writer, node *Node) error {
	switch node.Kind {
	case DocumentKind:
		return renderChildren(w, node)
	case TextKind:
		_, err := fmt.Fprint(w, node.Data)
		return err
	case CommentKind:
		_, err := fmt.Fprint(w, "%", node.Data)
		return err
	case GroupKind:
		return renderWrapped(w, node, "{", "}")
	case ArgumentKind, MathKind:
		end, ok := closings[node.Data]
		if !ok {
			return fmt.Errorf("unable to render %v with unknown delimiter %q", node.Kind, node.Data)
		}

		return renderWrapped(w, node, node.Data, end)
	case CommandKind:
		return renderWrapped(w, node, "\\"+node.Data, "")
	case EnvironmentKind:
		return renderWrapped(w, node, "\\begin{"+node.Data+"}", "\\end{"+node.Data+"}")
	default:
		return fmt.Errorf("unable to render node of %v", node.Kind)
	}
}

func renderChildren(w io.Writer, node *Node) error {
	for _, child := range node.Children {
		if err := render(w, child); err != nil {
			return err
		}
	}

	return nil
}

// renderWrapped renders children of the node between prefix and suffix
func renderWrapped(w io.Writer, node *Node, prefix, suffix string) error {
	if _, err := fmt.Fprint(w, prefix); err != nil {
		return err
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, suffix); err != nil {
		return err
	}

	return nil
}
