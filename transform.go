package latex

import (
	"errors"
	"fmt"
	"strings"
)

// Transform applies fn to every text node of a marked document which is left for the transformation. Text nodes made
// of placeholders only, arguments of reference commands and arguments of \begin{name} are skipped.
func (m *Marker) Transform(root *Node, fn func(string) (string, error)) error {
	if root == nil {
		return errors.New("nothing to transform: document is nil")
	}

	return m.transform(root, fn)
}

func (m *Marker) transform(n *Node, fn func(string) (string, error)) error {
	if n.Kind == CommandKind && m.rules.reference[n.Data] {
		return nil
	}

	if n.Kind == TextKind {
		if m.isPlaceholder(n.Data) {
			return nil
		}

		data, err := fn(n.Data)
		if err != nil {
			return fmt.Errorf("unable to transform text %q: %w", n.Data, err)
		}

		n.Data = data
		return nil
	}

	for _, child := range n.Children {
		// column specs, options and keys of environments
		if n.Kind == EnvironmentKind && child.Kind == ArgumentKind {
			continue
		}

		if err := m.transform(child, fn); err != nil {
			return err
		}
	}

	return nil
}

// isPlaceholder reports if text has nothing but placeholders and whitespaces
func (m *Marker) isPlaceholder(text string) bool {
	rest := m.store.formatter.Pattern().ReplaceAllString(text, "")
	return strings.TrimSpace(rest) == ""
}
