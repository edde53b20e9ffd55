package latex

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Unmarker puts values captured by a Marker back in place of placeholders.
type Unmarker struct {
	store *Store
	log   *zap.Logger
}

func NewUnmarker(store *Store, opts ...Option) *Unmarker {
	return &Unmarker{store: store, log: newOptions(opts).log}
}

// Unmarker returns unmarker working with the same store as the marker
func (m *Marker) Unmarker() *Unmarker {
	return &Unmarker{store: m.store, log: m.log}
}

// Unmark restores masked names and content of the document in place. Every placeholder found in text is expected
// to be produced by the marker, Mark refuses documents which text already looks like a placeholder.
func (u *Unmarker) Unmark(root *Node) error {
	if root == nil {
		return errors.New("nothing to unmark: document is nil")
	}

	if err := u.unmark(root); err != nil {
		return err
	}

	u.log.Debug("document unmarked", zap.Int("counter", u.store.Counter()))

	return nil
}

func (u *Unmarker) unmark(n *Node) error {
	if n.Kind == CommandKind || n.Kind == EnvironmentKind {
		if id, ok := u.store.formatter.Parse(n.Data); ok {
			c, err := u.resolve(id, IdentityCapture)
			if err != nil {
				return err
			}

			n.Data = c.Identity
		}
	}

	if len(n.Children) == 0 {
		return nil
	}

	children := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Kind != TextKind {
			if err := u.unmark(child); err != nil {
				return err
			}

			children = append(children, child)
			continue
		}

		expanded, err := u.expand(child)
		if err != nil {
			return err
		}

		children = append(children, expanded...)
	}

	n.Children = children

	return nil
}

// expand replaces content placeholders found in a text node with the captured nodes
func (u *Unmarker) expand(text *Node) ([]*Node, error) {
	matches := u.store.formatter.Pattern().FindAllStringSubmatchIndex(text.Data, -1)
	if len(matches) == 0 {
		return []*Node{text}, nil
	}

	// captured nodes are inserted as is, surrounding text gets new nodes
	var nodes []*Node
	appendText := func(data string) {
		if data != "" {
			nodes = append(nodes, &Node{Kind: TextKind, Data: data})
		}
	}

	last := 0
	for _, match := range matches {
		appendText(text.Data[last:match[0]])
		last = match[1]

		id, err := strconv.Atoi(text.Data[match[2]:match[3]])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlaceholder, text.Data[match[0]:match[1]])
		}

		c, err := u.resolve(id, ContentCapture)
		if err != nil {
			return nil, err
		}

		for _, node := range c.Content {
			if err := u.unmark(node); err != nil {
				return nil, err
			}

			nodes = append(nodes, node)
		}
	}

	appendText(text.Data[last:])

	return nodes, nil
}

func (u *Unmarker) resolve(id int, kind CaptureKind) (Capture, error) {
	c, err := u.store.Resolve(id)
	if err != nil {
		return Capture{}, err
	}

	if c.Kind != kind {
		return Capture{}, fmt.Errorf("%w: %s holds %v, but found in place of %v", ErrCaptureMismatch, u.store.formatter.Format(id), c.Kind, kind)
	}

	return c, nil
}

// Restore replaces placeholders in a rendered document: names are put back as is and content is rendered.
// Placeholders missing in the text are logged.
func (u *Unmarker) Restore(text string) (string, error) {
	for _, id := range u.Missing(text) {
		u.log.Warn("placeholder is missing or altered", zap.String("placeholder", u.store.formatter.Format(id)))
	}

	return u.replace(text)
}

func (u *Unmarker) replace(text string) (string, error) {
	var failure error
	restored := u.store.formatter.Pattern().ReplaceAllStringFunc(text, func(token string) string {
		if failure != nil {
			return token
		}

		value, err := u.restore(token)
		if err != nil {
			failure = err
			return token
		}

		return value
	})

	if failure != nil {
		return "", failure
	}

	return restored, nil
}

func (u *Unmarker) restore(token string) (string, error) {
	id, ok := u.store.formatter.Parse(token)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPlaceholder, token)
	}

	c, err := u.store.Resolve(id)
	if err != nil {
		return "", err
	}

	if c.Kind == IdentityCapture {
		return c.Identity, nil
	}

	value, err := RenderString(c.Content...)
	if err != nil {
		return "", fmt.Errorf("unable to render content of %s: %w", token, err)
	}

	return u.replace(value)
}

// Missing returns numbers of captured placeholders which do not appear in the text
func (u *Unmarker) Missing(text string) (missing []int) {
	found := map[int]bool{}
	for _, match := range u.store.formatter.Pattern().FindAllStringSubmatch(text, -1) {
		if id, err := strconv.Atoi(match[1]); err == nil {
			found[id] = true
		}
	}

	for _, c := range u.store.Entries() {
		if !found[c.ID] {
			missing = append(missing, c.ID)
		}
	}

	return
}
