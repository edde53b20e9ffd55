package latex

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrPlaceholderConflict means the document text already has a string looking like a placeholder, so it could not be
// told apart from masked content later. Use a different placeholder format for such documents.
var ErrPlaceholderConflict = errors.New("document already contains placeholder")

type options struct {
	log   *zap.Logger
	store *Store
}

type Option func(*options)

// WithLogger sets logger, by default nothing is logged
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithStore makes marker allocate placeholders in an existing store instead of a new one
func WithStore(store *Store) Option {
	return func(o *options) {
		o.store = store
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Marker replaces markup in a document tree with placeholders, so the tree can be passed to a transformation which
// understands plain prose only. Original names and content are kept in the store. Marker is not safe for
// concurrent use.
type Marker struct {
	rules *rules
	store *Store
	log   *zap.Logger
}

// NewMarker validates configuration and creates a marker with an empty store.
func NewMarker(cfg Config, opts ...Option) (*Marker, error) {
	r, err := cfg.compile()
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)

	store := o.store
	if store == nil {
		store = newStore(r.formatter)
	}

	return &Marker{rules: r, store: store, log: o.log}, nil
}

func (m *Marker) Store() *Store {
	return m.store
}

// Classify returns the class marker assigns to the node
func (m *Marker) Classify(n *Node) Class {
	return m.rules.classify(n)
}

// Partition returns runs of math region children which are masked together
func (m *Marker) Partition(children []*Node) []Range {
	return m.rules.partition(children)
}

// Mark masks the document in place
func (m *Marker) Mark(root *Node) error {
	if root == nil {
		return errors.New("nothing to mark: document is nil")
	}

	if token := m.conflict(root); token != "" {
		return fmt.Errorf("%w: %s", ErrPlaceholderConflict, token)
	}

	before := m.store.Counter()
	m.traverse(root)

	m.log.Debug("document marked",
		zap.Int("placeholders", m.store.Counter()-before),
		zap.Int("counter", m.store.Counter()))

	return nil
}

// conflict returns the first string in text or comments of the document which matches placeholder pattern
func (m *Marker) conflict(n *Node) string {
	if n.Kind == TextKind || n.Kind == CommentKind {
		return m.store.formatter.Pattern().FindString(n.Data)
	}

	for _, child := range n.Children {
		if token := m.conflict(child); token != "" {
			return token
		}
	}

	return ""
}

func (m *Marker) traverse(n *Node) {
	switch m.rules.classify(n) {
	case LeafClass:
		m.markName(n)
	case MathClass:
		m.markMath(n)
	default:
		if m.isOpaque(n) {
			m.markOpaque(n)
			return
		}

		// children go first, so names of nested constructs get smaller numbers
		for _, child := range n.Children {
			m.traverse(child)
		}

		m.markName(n)
	}
}

// isOpaque reports if the node content is hidden as a whole, reference commands are never hidden
func (m *Marker) isOpaque(n *Node) bool {
	switch n.Kind {
	case EnvironmentKind:
		return m.rules.opaque[n.Data]
	case CommandKind:
		return m.rules.opaque[n.Data] && !m.rules.reference[n.Data]
	default:
		return false
	}
}

// markOpaque masks content and then the name of an opaque node. Arguments of \begin{name} (eg. [language=Go] of
// lstlisting) stay visible, all arguments of a command are hidden.
func (m *Marker) markOpaque(n *Node) {
	start := 0
	if n.Kind == EnvironmentKind {
		for start < len(n.Children) && n.Children[start].Kind == ArgumentKind {
			start++
		}
	}

	if start < len(n.Children) {
		m.markContent(n, Range{Start: start, Stop: len(n.Children)})
	}

	m.markName(n)
}

// markMath masks math region as a whole, or runs between text commands if there are any. Name of a math
// environment is masked last.
func (m *Marker) markMath(n *Node) {
	defer m.markName(n)

	if !m.rules.hasTextCommand(n) {
		m.markContent(n, Range{Start: 0, Stop: len(n.Children)})
		return
	}

	// each masked range collapses into a single node, following ranges move to the left
	shift := 0
	for _, r := range m.rules.partition(n.Children) {
		m.markContent(n, Range{Start: r.Start - shift, Stop: r.Stop - shift})
		shift += r.Len() - 1
	}

	for _, child := range n.Children {
		m.traverse(child)
	}
}

// markName replaces name of an environment or a command with a placeholder, reference commands are kept
func (m *Marker) markName(n *Node) {
	switch n.Kind {
	case EnvironmentKind:
	case CommandKind:
		if m.rules.reference[n.Data] {
			return
		}
	default:
		return
	}

	id, token := m.store.Allocate()
	m.store.CaptureIdentity(id, n.Data)

	m.log.Debug("name masked",
		zap.Int("id", id),
		zap.Stringer("kind", n.Kind),
		zap.String("name", n.Data))

	n.Data = token
}

// markContent replaces children in range r with a single placeholder text node
func (m *Marker) markContent(n *Node, r Range) {
	captured := make([]*Node, r.Len())
	copy(captured, n.Children[r.Start:r.Stop])

	id, token := m.store.Allocate()
	m.store.CaptureContent(id, captured)

	m.log.Debug("content masked",
		zap.Int("id", id),
		zap.Stringer("kind", n.Kind),
		zap.Int("nodes", len(captured)))

	children := make([]*Node, 0, len(n.Children)-r.Len()+1)
	children = append(children, n.Children[:r.Start]...)
	children = append(children, &Node{Kind: TextKind, Data: token})
	children = append(children, n.Children[r.Stop:]...)

	n.Children = children
}
