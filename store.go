package latex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrCaptureMismatch    = errors.New("placeholder capture mismatch")
)

type CaptureKind int

const (
	IdentityCapture CaptureKind = iota + 1 // command or environment name
	ContentCapture                         // sequence of child nodes
)

func (k CaptureKind) String() string {
	switch k {
	case IdentityCapture:
		return "identity"
	case ContentCapture:
		return "content"
	default:
		return fmt.Sprintf("capture(%d)", int(k))
	}
}

func (k CaptureKind) MarshalText() ([]byte, error) {
	switch k {
	case IdentityCapture, ContentCapture:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown capture kind %d", int(k))
	}
}

func (k *CaptureKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "identity":
		*k = IdentityCapture
	case "content":
		*k = ContentCapture
	default:
		return fmt.Errorf("unknown capture kind %q", string(text))
	}

	return nil
}

// Capture is an original value hidden behind a placeholder
type Capture struct {
	ID       int         `json:"id"`
	Kind     CaptureKind `json:"kind"`
	Identity string      `json:"identity,omitempty"`
	Content  []*Node     `json:"content,omitempty"`
}

// Store allocates placeholders and keeps values they replace. Placeholder numbers start from 1 and are never reused.
type Store struct {
	formatter *Formatter
	counter   int
	captures  map[int]Capture
}

func NewStore(format string) (*Store, error) {
	formatter, err := NewFormatter(format)
	if err != nil {
		return nil, err
	}

	return newStore(formatter), nil
}

func newStore(formatter *Formatter) *Store {
	return &Store{formatter: formatter, captures: map[int]Capture{}}
}

func (s *Store) Formatter() *Formatter {
	return s.formatter
}

// Counter returns the last allocated placeholder number
func (s *Store) Counter() int {
	return s.counter
}

// Len returns number of captured values
func (s *Store) Len() int {
	return len(s.captures)
}

// Next advances placeholder counter and returns new placeholder number
func (s *Store) Next() int {
	s.counter++
	return s.counter
}

// Allocate returns a new placeholder number and its token
func (s *Store) Allocate() (int, string) {
	id := s.Next()
	return id, s.formatter.Format(id)
}

// CaptureIdentity records a name hidden behind placeholder id
func (s *Store) CaptureIdentity(id int, name string) {
	s.capture(Capture{ID: id, Kind: IdentityCapture, Identity: name})
}

// CaptureContent records nodes hidden behind placeholder id, nodes are stored as is
func (s *Store) CaptureContent(id int, children []*Node) {
	s.capture(Capture{ID: id, Kind: ContentCapture, Content: children})
}

// capture panics if id was not allocated by this store or was already captured, both are programming errors
func (s *Store) capture(c Capture) {
	if c.ID <= 0 || c.ID > s.counter {
		panic(fmt.Sprintf("placeholder %d was not allocated", c.ID))
	}

	if _, ok := s.captures[c.ID]; ok {
		panic(fmt.Sprintf("placeholder %d is already captured", c.ID))
	}

	s.captures[c.ID] = c
}

// Resolve returns the value captured under placeholder id
func (s *Store) Resolve(id int) (Capture, error) {
	c, ok := s.captures[id]
	if !ok {
		return Capture{}, fmt.Errorf("%w: %s", ErrUnknownPlaceholder, s.formatter.Format(id))
	}

	return c, nil
}

// Entries returns captured values in allocation order
func (s *Store) Entries() []Capture {
	entries := make([]Capture, 0, len(s.captures))
	for id := 1; id <= s.counter; id++ {
		if c, ok := s.captures[id]; ok {
			entries = append(entries, c)
		}
	}

	return entries
}

type storeJSON struct {
	Format  string    `json:"format"`
	Counter int       `json:"counter"`
	Entries []Capture `json:"entries"`
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(storeJSON{
		Format:  s.formatter.String(),
		Counter: s.counter,
		Entries: s.Entries(),
	})
}

func (s *Store) UnmarshalJSON(data []byte) error {
	var raw storeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	formatter, err := NewFormatter(raw.Format)
	if err != nil {
		return err
	}

	captures := make(map[int]Capture, len(raw.Entries))
	for _, c := range raw.Entries {
		if c.ID <= 0 || c.ID > raw.Counter {
			return fmt.Errorf("placeholder %d is out of range 1..%d", c.ID, raw.Counter)
		}

		if _, ok := captures[c.ID]; ok {
			return fmt.Errorf("placeholder %d is captured twice", c.ID)
		}

		if c.Kind != IdentityCapture && c.Kind != ContentCapture {
			return fmt.Errorf("placeholder %d has no capture kind", c.ID)
		}

		captures[c.ID] = c
	}

	s.formatter = formatter
	s.counter = raw.Counter
	s.captures = captures

	return nil
}

// Save writes store to a JSON file, so placeholders can be restored by another process
func (s *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}

	return nil
}

// LoadStore reads store saved by Save
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	s := &Store{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse store: %w", err)
	}

	return s, nil
}
