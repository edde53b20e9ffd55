package latex

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

var ErrInvalidFormat = errors.New("invalid placeholder format")

const slot = "{}"

// Formatter turns placeholder numbers into tokens and back
type Formatter struct {
	format   string
	template *fasttemplate.Template
	pattern  *regexp.Regexp // token anywhere in a text
	exact    *regexp.Regexp // whole string is a token
}

// NewFormatter creates formatter for a template with exactly one {} slot, for example "//{}//".
func NewFormatter(format string) (*Formatter, error) {
	if n := strings.Count(format, slot); n != 1 {
		return nil, fmt.Errorf("%w: %q must have exactly one %s slot, got %d", ErrInvalidFormat, format, slot, n)
	}

	prefix, suffix, _ := strings.Cut(format, slot)
	if prefix == "" && suffix == "" {
		return nil, fmt.Errorf("%w: %q has no text around the slot", ErrInvalidFormat, format)
	}

	if strings.ContainsAny(prefix+suffix, "{}") {
		return nil, fmt.Errorf("%w: %q must not contain braces outside of the slot", ErrInvalidFormat, format)
	}

	template, err := fasttemplate.NewTemplate(format, "{", "}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	expr := regexp.QuoteMeta(prefix) + "([0-9]+)" + regexp.QuoteMeta(suffix)

	return &Formatter{
		format:   format,
		template: template,
		pattern:  regexp.MustCompile(expr),
		exact:    regexp.MustCompile("^" + expr + "$"),
	}, nil
}

func (f *Formatter) String() string {
	return f.format
}

// Format renders placeholder token for a given number
func (f *Formatter) Format(id int) string {
	return f.template.ExecuteFuncString(func(w io.Writer, _ string) (int, error) {
		return io.WriteString(w, strconv.Itoa(id))
	})
}

// Parse returns placeholder number if token is exactly one placeholder
func (f *Formatter) Parse(token string) (int, bool) {
	match := f.exact.FindStringSubmatch(token)
	if match == nil {
		return 0, false
	}

	id, err := strconv.Atoi(match[1])
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// Pattern matches placeholder tokens embedded in a text, the first group is the placeholder number
func (f *Formatter) Pattern() *regexp.Regexp {
	return f.pattern
}
