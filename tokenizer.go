package latex

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// verbatims are environments which content is read as is, without tokenizing. The value tells if environment
// accepts an optional argument right after \begin{name}.
var verbatims = map[string]bool{
	"verbatim":   false,
	"verbatim*":  false,
	"lstlisting": true,
	"comment":    false,
}

// Tokenizer splits LaTeX source into tokens. Concatenated tokens give the source back, the only exception is
// whitespace between \begin (or \end) and environment name.
type Tokenizer struct {
	r io.RuneScanner
}

func NewTokenizer(r io.RuneScanner) *Tokenizer {
	return &Tokenizer{r: r}
}

// Token returns next token or io.EOF when input is over
func (l *Tokenizer) Token() (any, error) {
	char, ok, err := l.next()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, io.EOF
	}

	switch char {
	case '{':
		return ParameterStart{}, nil
	case '}':
		return ParameterEnd{}, nil
	case '[':
		return OptionalStart{}, nil
	case ']':
		return OptionalEnd{}, nil
	case '%':
		return l.readLineComment()
	case '$':
		return l.readMath()
	case '\\':
		return l.readBackslash()
	}

	if err := l.r.UnreadRune(); err != nil {
		return nil, err
	}

	text, err := l.scan(func(r rune) bool { return !isSpecial(r) })
	if err != nil {
		return nil, err
	}

	return Text(text), nil
}

// next reads a single rune, ok is false at the end of input
func (l *Tokenizer) next() (r rune, ok bool, err error) {
	r, _, err = l.r.ReadRune()
	if err == io.EOF {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	return r, true, nil
}

// scan reads runes while accept returns true, the first rejected rune stays unread
func (l *Tokenizer) scan(accept func(rune) bool) (string, error) {
	var b strings.Builder
	for {
		r, ok, err := l.next()
		if err != nil {
			return "", err
		}

		if !ok {
			return b.String(), nil
		}

		if !accept(r) {
			return b.String(), l.r.UnreadRune()
		}

		b.WriteRune(r)
	}
}

// accept consumes the next rune if it equals to e
func (l *Tokenizer) accept(e rune) (bool, error) {
	r, ok, err := l.next()
	if err != nil || !ok {
		return false, err
	}

	if r != e {
		return false, l.r.UnreadRune()
	}

	return true, nil
}

// readMath reads $ or $$, the content of math is tokenized as usual
func (l *Tokenizer) readMath() (any, error) {
	double, err := l.accept('$')
	if err != nil {
		return nil, err
	}

	if double {
		return Math{Delimiter: "$$"}, nil
	}

	return Math{Delimiter: "$"}, nil
}

func (l *Tokenizer) readBackslash() (any, error) {
	r, ok, err := l.next()
	if err != nil {
		return nil, err
	}

	if !ok {
		return Text("\\"), nil
	}

	switch {
	case r == '\\':
		star, err := l.accept('*')
		if err != nil {
			return nil, err
		}

		if star {
			return Command("\\*"), nil
		}

		return Command("\\"), nil
	case r == '(' || r == ')' || r == '[' || r == ']':
		return Math{Delimiter: string([]rune{'\\', r})}, nil
	case isLetter(r):
		if err := l.r.UnreadRune(); err != nil {
			return nil, err
		}

		return l.readCommand()
	default:
		// control symbol like \%, \{ or \, is kept as text
		return Text([]rune{'\\', r}), nil
	}
}

// readCommand reads a control word, the name may end with a star except for \begin and \end
func (l *Tokenizer) readCommand() (any, error) {
	name, err := l.scan(isLetter)
	if err != nil {
		return nil, err
	}

	switch name {
	case "begin":
		return l.readBlockStart()
	case "end":
		return l.readBlockEnd()
	}

	star, err := l.accept('*')
	if err != nil {
		return nil, err
	}

	if star {
		name += "*"
	}

	if name == "verb" || name == "verb*" {
		return l.readVerbatim(name)
	}

	return Command(name), nil
}

func (l *Tokenizer) readBlockStart() (any, error) {
	name, err := l.blockName()
	if err != nil {
		return nil, err
	}

	if option, ok := verbatims[name]; ok {
		return l.readVerbatimBlock(name, option)
	}

	return EnvironmentStart{Name: name}, nil
}

func (l *Tokenizer) readBlockEnd() (any, error) {
	name, err := l.blockName()
	if err != nil {
		return nil, err
	}

	return EnvironmentEnd{Name: name}, nil
}

// blockName reads {name} following \begin or \end, whitespaces before the opening brace are skipped
func (l *Tokenizer) blockName() (string, error) {
	if _, err := l.scan(isWhitespace); err != nil {
		return "", err
	}

	if err := l.expect('{'); err != nil {
		return "", err
	}

	name, err := l.scan(isNameSymbol)
	if err != nil {
		return "", err
	}

	if name == "" {
		return "", errors.New("environment name is expected")
	}

	if err := l.expect('}'); err != nil {
		return "", err
	}

	return name, nil
}

// readLineComment reads one line comment after %, including the line break
func (l *Tokenizer) readLineComment() (any, error) {
	text, err := l.scan(func(r rune) bool { return r != '\n' })
	if err != nil {
		return nil, err
	}

	newline, err := l.accept('\n')
	if err != nil {
		return nil, err
	}

	if newline {
		text += "\n"
	}

	return Comment(text), nil
}

// readVerbatimBlock reads everything up to \end{kind}, markup inside is not recognized. If option is allowed,
// [...] right after \begin{kind} is read separately.
func (l *Tokenizer) readVerbatimBlock(kind string, option bool) (any, error) {
	end := "\\end{" + kind + "}"

	var opt string
	if option {
		open, err := l.accept('[')
		if err != nil {
			return nil, err
		}

		if open {
			value, err := l.scan(func(r rune) bool { return r != ']' })
			if err != nil {
				return nil, err
			}

			if err := l.expect(']'); err != nil {
				return nil, fmt.Errorf("%s option is not closed: %w", kind, err)
			}

			opt = "[" + value + "]"
		}
	}

	var b strings.Builder
	for !strings.HasSuffix(b.String(), end) {
		r, ok, err := l.next()
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, fmt.Errorf("EOF: %s block is not closed", kind)
		}

		b.WriteRune(r)
	}

	return Verbatim{Kind: kind, Option: opt, Data: strings.TrimSuffix(b.String(), end)}, nil
}

// readVerbatim reads \verb command, data keeps delimiters
func (l *Tokenizer) readVerbatim(command string) (any, error) {
	delimiter, ok, err := l.next()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("EOF: %s delimiter is expected", command)
	}

	if isWhitespace(delimiter) || isLetter(delimiter) || delimiter == '*' {
		return nil, fmt.Errorf("delimiter character \"%c\" is not allowed", delimiter)
	}

	body, err := l.scan(func(r rune) bool { return r != delimiter })
	if err != nil {
		return nil, err
	}

	if closed, err := l.accept(delimiter); err != nil || !closed {
		return nil, errors.Join(fmt.Errorf("EOF: %s is not closed", command), err)
	}

	return Verbatim{Kind: command, Data: string(delimiter) + body + string(delimiter)}, nil
}

// expect verifies that following symbol is "e"
func (l *Tokenizer) expect(e rune) error {
	r, ok, err := l.next()
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("expected symbol %c, got EOF instead", e)
	}

	if r != e {
		return fmt.Errorf("expected symbol %c, got %c instead", e, r)
	}

	return nil
}

// isNameSymbol returns true for symbols allowed in environment names, eg. align*, my-env or env2
func isNameSymbol(r rune) bool {
	return isLetter(r) || '0' <= r && r <= '9' || strings.ContainsRune("*-_:.@", r)
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isSpecial returns true if a symbol has a special meaning and should interrupt text reading
func isSpecial(r rune) bool {
	return strings.ContainsRune("$%{}\\[]", r)
}

func isWhitespace(r rune) bool {
	return strings.ContainsRune(" \n\t\r", r)
}
