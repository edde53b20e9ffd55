package latex

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// closings maps opening delimiters of math and arguments to closing ones
var closings = map[string]string{
	"$":   "$",
	"$$":  "$$",
	"\\(": "\\)",
	"\\[": "\\]",
	"{":   "}",
	"[":   "]",
}

type Parser struct {
	tokens  *Tokenizer
	pending []any
}

func Parse(r io.RuneScanner) (*Node, error) {
	return NewParser(r).Parse()
}

func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func NewParser(r io.RuneScanner) *Parser {
	return &Parser{tokens: NewTokenizer(r)}
}

func (p *Parser) Parse() (*Node, error) {
	children, _, err := p.content(func(a any, err error) bool {
		return err == io.EOF
	})

	if err != nil {
		return nil, err
	}

	return &Node{Kind: DocumentKind, Children: children}, nil
}

// token returns next token, taking look-ahead into account
func (p *Parser) token() (any, error) {
	if len(p.pending) > 0 {
		t := p.pending[0]
		p.pending = p.pending[1:]
		return t, nil
	}

	return p.tokens.Token()
}

// peek returns next token without consuming it
func (p *Parser) peek() (any, error) {
	if len(p.pending) == 0 {
		t, err := p.tokens.Token()
		if err != nil {
			return nil, err
		}

		p.pending = append(p.pending, t)
	}

	return p.pending[0], nil
}

// content collects nodes until stop condition is satisfied, it returns the token which caused the stop
func (p *Parser) content(stop func(any, error) bool) (children []*Node, last any, err error) {
	for {
		t, err := p.token()
		if stop(t, err) {
			return children, t, nil
		}

		if err == io.EOF {
			return nil, nil, errors.New("EOF: unexpected end of input")
		}

		if err != nil {
			return nil, nil, err
		}

		node, err := p.parse(t)
		if err != nil {
			return nil, nil, err
		}

		// merge consequent text nodes together
		if node.Kind == TextKind && len(children) > 0 && children[len(children)-1].Kind == TextKind {
			children[len(children)-1].Data += node.Data
			continue
		}

		children = append(children, node)
	}
}

func (p *Parser) parse(t any) (*Node, error) {
	switch token := t.(type) {
	case Text:
		return &Node{Kind: TextKind, Data: string(token)}, nil
	case Comment:
		return &Node{Kind: CommentKind, Data: string(token)}, nil
	case Command:
		return p.command(token)
	case Verbatim:
		return p.verbatim(token)
	case OptionalStart:
		return &Node{Kind: TextKind, Data: "["}, nil
	case OptionalEnd:
		return &Node{Kind: TextKind, Data: "]"}, nil
	case ParameterStart:
		return p.group()
	case ParameterEnd:
		return nil, errors.New("unexpected closing brace")
	case EnvironmentStart:
		return p.environment(token)
	case EnvironmentEnd:
		return nil, fmt.Errorf("unexpected \\end{%s}", token.Name)
	case Math:
		return p.math(token)
	default:
		return nil, fmt.Errorf("unexpected token %T", t)
	}
}

// command reads a command with all arguments adjacent to it
func (p *Parser) command(c Command) (*Node, error) {
	args, err := p.arguments()
	if err != nil {
		return nil, fmt.Errorf("invalid \\%s arguments: %w", c, err)
	}

	return &Node{Kind: CommandKind, Data: string(c), Children: args}, nil
}

// verbatim turns \verb and verbatim environments into a node with a single text child
func (p *Parser) verbatim(v Verbatim) (*Node, error) {
	body := []*Node{{Kind: TextKind, Data: v.Data}}

	switch v.Kind {
	case "verb", "verb*":
		return &Node{Kind: CommandKind, Data: v.Kind, Children: body}, nil
	}

	// option of \begin{lstlisting}[...] becomes an argument like any other \begin argument
	if v.Option != "" {
		option := &Node{Kind: ArgumentKind, Data: "["}
		if value := strings.TrimSuffix(strings.TrimPrefix(v.Option, "["), "]"); value != "" {
			option.Children = []*Node{{Kind: TextKind, Data: value}}
		}

		body = append([]*Node{option}, body...)
	}

	return &Node{Kind: EnvironmentKind, Data: v.Kind, Children: body}, nil
}

// group reads {...} which does not belong to any command
func (p *Parser) group() (*Node, error) {
	children, _, err := p.content(func(a any, err error) bool {
		_, ok := a.(ParameterEnd)
		return err == nil && ok
	})

	if err != nil {
		return nil, fmt.Errorf("invalid group: %w", err)
	}

	return &Node{Kind: GroupKind, Children: children}, nil
}

// environment reads \begin{name}...\end{name}, arguments adjacent to \begin{name} become first children
func (p *Parser) environment(e EnvironmentStart) (*Node, error) {
	args, err := p.arguments()
	if err != nil {
		return nil, fmt.Errorf("invalid %s environment arguments: %w", e.Name, err)
	}

	children, _, err := p.content(func(a any, err error) bool {
		n, ok := a.(EnvironmentEnd)
		return err == nil && ok && n.Name == e.Name
	})

	if err != nil {
		return nil, fmt.Errorf("invalid %s environment: %w", e.Name, err)
	}

	return &Node{Kind: EnvironmentKind, Data: e.Name, Children: append(args, children...)}, nil
}

// math reads content between math delimiters
func (p *Parser) math(m Math) (*Node, error) {
	end, ok := closings[m.Delimiter]
	if !ok || m.Delimiter == "{" || m.Delimiter == "[" {
		return nil, fmt.Errorf("unexpected math delimiter %s", m.Delimiter)
	}

	children, _, err := p.content(func(a any, err error) bool {
		n, ok := a.(Math)
		return err == nil && ok && n.Delimiter == end
	})

	if err != nil {
		return nil, fmt.Errorf("math %s...%s is not closed: %w", m.Delimiter, end, err)
	}

	return &Node{Kind: MathKind, Data: m.Delimiter, Children: children}, nil
}

// arguments reads obligatory ({...}) and optional ([...]) parameters which immediately follow a command
func (p *Parser) arguments() (args []*Node, err error) {
	for {
		t, err := p.peek()
		if err == io.EOF {
			return args, nil
		}

		if err != nil {
			return nil, err
		}

		var arg *Node
		switch t.(type) {
		case ParameterStart:
			arg, err = p.parameter()
		case OptionalStart:
			arg, err = p.option()
		default:
			return args, nil
		}

		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}
}

// parameter reads obligatory (wrapped in {}) parameter
func (p *Parser) parameter() (*Node, error) {
	if _, err := p.token(); err != nil {
		return nil, err
	}

	children, _, err := p.content(func(a any, err error) bool {
		_, ok := a.(ParameterEnd)
		return err == nil && ok
	})

	if err != nil {
		return nil, err
	}

	return &Node{Kind: ArgumentKind, Data: "{", Children: children}, nil
}

// option reads optional parameter (wrapped in []), nested brackets are kept as text
func (p *Parser) option() (*Node, error) {
	if _, err := p.token(); err != nil {
		return nil, err
	}

	depth := 0
	children, _, err := p.content(func(a any, err error) bool {
		if err != nil {
			return false
		}

		switch a.(type) {
		case OptionalStart:
			depth++
		case OptionalEnd:
			if depth == 0 {
				return true
			}

			depth--
		}

		return false
	})

	if err != nil {
		return nil, err
	}

	return &Node{Kind: ArgumentKind, Data: "[", Children: children}, nil
}
