package latex_test

import (
	"io"
	"strings"
	"testing"

	"github.com/eolymp/go-latex-mask"
	"github.com/google/go-cmp/cmp"
)

func TestTokenizer(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []any
	}{
		{
			name:   "text",
			input:  "one\ntwo\nthree",
			output: []any{latex.Text("one\ntwo\nthree")},
		},
		{
			name:  "command",
			input: "\\textbf{foo bar}",
			output: []any{
				latex.Command("textbf"),
				latex.ParameterStart{},
				latex.Text("foo bar"),
				latex.ParameterEnd{},
			},
		},
		{
			name:  "command with star and optional parameter",
			input: "\\section*[short]{Long}",
			output: []any{
				latex.Command("section*"),
				latex.OptionalStart{},
				latex.Text("short"),
				latex.OptionalEnd{},
				latex.ParameterStart{},
				latex.Text("Long"),
				latex.ParameterEnd{},
			},
		},
		{
			name:  "line breaks",
			input: "a\\\\b\\\\*c",
			output: []any{
				latex.Text("a"),
				latex.Command("\\"),
				latex.Text("b"),
				latex.Command("\\*"),
				latex.Text("c"),
			},
		},
		{
			name:  "dollar math",
			input: "$x$ and $$y$$",
			output: []any{
				latex.Math{Delimiter: "$"},
				latex.Text("x"),
				latex.Math{Delimiter: "$"},
				latex.Text(" and "),
				latex.Math{Delimiter: "$$"},
				latex.Text("y"),
				latex.Math{Delimiter: "$$"},
			},
		},
		{
			name:  "bracket math",
			input: "\\(x\\) \\[y\\]",
			output: []any{
				latex.Math{Delimiter: "\\("},
				latex.Text("x"),
				latex.Math{Delimiter: "\\)"},
				latex.Text(" "),
				latex.Math{Delimiter: "\\["},
				latex.Text("y"),
				latex.Math{Delimiter: "\\]"},
			},
		},
		{
			name:  "control symbol",
			input: "70\\% off",
			output: []any{
				latex.Text("70"),
				latex.Text("\\%"),
				latex.Text(" off"),
			},
		},
		{
			name:  "trailing backslash",
			input: "a\\",
			output: []any{
				latex.Text("a"),
				latex.Text("\\"),
			},
		},
		{
			name:  "comment",
			input: "a % note\nb",
			output: []any{
				latex.Text("a "),
				latex.Comment(" note\n"),
				latex.Text("b"),
			},
		},
		{
			name:  "environment",
			input: "\\begin {itemize}x\\end{itemize}",
			output: []any{
				latex.EnvironmentStart{Name: "itemize"},
				latex.Text("x"),
				latex.EnvironmentEnd{Name: "itemize"},
			},
		},
		{
			name:  "environment with star",
			input: "\\begin{align*}x\\end{align*}",
			output: []any{
				latex.EnvironmentStart{Name: "align*"},
				latex.Text("x"),
				latex.EnvironmentEnd{Name: "align*"},
			},
		},
		{
			name:  "environment name with digits, dashes and underscores",
			input: "\\begin{my-env_2}x\\end{my-env_2}",
			output: []any{
				latex.EnvironmentStart{Name: "my-env_2"},
				latex.Text("x"),
				latex.EnvironmentEnd{Name: "my-env_2"},
			},
		},
		{
			name:   "lstlisting with option",
			input:  "\\begin{lstlisting}[language=Python]\nimport sympy\n\\end{lstlisting}",
			output: []any{latex.Verbatim{Kind: "lstlisting", Option: "[language=Python]", Data: "\nimport sympy\n"}},
		},
		{
			name:   "lstlisting without option",
			input:  "\\begin{lstlisting}\n[x]\\end{lstlisting}",
			output: []any{latex.Verbatim{Kind: "lstlisting", Data: "\n[x]"}},
		},
		{
			name:   "verbatim does not take option",
			input:  "\\begin{verbatim}[x]\\end{verbatim}",
			output: []any{latex.Verbatim{Kind: "verbatim", Data: "[x]"}},
		},
		{
			name:   "verbatim environment",
			input:  "\\begin{verbatim}\\x $y$\\end{verbatim}",
			output: []any{latex.Verbatim{Kind: "verbatim", Data: "\\x $y$"}},
		},
		{
			name:   "verb command",
			input:  "\\verb|a$b|",
			output: []any{latex.Verbatim{Kind: "verb", Data: "|a$b|"}},
		},
		{
			name:   "verb command with star",
			input:  "\\verb*+like   this :-) +",
			output: []any{latex.Verbatim{Kind: "verb*", Data: "+like   this :-) +"}},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokenizer := latex.NewTokenizer(strings.NewReader(tc.input))

			var got []any

			for {
				token, err := tokenizer.Token()
				if err == io.EOF {
					break
				}

				if err != nil {
					t.Fatalf("Unable to read token: %v", err)
				}

				got = append(got, token)
			}

			if diff := cmp.Diff(tc.output, got); diff != "" {
				t.Errorf("Tokens do not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizer_Errors(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "verbatim is not closed", input: "\\begin{verbatim}abc"},
		{name: "verb is not closed", input: "\\verb|abc"},
		{name: "verb delimiter is whitespace", input: "\\verb abc "},
		{name: "environment name is empty", input: "\\begin{}"},
		{name: "environment name is missing", input: "\\begin"},
		{name: "environment name is not closed", input: "\\end{itemize"},
		{name: "lstlisting option is not closed", input: "\\begin{lstlisting}[language=Go"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokenizer := latex.NewTokenizer(strings.NewReader(tc.input))

			for {
				_, err := tokenizer.Token()
				if err == io.EOF {
					t.Fatal("Tokenizer reached EOF without an error")
				}

				if err != nil {
					return
				}
			}
		})
	}
}
