package latex_test

import (
	"bytes"
	"testing"

	"github.com/eolymp/go-latex-mask"
)

func TestRender(t *testing.T) {
	doc := func(children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.DocumentKind, Children: children}
	}

	text := func(t string) *latex.Node {
		return &latex.Node{Kind: latex.TextKind, Data: t}
	}

	arg := func(open string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.ArgumentKind, Data: open, Children: children}
	}

	command := func(name string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.CommandKind, Data: name, Children: children}
	}

	env := func(name string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.EnvironmentKind, Data: name, Children: children}
	}

	math := func(delimiter string, children ...*latex.Node) *latex.Node {
		return &latex.Node{Kind: latex.MathKind, Data: delimiter, Children: children}
	}

	tt := []struct {
		name     string
		render   string
		document *latex.Node
	}{
		{
			name:     "text",
			render:   "foo bar",
			document: doc(text("foo bar")),
		},
		{
			name:     "command with arguments",
			render:   "\\includegraphics[width=5cm]{image.png}",
			document: doc(command("includegraphics", arg("[", text("width=5cm")), arg("{", text("image.png")))),
		},
		{
			name:     "group and comment",
			render:   "{\\it x}%comment\n",
			document: doc(&latex.Node{Kind: latex.GroupKind, Children: []*latex.Node{command("it"), text(" x")}}, &latex.Node{Kind: latex.CommentKind, Data: "comment\n"}),
		},
		{
			name:     "math",
			render:   "$a$ $$b$$ \\(c\\) \\[d\\]",
			document: doc(math("$", text("a")), text(" "), math("$$", text("b")), text(" "), math("\\(", text("c")), text(" "), math("\\[", text("d"))),
		},
		{
			name:     "environment",
			render:   "\\begin{theorem}[Main]Text\\end{theorem}",
			document: doc(env("theorem", arg("[", text("Main")), text("Text"))),
		},
		{
			name:     "masked names",
			render:   "\\begin{//2//}\\//1//{x}\\end{//2//}",
			document: doc(env("//2//", command("//1//", arg("{", text("x"))))),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			buffer := bytes.NewBuffer(nil)

			err := latex.Render(buffer, tc.document)
			if err != nil {
				t.Fatal("unable to render:", err)
			}

			if got := buffer.String(); got != tc.render {
				t.Errorf("Rendered latex does not match:\nWANT:\n  %#v\nGOT:\n  %#v\n", tc.render, got)
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tt := []struct {
		name     string
		document *latex.Node
	}{
		{
			name:     "unknown kind",
			document: &latex.Node{Kind: latex.Kind(100)},
		},
		{
			name:     "unknown math delimiter",
			document: &latex.Node{Kind: latex.MathKind, Data: "\\begin"},
		},
		{
			name:     "unknown argument bracket",
			document: &latex.Node{Kind: latex.CommandKind, Data: "x", Children: []*latex.Node{{Kind: latex.ArgumentKind, Data: "("}}},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := latex.RenderString(tc.document); err == nil {
				t.Error("Render must fail")
			}
		})
	}
}

func TestString(t *testing.T) {
	doc, err := latex.ParseString("Let \\textbf{$x$} be {small} % number\nenough.")
	if err != nil {
		t.Fatalf("Unable to parse document: %v", err)
	}

	want := "Let x be small enough."
	if got := latex.String(doc); got != want {
		t.Errorf("Text does not match:\nWANT:\n  %q\nGOT:\n  %q\n", want, got)
	}
}
