package latex

// Text is a raw run of source text, escaped control symbols (\%, \{, \, etc) included
type Text string

// Command is a control word or \\ without leading backslash
type Command string

// Comment is a line comment without leading %, the line break is included when present
type Comment string

// Verbatim is a body of \verb or of a verbatim environment. Option is an optional argument following
// \begin{lstlisting}, brackets included.
type Verbatim struct {
	Kind   string
	Option string
	Data   string
}

// Math is an opening or closing math delimiter: $, $$, \(, \), \[ or \]
type Math struct {
	Delimiter string
}

type ParameterStart struct {
}

type ParameterEnd struct {
}

type OptionalStart struct {
}

type OptionalEnd struct {
}

type EnvironmentStart struct {
	Name string
}

type EnvironmentEnd struct {
	Name string
}
