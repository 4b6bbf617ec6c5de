package worldfile

import "fmt"

// ParseError reports a problem with a world document
type ParseError struct {
	Path  string
	World int
	Line  int
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	var b []byte
	if e.Path != "" {
		b = append(b, e.Path...)
		if e.Line > 0 {
			b = fmt.Appendf(b, ":%d", e.Line)
		}
		b = append(b, ": "...)
	} else if e.Line > 0 {
		b = fmt.Appendf(b, "line %d: ", e.Line)
	}
	if e.Err == nil {
		b = fmt.Appendf(b, "world %d: ", e.World)
	}
	b = append(b, e.Msg...)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
