package report

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInputRejected means the raw text was empty or whitespace only.
	KindInputRejected
	// KindTransport means the backend was unreachable, timed out or
	// returned a transport-level error.
	KindTransport
	// KindParse means the backend response was not valid JSON.
	KindParse
	// KindSchema means the parsed data did not conform to the report schema.
	KindSchema
	// KindSemantic means derived values contradict each other.
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindInputRejected:
		return "input_rejected"
	case KindTransport:
		return "transport_failure"
	case KindParse:
		return "parse_failure"
	case KindSchema:
		return "schema_violation"
	case KindSemantic:
		return "semantic_inconsistency"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against a *Error of the same kind.
var (
	ErrInputRejected = &Error{Kind: KindInputRejected}
	ErrTransport     = &Error{Kind: KindTransport}
	ErrParse         = &Error{Kind: KindParse}
	ErrSchema        = &Error{Kind: KindSchema}
	ErrSemantic      = &Error{Kind: KindSemantic}
)

// Error is returned for every failed generation.
type Error struct {
	Kind Kind
	// Path is the dotted location of the offending field, if any.
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the failure kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage returns the single message shown to the person who pasted the
// submission.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindInputRejected:
		return "Por favor, cole os dados do formulário na área de texto."
	case KindTransport:
		return "Falha na comunicação com a IA para gerar o relatório. Tente novamente em instantes."
	default:
		return "A IA retornou uma resposta inesperada. Verifique os dados e tente novamente."
	}
}
