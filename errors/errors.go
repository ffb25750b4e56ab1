package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // structural module checks
	PhaseEncode   Phase = "encode"   // model to binary
	PhaseDecode   Phase = "decode"   // LEB128 reads
	PhaseParse    Phase = "parse"    // instruction mnemonics and manifests
	PhaseLoad     Phase = "load"     // manifest and file loading
	PhaseRuntime  Phase = "runtime"  // execution of assembled modules
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidTypeIndex     Kind = "invalid_type_index"
	KindInvalidFunctionIndex Kind = "invalid_function_index"
	KindInvalidExportIndex   Kind = "invalid_export_index"
	KindMismatchedCount      Kind = "mismatched_count"
	KindOverflow             Kind = "overflow"
	KindEmptyName            Kind = "empty_name"
	KindInvalidValType       Kind = "invalid_value_type"
	KindUnexpectedEnd        Kind = "unexpected_end"
	KindOutOfBounds          Kind = "out_of_bounds"
	KindInvalidInput         Kind = "invalid_input"
	KindNotFound             Kind = "not_found"
	KindInvalidData          Kind = "invalid_data"
	KindRuntime              Kind = "runtime"
)

// Sentinels for errors.Is. They match any Error of the same kind.
var (
	ErrInvalidTypeIndex        = &Error{Kind: KindInvalidTypeIndex}
	ErrInvalidFunctionIndex    = &Error{Kind: KindInvalidFunctionIndex}
	ErrInvalidExportIndex      = &Error{Kind: KindInvalidExportIndex}
	ErrMismatchedDeclBodyCount = &Error{Kind: KindMismatchedCount}
	ErrEncodingOverflow        = &Error{Kind: KindOverflow}
	ErrEmptyExportName         = &Error{Kind: KindEmptyName}
	ErrInvalidValType          = &Error{Kind: KindInvalidValType}
	ErrUnexpectedEnd           = &Error{Kind: KindUnexpectedEnd}
)

// Error is the structured error type used throughout the assembler
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	// Limit is the size of the valid range for index errors; valid indices are [0, Limit).
	Limit int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty Phase on the target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the element path, e.g. "func[1]", "instr[3]"
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Limit sets the valid range size
func (b *Builder) Limit(n int) *Builder {
	b.err.Limit = n
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IndexOutOfRange creates an index error of the given kind.
func IndexOutOfRange(kind Kind, path []string, index uint32, limit int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   kind,
		Path:   path,
		Value:  index,
		Limit:  limit,
		Detail: fmt.Sprintf("index %d out of range [0, %d)", index, limit),
	}
}

// MismatchedCount creates a count mismatch error between two parallel lists
func MismatchedCount(what string, got, want int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindMismatchedCount,
		Value:  got,
		Limit:  want,
		Detail: fmt.Sprintf("%s: %d entries, want %d", what, got, want),
	}
}

// EmptyName creates an empty name error
func EmptyName(path []string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindEmptyName,
		Path:   path,
		Detail: "name must not be empty",
	}
}

// InvalidValType creates an unknown value type error
func InvalidValType(path []string, tag byte) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidValType,
		Path:   path,
		Value:  tag,
		Detail: fmt.Sprintf("unknown value type 0x%02x", tag),
	}
}

// UnexpectedEnd creates an error for an explicit end inside a body
func UnexpectedEnd(path []string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnexpectedEnd,
		Path:   path,
		Detail: "end is appended by the encoder and must not appear in a body",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, width int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Value:  value,
		Limit:  width,
		Detail: fmt.Sprintf("value %v does not fit in %d LEB128 bytes", value, width),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
		Limit:  length,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Load creates a loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
