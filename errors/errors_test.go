package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "index error",
			err:      IndexOutOfRange(KindInvalidTypeIndex, []string{"func[0]"}, 5, 2),
			contains: []string{"[validate]", "invalid_type_index", "func[0]", "index 5 out of range [0, 2)"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindOverflow,
			},
			contains: []string{"[encode]", "overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "read manifest",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "read manifest", "caused by", "underlying error"},
		},
		{
			name:     "nested path",
			err:      UnexpectedEnd([]string{"func[1]", "instr[2]"}),
			contains: []string{"func[1].instr[2]", "unexpected_end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseLoad, KindInvalidData, cause, "open")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := IndexOutOfRange(KindInvalidExportIndex, []string{"export[0]"}, 3, 1)

	if !errors.Is(err, ErrInvalidExportIndex) {
		t.Error("sentinel without phase should match same kind")
	}
	if !err.Is(&Error{Phase: PhaseValidate, Kind: KindInvalidExportIndex}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInvalidExportIndex}) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, ErrInvalidTypeIndex) {
		t.Error("Is should not match different kind")
	}
	if err.Is(fmt.Errorf("plain")) {
		t.Error("Is should not match foreign error types")
	}

	wrapped := fmt.Errorf("encode: %w", err)
	var target *Error
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find *Error through wrapping")
	}
	if target.Value != uint32(3) || target.Limit != 1 {
		t.Errorf("Value/Limit = %v/%d, want 3/1", target.Value, target.Limit)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseValidate, KindInvalidFunctionIndex).
		Path("func[1]", "instr[3]").
		Value(uint32(9)).
		Limit(2).
		Cause(cause).
		Detail("call target %d out of range", 9).
		Build()

	if err.Phase != PhaseValidate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseValidate)
	}
	if err.Kind != KindInvalidFunctionIndex {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidFunctionIndex)
	}
	if len(err.Path) != 2 || err.Path[1] != "instr[3]" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Limit != 2 {
		t.Errorf("Limit = %d, want 2", err.Limit)
	}
	if err.Detail != "call target 9 out of range" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{MismatchedCount("code section", 1, 2), KindMismatchedCount},
		{EmptyName([]string{"export[0]"}), KindEmptyName},
		{InvalidValType([]string{"type[0]"}, 0x40), KindInvalidValType},
		{Overflow(PhaseEncode, uint64(1<<28), 4), KindOverflow},
		{OutOfBounds(PhaseEncode, nil, 10, 4), KindOutOfBounds},
		{InvalidInput(PhaseParse, "bad"), KindInvalidInput},
		{NotFound(PhaseRuntime, "export", "f"), KindNotFound},
		{ParseFailed("manifest", errors.New("x")), KindInvalidData},
		{Load("read", errors.New("x")), KindInvalidData},
	}
	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("%s: kind = %s, want %s", tt.err, tt.err.Kind, tt.kind)
		}
		if tt.err.Error() == "" {
			t.Error("empty message")
		}
	}

	if got := Overflow(PhaseEncode, uint64(1<<28), 4).Error(); !strings.Contains(got, "does not fit in 4 LEB128 bytes") {
		t.Errorf("overflow message = %q", got)
	}
}
