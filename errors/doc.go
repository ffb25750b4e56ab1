// Package errors provides structured error types for the assembler.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the element path, the offending value, the valid range
// for index errors, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindInvalidTypeIndex).
//		Path("func[0]").
//		Value(uint32(5)).
//		Limit(2).
//		Detail("index 5 out of range [0, 2)").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IndexOutOfRange(errors.KindInvalidTypeIndex, []string{"func[0]"}, 5, 2)
//	err := errors.Overflow(errors.PhaseEncode, uint64(1<<28), 4)
//
// Sentinels such as ErrInvalidTypeIndex match any error of the same kind:
//
//	if errors.Is(err, errors.ErrInvalidTypeIndex) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
