package engine

import (
	"fmt"
)

// ConfigurationError reports an invalid parameter combination: a
// mismatched frame length, a non-power-of-two FFT size, an impossible
// grid. It is fatal at initialization — there is nothing to recover, the
// caller's configuration is wrong. Test for it with errors.As.
//
// The other two failure classes of the engine never surface as errors:
// a missed frame deadline only increments the dropped-frame counter, and
// out-of-range intermediate indices are clamped locally.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
