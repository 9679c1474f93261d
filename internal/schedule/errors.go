package schedule

import "fmt"

// ConfigurationError is returned when the caller supplies an unusable grid
// configuration (e.g. a time window ending before it starts).
//
// Unlike malformed appointment data, which is skipped, a bad configuration
// cannot be recovered from by omission.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid grid configuration: %s: %s", e.Field, e.Reason)
}
