package entities

import (
	"fmt"
	"strings"
)

// ValidationError reports a per-plant parameter that fails its physical
// constraint. It names the plant, the field and the offending value so the
// input can be fixed without re-running.
type ValidationError struct {
	Plant  string
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plant %q: invalid %s=%g (%s)", e.Plant, e.Field, e.Value, e.Reason)
}

// LookupError reports a plant type missing from the properties table.
// The available types are listed in the message.
type LookupError struct {
	Type      string
	Available []string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("plant type %q not found in properties table (available: %s)",
		e.Type, strings.Join(e.Available, ", "))
}
