package dossier

import (
	"fmt"
	"strings"
)

// ConfigError reports an unusable dataset configuration at load time.
// Construction never proceeds past one of these; there is nothing to
// retry.
type ConfigError struct {
	Dataset string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %q: %s", e.Dataset, e.Reason)
}

// FieldNotIndexedError reports a search against a field that was not
// configured for indexing. The message lists the fields that are, so a
// caller can discover a usable one without a second round trip.
type FieldNotIndexedError struct {
	Field   string
	Indexed []string
}

func (e *FieldNotIndexedError) Error() string {
	return fmt.Sprintf("field %q is not indexed; indexed fields: %s",
		e.Field, strings.Join(e.Indexed, ", "))
}

// NoUniqueKeyError reports a Lookup on a dataset loaded without a unique
// key field. Callers should fall back to Search.
type NoUniqueKeyError struct {
	Dataset string
}

func (e *NoUniqueKeyError) Error() string {
	return fmt.Sprintf("dataset %q has no unique key field configured", e.Dataset)
}
