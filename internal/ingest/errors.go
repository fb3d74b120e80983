package ingest

import (
	"fmt"
	"time"
)

// StructuringParseError is returned when the first-stage generation
// response cannot be parsed as the expected item array.
type StructuringParseError struct {
	Cause error
}

func (e *StructuringParseError) Error() string {
	return fmt.Sprintf("structuring response was not a parseable item array: %v", e.Cause)
}

func (e *StructuringParseError) Unwrap() error { return e.Cause }

// EnhancementIntegrityError is returned when an enhanced batch fails
// the id/name/price preservation check. The generation step is not
// guaranteed to preserve fields verbatim; accepting a corrupted record
// would corrupt the dataset, so the whole run aborts.
type EnhancementIntegrityError struct {
	Batch    int // 1 or 2
	Position int // index within the batch
	Field    string
	Want     string
	Got      string
}

func (e *EnhancementIntegrityError) Error() string {
	return fmt.Sprintf("enhancement batch %d item %d: field %q changed (want %s, got %s)",
		e.Batch, e.Position, e.Field, e.Want, e.Got)
}

// PersistError is returned when the final write is rejected. The
// already-enhanced items are preserved in memory so the caller is not
// forced to re-upload.
type PersistError struct {
	Message string
	Err     error
}

func (e *PersistError) Error() string {
	if e.Message != "" {
		return "persist failed: " + e.Message
	}
	return "persist failed: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error { return e.Err }

// TimeoutError is returned when an external call exceeds the per-stage
// deadline.
type TimeoutError struct {
	Stage   Stage
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("stage %s timed out after %s", e.Stage, e.Timeout)
}
