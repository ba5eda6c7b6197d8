package booking

import "fmt"

// ConflictError means the slot was taken between the availability read
// and the booking write.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// UpstreamError means the extractor or a store was unreachable. The user
// gets one safe fallback reply and the conversation state is left
// unchanged.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// PolicyError means the message was refused before any booking logic ran
// (allow-list, quota). Silent policy errors produce no reply at all.
type PolicyError struct {
	Reason string
	Silent bool
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy: %s", e.Reason)
}
