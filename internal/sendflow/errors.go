package sendflow

import "errors"

// Sentinel errors for the send flow. The HTTP layer maps these onto
// status codes, the steps render them inline.
var (
	ErrWrongStep      = errors.New("operation not allowed from the current step")
	ErrIncompleteStep = errors.New("required fields for this step are missing")
)
