package moderation

import "errors"

// ErrRejected indicates content was denied by the safety gate.
var ErrRejected = errors.New("content rejected by moderation")
