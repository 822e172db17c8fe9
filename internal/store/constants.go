package store

// Error message formats. Arguments are scope, key and the wrapped error.
const (
	ErrMsgDecodeValue = "failed to decode %s %q: %w"
	ErrMsgEncodeValue = "failed to encode %s %q: %w"
)
