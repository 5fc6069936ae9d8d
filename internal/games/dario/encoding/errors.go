// Package encoding turns engine values into compact strings and back.
//
// Every codec is pure. Decoders never panic on malformed input; they return
// a *DecodeError that matches ErrDecode with errors.Is.
package encoding

import (
	"errors"
	"fmt"
)

// ErrDecode is the sentinel wrapped by every decoding failure.
var ErrDecode = errors.New("encoding: decode failed")

// ErrEncode is returned when a value has no encoding.
var ErrEncode = errors.New("encoding: value cannot be encoded")

// DecodeError describes why a string could not be decoded.
type DecodeError struct {
	Codec  string // e.g. "grid", "int"
	Input  string
	Reason string
}

func (e *DecodeError) Error() string {
	in := e.Input
	if len(in) > 32 {
		in = in[:32] + "..."
	}
	return fmt.Sprintf("encoding: decode %s %q: %s", e.Codec, in, e.Reason)
}

// Unwrap lets errors.Is match ErrDecode.
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

func decodeErr(codec, input, format string, args ...any) error {
	return &DecodeError{Codec: codec, Input: input, Reason: fmt.Sprintf(format, args...)}
}
