package f2

import (
	"bytes"
	"fmt"
)

// Values are carried from payload offset 1; offset 0 holds the parameter id.

// DecodeBool decodes a boolean parameter value.
func DecodeBool(m Message) (bool, error) {
	if len(m.Payload) < 2 {
		return false, fmt.Errorf("decode bool from %v: %w", m.Payload, ErrShortPayload)
	}

	return m.Payload[1] != 0, nil
}

// DecodeUint decodes a numeric parameter value.
func DecodeUint(m Message) (byte, error) {
	if len(m.Payload) < 2 {
		return 0, fmt.Errorf("decode uint from %v: %w", m.Payload, ErrShortPayload)
	}

	return m.Payload[1], nil
}

// DecodeText decodes a text parameter value, trimming trailing zero bytes.
func DecodeText(m Message) (string, error) {
	if len(m.Payload) < 1 {
		return "", fmt.Errorf("decode text from %v: %w", m.Payload, ErrShortPayload)
	}

	return string(bytes.TrimRight(m.Payload[1:], "\x00")), nil
}

// EncodeBool encodes a boolean parameter value.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}

	return []byte{0}
}

// EncodeUint encodes a numeric parameter value.
func EncodeUint(v byte) ([]byte, error) {
	if v > 0x7f {
		return nil, fmt.Errorf("encode %d: %w", v, ErrValueRange)
	}

	return []byte{v}, nil
}

// EncodeText truncates v to significant bytes and pads it with zero bytes to
// width.
func EncodeText(v string, significant int, width int) []byte {
	b := []byte(v)

	if len(b) > significant {
		b = b[:significant]
	}

	out := make([]byte, width)
	copy(out, b)

	return out
}
