package f2

import "fmt"

// headerSize is the number of bytes preceding the payload.
const headerSize = 4

// Serialize encodes a message into a frame without SysEx delimiters.
func Serialize(m Message) ([]byte, error) {
	if !m.Kind.Request.Valid {
		return nil, fmt.Errorf("serialize %s: %w", m.Kind, ErrNotSendable)
	}

	frame := make([]byte, 0, headerSize+len(m.Payload))
	frame = append(frame, byte(m.Manufacturer), 0, byte(m.Device), m.Kind.Request.Value)
	frame = append(frame, m.Payload...)

	for i, b := range frame {
		if b > 0x7f {
			return nil, fmt.Errorf("serialize %s: byte %d is %#x: %w", m.Kind, i, b, ErrInvalidByte)
		}
	}

	return frame, nil
}

// Deserialize decodes a frame. It returns false when the frame is too short
// or carries a response code no kind is known for.
func Deserialize(frame []byte) (Message, bool) {
	if len(frame) < headerSize {
		return Message{}, false
	}

	kind, ok := KindByResponse(frame[3])

	if !ok {
		return Message{}, false
	}

	payload := make([]byte, len(frame)-headerSize)
	copy(payload, frame[headerSize:])

	return Message{
		Manufacturer: ManufacturerID(frame[0]),
		Device:       DeviceID(frame[2]),
		Kind:         kind,
		Payload:      payload,
	}, true
}
