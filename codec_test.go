package f2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	frame, err := Serialize(Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindParameter,
		Payload:      []byte{ParamLowcut.RequestID},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte{82, 0, 116, 70, 1}, frame)
}

func TestSerializeIdentity(t *testing.T) {
	frame, err := Serialize(Message{
		Manufacturer: ManufacturerUniversal,
		Device:       DeviceUniversal,
		Kind:         KindIdentity,
	})

	require.NoError(t, err)
	assert.Equal(t, []byte{126, 0, 6, 1}, frame)
}

func TestSerializeInvalidByte(t *testing.T) {
	_, err := Serialize(Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindParameterChange,
		Payload:      []byte{6, 0xc3, 0xa9},
	})

	assert.ErrorIs(t, err, ErrInvalidByte)
}

func TestSerializeNotSendable(t *testing.T) {
	_, err := Serialize(Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindResponse,
	})

	assert.ErrorIs(t, err, ErrNotSendable)
}

func TestDeserialize(t *testing.T) {
	m, ok := Deserialize([]byte{82, 0, 116, 2, 82, 116, 0, 1, 0})

	require.True(t, ok)
	assert.Equal(t, ManufacturerZoom, m.Manufacturer)
	assert.Equal(t, DeviceF2, m.Device)
	assert.Equal(t, KindIdentity, m.Kind)
	assert.Equal(t, DeviceFingerprint(), m.Payload)
}

func TestDeserializeResponse(t *testing.T) {
	m, ok := Deserialize([]byte{82, 0, 116, 0, 17, 1})

	require.True(t, ok)
	assert.Equal(t, KindResponse, m.Kind)
	assert.Equal(t, []byte{17, 1}, m.Payload)
}

func TestDeserializeRejects(t *testing.T) {
	tests := map[string][]byte{
		"empty":        nil,
		"short":        {82, 0, 116},
		"unknown kind": {82, 0, 116, 99, 1},
		"request code": {82, 0, 116, 70, 1},
	}

	for name, frame := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := Deserialize(frame)
			assert.False(t, ok)
		})
	}
}

func TestDeserializeCopiesPayload(t *testing.T) {
	frame := []byte{82, 0, 116, 69, 17, 1}

	m, ok := Deserialize(frame)
	require.True(t, ok)

	frame[5] = 0
	assert.Equal(t, []byte{17, 1}, m.Payload)
}

func TestRoundTrip(t *testing.T) {
	for _, kind := range Kinds {
		if !kind.Request.Valid || !kind.Response.Valid {
			continue
		}

		t.Run(kind.Name, func(t *testing.T) {
			m := Message{
				Manufacturer: ManufacturerZoom,
				Device:       DeviceF2,
				Kind:         kind,
				Payload:      []byte{1, 2, 3},
			}

			frame, err := Serialize(m)
			require.NoError(t, err)

			// Replies carry the response code.
			frame[3] = kind.Response.Value

			decoded, ok := Deserialize(frame)
			require.True(t, ok)
			assert.Equal(t, m, decoded)
		})
	}
}

func TestKindLookup(t *testing.T) {
	k, ok := KindByResponse(69)
	require.True(t, ok)
	assert.Equal(t, KindParameter, k)

	k, ok = KindByRequest(105)
	require.True(t, ok)
	assert.Equal(t, KindUnmountCard, k)

	_, ok = KindByRequest(0)
	assert.False(t, ok)
}
