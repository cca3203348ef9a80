package f2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceFingerprintIsCopy(t *testing.T) {
	a := DeviceFingerprint()
	a[0] = 0

	assert.Equal(t, []byte{82, 116, 0, 1, 0}, DeviceFingerprint())
}

func TestParameterLookup(t *testing.T) {
	p, ok := ParameterByName("lowcut")
	assert.True(t, ok)
	assert.Equal(t, ParamLowcut, p)

	p, ok = ParameterByRequestID(6)
	assert.True(t, ok)
	assert.Equal(t, ParamRecFilenameUser, p)

	_, ok = ParameterByName("gain")
	assert.False(t, ok)
}
