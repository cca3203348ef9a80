package f2_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	f2 "github.com/justjanne/zoom-f2-api"
	"github.com/justjanne/zoom-f2-api/emulator"
)

func setup(t *testing.T) (*f2.Client, *emulator.Device) {
	device := emulator.New()
	link := f2.New()

	go link.Serve(device)

	client := f2.NewClient(link)

	t.Cleanup(func() {
		client.Close()
		link.Shutdown()
		device.Close()
	})

	return client, device
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func TestEmulatorIdentity(t *testing.T) {
	client, _ := setup(t)

	fingerprint, err := client.RequestIdentity(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, f2.DeviceFingerprint(), fingerprint)

	assert.NoError(t, client.VerifyIdentity(testContext(t)))
}

func TestEmulatorIdentityMismatch(t *testing.T) {
	client, device := setup(t)
	device.SetFingerprint([]byte{82, 117, 0, 1, 0})

	err := client.VerifyIdentity(testContext(t))

	var mismatch *f2.IdentityMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []byte{82, 117, 0, 1, 0}, mismatch.Fingerprint)
}

func TestEmulatorInfo(t *testing.T) {
	client, _ := setup(t)

	info, err := client.Info(testContext(t))
	require.NoError(t, err)

	assert.Equal(t, emulator.VersionBoot, info.VersionBootloader)
	assert.Equal(t, emulator.VersionMain, info.VersionFirmware)
	assert.True(t, info.BLEDeviceExists)
	assert.True(t, info.Lowcut)
	assert.Equal(t, byte(80), info.HeadphoneVolume)
	assert.Equal(t, "ZF2", info.RecFilenameAuto)
	assert.Equal(t, "ABC", info.RecFilenameUser)
	assert.Equal(t, byte(2), info.BatteryType)
	assert.Equal(t, byte(3), info.AutoPowerOff)
}

func TestEmulatorChange(t *testing.T) {
	client, device := setup(t)
	ctx := testContext(t)

	require.NoError(t, client.SetLowcut(ctx, false))
	lowcut, err := client.Lowcut(ctx)
	require.NoError(t, err)
	assert.False(t, lowcut)

	require.NoError(t, client.SetHeadphoneVolume(ctx, 42))
	volume, err := client.HeadphoneVolume(ctx)
	require.NoError(t, err)
	assert.Equal(t, byte(42), volume)

	require.NoError(t, client.SetRecFilenameUser(ctx, "SESSION"))
	name, err := client.RecFilenameUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SESSIO", name)
	assert.Len(t, device.Value(f2.ParamRecFilenameUser), 50)
}

func TestEmulatorConcurrentQueries(t *testing.T) {
	client, device := setup(t)
	ctx := testContext(t)

	var wg sync.WaitGroup

	for _, p := range f2.Parameters {
		if p.Type != f2.ValueUint {
			continue
		}

		p := p
		wg.Add(1)

		go func() {
			defer wg.Done()

			v, err := client.RequestUint(ctx, p)

			assert.NoError(t, err)
			assert.Equal(t, device.Value(p)[0], v, p.Name)
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, client.Pending())
}

func TestEmulatorNoReply(t *testing.T) {
	client, device := setup(t)
	device.Silence(f2.KindParameter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Lowcut(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, client.Pending())
	assert.Eventually(t, func() bool {
		return device.Received(f2.KindParameter) == 1
	}, time.Second, time.Millisecond)
}

func TestEmulatorUnmatched(t *testing.T) {
	client, device := setup(t)

	unmatched := make(chan []byte, 1)
	client.SetUnmatchedHandler(func(frame []byte) {
		unmatched <- frame
	})

	require.NoError(t, device.Inject([]byte{82, 0, 116, 0, 17, 1}))

	select {
	case frame := <-unmatched:
		assert.Equal(t, []byte{82, 0, 116, 0, 17, 1}, frame)
	case <-time.After(time.Second):
		require.FailNow(t, "no unmatched frame")
	}
}

func TestEmulatorCommands(t *testing.T) {
	client, device := setup(t)

	require.NoError(t, client.AppStart())
	require.NoError(t, client.ForgetTimecode())

	assert.Eventually(t, func() bool {
		return device.Received(f2.KindAppStart) == 1 && device.Received(f2.KindForgetTimecode) == 1
	}, time.Second, time.Millisecond)
}

func TestEmulatorInvalidFrameDropped(t *testing.T) {
	device := emulator.New()
	link := f2.New()

	go link.Serve(device)

	client := f2.NewClient(link)

	t.Cleanup(func() {
		client.Close()
		link.Shutdown()
		device.Close()
	})

	require.NoError(t, link.Write([]byte{82, 0, 116, 0x80}))

	// The link keeps serving after dropping the frame.
	assert.NoError(t, client.VerifyIdentity(testContext(t)))
}
