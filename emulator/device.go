// Package emulator provides an in-memory Zoom F2 that answers SysEx frames
// the way the recorder does.
package emulator

import (
	"io"
	"sync"

	"github.com/acomagu/bufpipe"
	log "github.com/sirupsen/logrus"

	f2 "github.com/justjanne/zoom-f2-api"
)

// Versions reported by the emulated device.
var (
	VersionBoot = []byte{1, 0, 0}
	VersionMain = []byte{1, 1, 0}
)

// Device is the host side of an emulated F2.
type Device struct {
	out1 io.ReadCloser
	in1  io.WriteCloser

	out2 io.ReadCloser
	in2  io.WriteCloser

	fingerprint []byte
	values      map[byte][]byte
	silenced    map[string]bool
	received    map[string]int

	lock sync.Mutex
}

// New returns an emulated device with default settings.
func New() *Device {
	d := Device{
		fingerprint: f2.DeviceFingerprint(),
		values: map[byte][]byte{
			f2.ParamBLEDeviceExists.RequestID:   {1},
			f2.ParamLowcut.RequestID:            {1},
			f2.ParamHeadphoneVolume.RequestID:   {80},
			f2.ParamRecFormat.RequestID:         {1},
			f2.ParamRecFilenameType.RequestID:   {0},
			f2.ParamRecFilenameAuto.RequestID:   f2.EncodeText("ZF2", 6, 50),
			f2.ParamRecFilenameUser.RequestID:   f2.EncodeText("ABC", 6, 50),
			f2.ParamDateTime.RequestID:          {0},
			f2.ParamBatteryType.RequestID:       {2},
			f2.ParamAutoPowerOff.RequestID:      {3},
			f2.ParamBluetoothFunction.RequestID: {0},
		},
		silenced: map[string]bool{},
		received: map[string]int{},
	}

	d.out1, d.in1 = bufpipe.New(nil)
	d.out2, d.in2 = bufpipe.New(nil)

	// Start emulation.
	go d.emulate()

	return &d
}

// SetFingerprint changes the identity payload.
func (d *Device) SetFingerprint(fingerprint []byte) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.fingerprint = append([]byte(nil), fingerprint...)
}

// Value returns the stored value of a parameter.
func (d *Device) Value(p f2.Parameter) []byte {
	d.lock.Lock()
	defer d.lock.Unlock()

	return append([]byte(nil), d.values[p.RequestID]...)
}

// Silence stops the device from answering requests of the given kind.
func (d *Device) Silence(kind f2.MessageKind) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.silenced[kind.Name] = true
}

// Received returns the number of frames of a kind received so far.
func (d *Device) Received(kind f2.MessageKind) int {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.received[kind.Name]
}

// Inject sends an unsolicited frame to the host.
func (d *Device) Inject(frame []byte) error {
	return f2.WriteFrame(d.in1, frame)
}

func (d *Device) emulate() {
	reader := f2.NewFrameReader(d.out2)

	for {
		frame, err := reader.ReadFrame()

		if err != nil {
			return
		}

		reply := d.handle(frame)

		if reply == nil {
			continue
		}

		if err := f2.WriteFrame(d.in1, reply); err != nil {
			log.Errorf("Emulator unable to reply: %v", err)
			return
		}
	}
}

// handle returns the reply to a frame, or nil.
func (d *Device) handle(frame []byte) []byte {
	if len(frame) < 4 {
		return nil
	}

	kind, ok := f2.KindByRequest(frame[3])

	if !ok {
		log.Warnf("Emulator received unknown frame: %v", frame)
		return nil
	}

	payload := frame[4:]

	d.lock.Lock()
	defer d.lock.Unlock()

	d.received[kind.Name]++

	if d.silenced[kind.Name] {
		return nil
	}

	header := func(k f2.MessageKind) []byte {
		return []byte{byte(f2.ManufacturerZoom), 0, byte(f2.DeviceF2), k.Response.Value}
	}

	switch kind {
	case f2.KindIdentity:
		return append(header(kind), d.fingerprint...)
	case f2.KindFirmwareVersion:
		if len(payload) < 1 {
			return nil
		}

		version := VersionMain

		if f2.VersionKind(payload[0]) == f2.VersionBoot {
			version = VersionBoot
		}

		reply := append(header(kind), payload[0])
		return append(reply, version...)
	case f2.KindParameter:
		if len(payload) < 1 {
			return nil
		}

		p, ok := f2.ParameterByRequestID(payload[0])

		if !ok {
			return nil
		}

		reply := append(header(kind), p.ResponseID)
		return append(reply, d.values[p.RequestID]...)
	case f2.KindParameterChange:
		if len(payload) < 1 {
			return nil
		}

		p, ok := f2.ParameterByRequestID(payload[0])

		if !ok || !p.Writable {
			return nil
		}

		d.values[p.RequestID] = append([]byte(nil), payload[1:]...)

		reply := append(header(f2.KindResponse), p.ResponseID)
		return append(reply, payload[1:]...)
	default:
		// Commands without a reply.
		return nil
	}
}

// Read implements the read method.
func (d *Device) Read(p []byte) (n int, err error) {
	return d.out1.Read(p)
}

// Write implements the write method.
func (d *Device) Write(p []byte) (n int, err error) {
	return d.in2.Write(p)
}

// Close will close the emulated device.
func (d *Device) Close() error {
	d.out1.Close()
	d.in1.Close()

	d.out2.Close()
	d.in2.Close()

	return nil
}
