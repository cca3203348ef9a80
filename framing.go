package f2

import (
	"bufio"
	"fmt"
	"io"
)

// SysEx delimiters.
const (
	SysExStart byte = 0xf0
	SysExEnd   byte = 0xf7
)

// MaxFrameSize bounds the number of data bytes collected for one frame.
const MaxFrameSize = 1024

// WriteFrame writes data wrapped in SysEx delimiters.
func WriteFrame(w io.Writer, data []byte) error {
	for i, b := range data {
		if b > 0x7f {
			return fmt.Errorf("frame byte %d is %#x: %w", i, b, ErrInvalidByte)
		}
	}

	buf := make([]byte, 0, len(data)+2)
	buf = append(buf, SysExStart)
	buf = append(buf, data...)
	buf = append(buf, SysExEnd)

	_, err := w.Write(buf)

	return err
}

// FrameReader extracts SysEx frames from a raw MIDI byte stream.
type FrameReader struct {
	reader *bufio.Reader
}

// NewFrameReader returns a FrameReader reading from r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{
		reader: bufio.NewReader(r),
	}
}

// ReadFrame returns the data bytes of the next complete frame.
//
// Realtime bytes inside a frame are skipped. A frame interrupted by another
// status byte, or exceeding MaxFrameSize, is discarded. Bytes outside a frame
// are ignored.
func (f *FrameReader) ReadFrame() ([]byte, error) {
	var frame []byte
	inFrame := false

	for {
		b, err := f.reader.ReadByte()

		if err != nil {
			return nil, err
		}

		switch {
		case b == SysExStart:
			frame = frame[:0]
			inFrame = true
		case !inFrame:
			continue
		case b == SysExEnd:
			return frame, nil
		case b >= 0xf8:
			continue
		case b >= 0x80:
			inFrame = false
		case len(frame) >= MaxFrameSize:
			inFrame = false
		default:
			frame = append(frame, b)
		}
	}
}
