package f2

import (
	"context"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

func (l *Link) writerTask(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Debugf("Writer task stopped.")
			return
		case frame := <-l.writer:
			log.Debugf("Link outgoing: %v", frame)

			err := WriteFrame(l.stream, frame)

			if errors.Is(err, ErrInvalidByte) {
				log.Errorf("Dropping invalid frame: %v", err)
				continue
			} else if err != nil {
				log.Errorf("Error while writing: %v", err)
				return
			}
		}
	}
}

func (l *Link) readerTask(ctx context.Context) {
	reader := NewFrameReader(l.stream)

	for {
		frame, err := reader.ReadFrame()

		if err != nil {
			if err != io.EOF {
				log.Errorf("Error while reading: %v", err)
			}

			return
		}

		select {
		case <-ctx.Done():
			log.Infof("Reader task stopped.")
			return
		default:
			// Pass on.
		}

		log.Debugf("Link incoming: %v", frame)

		// Notify all reading listeners of a new frame.
		l.lock.RLock()

		for id, v := range l.listeners {
			select {
			case v <- frame:
				continue
			default:
				log.Errorf("Channel of listener '%v' full.", id)
			}
		}

		l.lock.RUnlock()
	}
}
