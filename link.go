package f2

import (
	"io"
	"sync"

	"github.com/basilfx/go-utilities/taskrunner"
	"github.com/twinj/uuid"
)

// Listener represets the identifier of a listener.
type Listener uuid.UUID

// WriterChannelSize is the size of the writer channel.
const WriterChannelSize = 32

// ListenerChannelSize is the size of the channel that is created for each
// listener.
const ListenerChannelSize = 32

// Link carries SysEx frames over a raw MIDI byte stream.
type Link struct {
	stream io.ReadWriter

	taskRunner *taskrunner.TaskRunner

	writer    chan []byte
	listeners map[Listener]chan []byte
	lock      sync.RWMutex
}

// New returns a new instance initilized instance of Link.
func New() *Link {
	return &Link{
		writer:     make(chan []byte, WriterChannelSize),
		listeners:  map[Listener]chan []byte{},
		taskRunner: taskrunner.New(),
	}
}

// Register interest in received frames.
func (l *Link) Register() (Listener, chan []byte) {
	c := make(chan []byte, ListenerChannelSize)
	id := Listener(uuid.NewV4())

	l.lock.Lock()
	defer l.lock.Unlock()

	l.listeners[id] = c

	return id, c
}

// Unregister interest in received frames. The listener channel is closed.
func (l *Link) Unregister(id Listener) {
	l.lock.Lock()
	defer l.lock.Unlock()

	c, ok := l.listeners[id]

	if !ok {
		return
	}

	delete(l.listeners, id)

	close(c)
}

// Write a frame to the link. The frame must not contain SysEx delimiters.
func (l *Link) Write(frame []byte) error {
	select {
	case l.writer <- frame:
		return nil
	default:
		return ErrWriterFull
	}
}

// Serve a link.
func (l *Link) Serve(stream io.ReadWriter) {
	l.stream = stream

	l.taskRunner.RunWithCancel("Link.Writer", l.writerTask)
	l.taskRunner.RunWithCancel("Link.Reader", l.readerTask)

	// Wait for both goroutines to complete.
	l.taskRunner.Wait()
}

// Shutdown the link. This does not close the underlying stream.
func (l *Link) Shutdown() {
	if l.taskRunner != nil {
		l.taskRunner.Cancel()
	}
}
