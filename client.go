package f2

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/basilfx/go-utilities/taskrunner"
	log "github.com/sirupsen/logrus"
)

// Transport sends frames and delivers received frames to listeners. Link
// implements it.
type Transport interface {
	Write(frame []byte) error
	Register() (Listener, chan []byte)
	Unregister(id Listener)
}

// Client talks to a single F2 over a transport.
type Client struct {
	transport Transport
	pending   *PendingTable

	listener Listener
	frames   chan []byte

	taskRunner *taskrunner.TaskRunner

	unmatched func(frame []byte)
	lock      sync.RWMutex

	closeOnce sync.Once
}

// NewClient returns a client that dispatches frames received by transport
// until Close is called.
func NewClient(transport Transport) *Client {
	c := &Client{
		transport:  transport,
		pending:    NewPendingTable(),
		taskRunner: taskrunner.New(),
	}

	c.listener, c.frames = transport.Register()
	c.taskRunner.RunWithCancel("Client.Dispatcher", c.dispatcherTask)

	return c
}

// SetUnmatchedHandler sets a handler that is invoked for every received frame
// that resolves no pending request.
func (c *Client) SetUnmatchedHandler(handler func(frame []byte)) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.unmatched = handler
}

// Close stops dispatching and fails all pending requests with
// ErrClientClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.taskRunner.Cancel()
		c.taskRunner.Wait()

		c.transport.Unregister(c.listener)
		c.pending.Close(ErrClientClosed)
	})

	return nil
}

// Pending returns the number of requests awaiting a reply.
func (c *Client) Pending() int {
	return c.pending.Len()
}

func (c *Client) dispatcherTask(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Debugf("Dispatcher task stopped.")
			return
		case frame, ok := <-c.frames:
			if !ok {
				return
			}

			c.dispatch(frame)
		}
	}
}

func (c *Client) dispatch(frame []byte) {
	message, ok := Deserialize(frame)

	if ok && c.pending.Resolve(message) {
		return
	}

	if ok {
		log.Warnf("Received unmatched message: %s", message)
	} else {
		log.Warnf("Received unknown frame: %v", frame)
	}

	c.lock.RLock()
	handler := c.unmatched
	c.lock.RUnlock()

	if handler != nil {
		handler(frame)
	}
}

// request sends message, or joins an identical pending request, and waits for
// the reply matching identity.
func (c *Client) request(ctx context.Context, message Message, identity Identity) (Message, error) {
	frame, err := Serialize(message)

	if err != nil {
		return Message{}, err
	}

	h, _, err := c.pending.RequestOrJoin(identity, func() error {
		return c.transport.Write(frame)
	})

	if err != nil {
		return Message{}, fmt.Errorf("request %s: %w", message.Kind, err)
	}

	return h.Wait(ctx)
}

// Send transmits a fire-and-forget command.
func (c *Client) Send(kind MessageKind) error {
	if kind.Response.Valid || kind == KindParameterChange {
		return fmt.Errorf("send %s: %w", kind, ErrNotFireForget)
	}

	frame, err := Serialize(Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         kind,
	})

	if err != nil {
		return err
	}

	return c.transport.Write(frame)
}

// RequestIdentity returns the identity payload of the device. The request is
// addressed universally, the device replies as itself.
func (c *Client) RequestIdentity(ctx context.Context) ([]byte, error) {
	message := Message{
		Manufacturer: ManufacturerUniversal,
		Device:       DeviceUniversal,
		Kind:         KindIdentity,
	}

	identity := Identity{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindIdentity,
	}

	reply, err := c.request(ctx, message, identity)

	if err != nil {
		return nil, err
	}

	return reply.Payload, nil
}

// VerifyIdentity checks that the device is an F2.
func (c *Client) VerifyIdentity(ctx context.Context) error {
	fingerprint, err := c.RequestIdentity(ctx)

	if err != nil {
		return err
	}

	if !bytes.Equal(fingerprint, DeviceFingerprint()) {
		return &IdentityMismatchError{Fingerprint: fingerprint}
	}

	return nil
}

// RequestVersion returns the version bytes of a firmware image.
func (c *Client) RequestVersion(ctx context.Context, kind VersionKind) ([]byte, error) {
	message := Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindFirmwareVersion,
		Payload:      []byte{byte(kind)},
	}

	reply, err := c.request(ctx, message, IdentityOf(message).WithPrefix(byte(kind)))

	if err != nil {
		return nil, err
	}

	if len(reply.Payload) < 1 {
		return nil, fmt.Errorf("version %d: %w", kind, ErrShortPayload)
	}

	return reply.Payload[1:], nil
}

// RequestParameter queries a parameter and returns the raw reply.
func (c *Client) RequestParameter(ctx context.Context, p Parameter) (Message, error) {
	message := Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindParameter,
		Payload:      []byte{p.RequestID},
	}

	return c.request(ctx, message, IdentityOf(message).WithPrefix(p.ResponseID))
}

// ChangeParameter sets a parameter to the encoded value. The device confirms
// with a generic response frame.
func (c *Client) ChangeParameter(ctx context.Context, p Parameter, value []byte) error {
	if !p.Writable {
		return fmt.Errorf("change %s: %w", p, ErrReadOnly)
	}

	message := Message{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindParameterChange,
		Payload:      append([]byte{p.RequestID}, value...),
	}

	identity := Identity{
		Manufacturer: ManufacturerZoom,
		Device:       DeviceF2,
		Kind:         KindResponse,
		Prefix:       []byte{p.ResponseID},
	}

	_, err := c.request(ctx, message, identity)

	return err
}

// RequestBool queries a boolean parameter.
func (c *Client) RequestBool(ctx context.Context, p Parameter) (bool, error) {
	if p.Type != ValueBool {
		return false, fmt.Errorf("%s: %w", p, ErrWrongType)
	}

	reply, err := c.RequestParameter(ctx, p)

	if err != nil {
		return false, err
	}

	return DecodeBool(reply)
}

// RequestUint queries a numeric parameter.
func (c *Client) RequestUint(ctx context.Context, p Parameter) (byte, error) {
	if p.Type != ValueUint {
		return 0, fmt.Errorf("%s: %w", p, ErrWrongType)
	}

	reply, err := c.RequestParameter(ctx, p)

	if err != nil {
		return 0, err
	}

	return DecodeUint(reply)
}

// RequestText queries a text parameter.
func (c *Client) RequestText(ctx context.Context, p Parameter) (string, error) {
	if p.Type != ValueText {
		return "", fmt.Errorf("%s: %w", p, ErrWrongType)
	}

	reply, err := c.RequestParameter(ctx, p)

	if err != nil {
		return "", err
	}

	return DecodeText(reply)
}

// ChangeBool sets a boolean parameter.
func (c *Client) ChangeBool(ctx context.Context, p Parameter, v bool) error {
	if p.Type != ValueBool {
		return fmt.Errorf("%s: %w", p, ErrWrongType)
	}

	return c.ChangeParameter(ctx, p, EncodeBool(v))
}

// ChangeUint sets a numeric parameter.
func (c *Client) ChangeUint(ctx context.Context, p Parameter, v byte) error {
	if p.Type != ValueUint {
		return fmt.Errorf("%s: %w", p, ErrWrongType)
	}

	value, err := EncodeUint(v)

	if err != nil {
		return fmt.Errorf("change %s: %w", p, err)
	}

	return c.ChangeParameter(ctx, p, value)
}

// ChangeText sets a text parameter, using the fixed width of the parameter.
func (c *Client) ChangeText(ctx context.Context, p Parameter, v string) error {
	if p.Type != ValueText {
		return fmt.Errorf("%s: %w", p, ErrWrongType)
	}

	return c.ChangeParameter(ctx, p, EncodeText(v, p.Significant, p.Width))
}
