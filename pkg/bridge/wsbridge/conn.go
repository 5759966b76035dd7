package wsbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	drifterrors "github.com/go-drift/animatedborder/pkg/errors"
	"github.com/go-drift/animatedborder/pkg/platform"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = time.Second
	// Maximum message size allowed from the renderer.
	maxMessageSize = 1 << 20

	defaultPingInterval = 5 * time.Second
	defaultCallTimeout  = 10 * time.Second

	// Event frames queued for delivery before the reader waits.
	eventBacklog = 64
)

// ErrPongDeadlineExceeded is returned by Run when the renderer stops
// answering pings.
var ErrPongDeadlineExceeded = errors.New("wsbridge: renderer disconnect, pong deadline exceeded")

// Conn is a [platform.NativeBridge] over one websocket connection.
type Conn struct {
	ws     *websocket.Conn
	logger *slog.Logger

	pingInterval time.Duration
	callTimeout  time.Duration

	// writeSem serializes writes; websocket allows one concurrent writer.
	writeSem chan struct{}

	nextID  atomic.Int64
	mu      sync.Mutex
	pending map[int64]chan Message

	// events carries stream frames from the reader to deliverEvents, so
	// listeners never run on the goroutine that reads call results.
	events chan Message

	lastPong  atomic.Int64
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger routes connection records to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Conn) {
		c.logger = l
	}
}

// WithPingInterval sets how often the renderer is pinged. The connection is
// considered dead after four intervals without a pong.
func WithPingInterval(d time.Duration) Option {
	return func(c *Conn) {
		c.pingInterval = d
	}
}

// WithCallTimeout bounds method calls whose context has no deadline.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Conn) {
		c.callTimeout = d
	}
}

// NewConn wraps an established websocket. Call Run to start serving it.
func NewConn(ws *websocket.Conn, opts ...Option) *Conn {
	c := &Conn{
		ws:           ws,
		logger:       slog.New(slog.DiscardHandler),
		pingInterval: defaultPingInterval,
		callTimeout:  defaultCallTimeout,
		writeSem:     make(chan struct{}, 1),
		pending:      make(map[int64]chan Message),
		events:       make(chan Message, eventBacklog),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run reads frames and pings the renderer until ctx is done, the renderer
// disconnects, or a protocol error occurs. It returns nil on a normal close.
// Pending calls fail with [platform.ErrNotConnected] once Run returns.
func (c *Conn) Run(ctx context.Context) error {
	c.ws.SetReadLimit(maxMessageSize)
	c.lastPong.Store(time.Now().UnixNano())
	c.ws.SetPongHandler(func(string) error {
		c.lastPong.Store(time.Now().UnixNano())
		return nil
	})

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return c.readMessages(groupCtx)
	})
	group.Go(func() error {
		return c.pingPong(groupCtx)
	})
	group.Go(func() error {
		return c.deliverEvents(groupCtx)
	})
	group.Go(func() error {
		// Unblocks the reader when the group is canceled.
		select {
		case <-groupCtx.Done():
		case <-c.done:
		}
		c.Close()
		return nil
	})

	err := group.Wait()
	c.failPending()
	if isClosure(err) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Close sends a close frame and closes the socket. It is safe to call more
// than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}

// Done is closed when the connection is closed.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// InvokeMethod calls a renderer method, waiting at most the call timeout.
func (c *Conn) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return c.InvokeMethodContext(context.Background(), channel, method, args)
}

// InvokeMethodContext calls a renderer method and waits for its result. A
// context without a deadline is bounded by the call timeout.
func (c *Conn) InvokeMethodContext(ctx context.Context, channel, method string, args []byte) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}
	id := c.nextID.Add(1)
	reply := make(chan Message, 1)

	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return nil, platform.ErrNotConnected
	}
	c.pending[id] = reply
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.pending != nil {
			delete(c.pending, id)
		}
		c.mu.Unlock()
	}()

	err := c.send(ctx, Message{
		Kind:    KindInvoke,
		ID:      id,
		Channel: channel,
		Method:  method,
		Payload: json.RawMessage(args),
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s.%s: %w", platform.ErrCanceled, channel, method, ctx.Err())
	case <-c.done:
		return nil, platform.ErrNotConnected
	case msg, ok := <-reply:
		if !ok {
			return nil, platform.ErrNotConnected
		}
		if msg.Error != nil {
			return nil, msg.Error
		}
		return msg.Payload, nil
	}
}

// StartEventStream asks the renderer to start sending events for channel.
func (c *Conn) StartEventStream(channel string) error {
	return c.send(context.Background(), Message{Kind: KindStartStream, Channel: channel})
}

// StopEventStream asks the renderer to stop sending events for channel.
func (c *Conn) StopEventStream(channel string) error {
	return c.send(context.Background(), Message{Kind: KindStopStream, Channel: channel})
}

// send writes msg as one text frame.
func (c *Conn) send(ctx context.Context, msg Message) error {
	select {
	case <-c.done:
		return platform.ErrNotConnected
	case <-ctx.Done():
		return ctx.Err()
	case c.writeSem <- struct{}{}:
	}
	defer func() { <-c.writeSem }()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}
	if err := c.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("write %s: %w", msg.Kind, err)
	}
	return nil
}

// pingPong runs the liveness check. It relies on readMessages running so the
// pong handler is called.
func (c *Conn) pingPong(ctx context.Context) error {
	pongWait := 4 * c.pingInterval
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if time.Since(time.Unix(0, c.lastPong.Load())) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := c.ping(); err != nil {
				return err
			}
		}
	}
}

func (c *Conn) ping() error {
	c.writeSem <- struct{}{}
	defer func() { <-c.writeSem }()
	err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
	if isError(err) {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// readMessages handles frames from the renderer. Errors returned by websocket
// read methods are permanent, so any error ends the connection.
func (c *Conn) readMessages(ctx context.Context) error {
	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				c.report("wsbridge.read", "", err)
				continue
			}
			return err
		}
		c.handle(ctx, msg)
	}
}

func (c *Conn) handle(ctx context.Context, msg Message) {
	switch msg.Kind {
	case KindResult:
		c.mu.Lock()
		reply, ok := c.pending[msg.ID]
		c.mu.Unlock()
		if !ok {
			c.logger.Debug("result for unknown call", slog.Int64("id", msg.ID))
			return
		}
		select {
		case reply <- msg:
		default:
			c.logger.Debug("duplicate result", slog.Int64("id", msg.ID))
		}
	case KindInvoke:
		// Handlers may call back into the renderer, which needs this reader.
		go c.serveCall(ctx, msg)
	case KindEvent, KindEventError, KindEventDone:
		select {
		case c.events <- msg:
		case <-ctx.Done():
		}
	default:
		c.report("wsbridge.handle", msg.Channel, fmt.Errorf("unknown message kind %q", msg.Kind))
	}
}

// deliverEvents hands stream frames to their event channels in arrival
// order.
func (c *Conn) deliverEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.events:
			c.deliverEvent(msg)
		}
	}
}

// deliverEvent passes one frame to the platform, which reports its own
// failures.
func (c *Conn) deliverEvent(msg Message) {
	switch msg.Kind {
	case KindEvent:
		_ = platform.HandleEvent(msg.Channel, msg.Payload)
	case KindEventError:
		code, message := "error", ""
		if msg.Error != nil {
			code, message = msg.Error.Code, msg.Error.Message
		}
		_ = platform.HandleEventError(msg.Channel, code, message)
	case KindEventDone:
		_ = platform.HandleEventDone(msg.Channel)
	}
}

func (c *Conn) serveCall(ctx context.Context, msg Message) {
	reply := Message{Kind: KindResult, ID: msg.ID, Channel: msg.Channel, Method: msg.Method}
	result, err := platform.HandleMethodCall(msg.Channel, msg.Method, msg.Payload)
	if err != nil {
		reply.Error = toChannelError(err)
	} else {
		reply.Payload = result
	}
	if err := c.send(ctx, reply); err != nil && !errors.Is(err, platform.ErrNotConnected) {
		c.report("wsbridge.reply", msg.Channel, err)
	}
}

func toChannelError(err error) *platform.ChannelError {
	var cerr *platform.ChannelError
	if errors.As(err, &cerr) {
		return cerr
	}
	code := "error"
	switch {
	case errors.Is(err, platform.ErrChannelNotFound):
		code = "channel_not_found"
	case errors.Is(err, platform.ErrMethodNotFound):
		code = "method_not_found"
	case errors.Is(err, platform.ErrInvalidArguments):
		code = "invalid_arguments"
	}
	var perr *drifterrors.ParseError
	if errors.As(err, &perr) {
		code = "invalid_arguments"
	}
	return platform.NewChannelError(code, err.Error())
}

func (c *Conn) failPending() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, reply := range pending {
		close(reply)
	}
}

func (c *Conn) report(op, channel string, err error) {
	drifterrors.Report(&drifterrors.DriftError{
		Op:      op,
		Kind:    drifterrors.KindPlatform,
		Channel: channel,
		Err:     err,
	})
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
