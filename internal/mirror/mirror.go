package mirror

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/gridsheet/internal/ctxlog"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// EventCellUpdated is the event name emitted for every re-rendered cell.
const EventCellUpdated = "cell_updated"

// DefaultTimeout bounds the wait for the initial connection.
const DefaultTimeout = 15 * time.Second

// Options configures the socket.io connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	// Timeout defaults to DefaultTimeout when zero.
	Timeout time.Duration
}

// emitter is the part of *socket.Socket the publisher needs.
type emitter interface {
	Emit(ev string, args ...any) error
	Disconnect() *socket.Socket
	Id() string
}

// Publisher forwards sheet updates to a connected socket.io client.
type Publisher struct {
	io     emitter
	logger *slog.Logger
}

var _ sheet.Observer = (*Publisher)(nil)

// Connect dials the server and waits until the namespace is joined.
func Connect(ctx context.Context, o Options) (*Publisher, error) {
	logger := ctxlog.FromContext(ctx).With("component", "mirror", "url", o.URL)
	logger.Info("Connecting mirror...")

	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mirror URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("mirror URL %q must include scheme and host", o.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Mirror connected", "sid", io.Id())
		signal(connectChan, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := connectError(errs...)
		logger.Debug("Mirror connect_error fired", "error", err)
		signal(connectChan, err)
	})

	io.Connect()

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("mirror connection failed: %w", err)
		}
		return newPublisher(io, logger), nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for mirror connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for mirror connection", timeout)
	}
}

// signal delivers the first connection outcome. Later ones are dropped since
// Connect has stopped listening by then.
func signal(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// connectError turns the arguments of a connect_error event into an error.
func connectError(args ...any) error {
	if len(args) == 0 {
		return errors.New("connect_error without details")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}

func newPublisher(io emitter, logger *slog.Logger) *Publisher {
	return &Publisher{io: io, logger: logger}
}

// CellUpdated emits one cell_updated event. Failures are logged; the sheet
// never waits on the mirror.
func (p *Publisher) CellUpdated(u sheet.Update) {
	data := Payload(u)
	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		if b, err := json.Marshal(data); err == nil {
			p.logger.Debug("Emitting cell update.", "data", string(b))
		}
	}
	if err := p.io.Emit(EventCellUpdated, data); err != nil {
		p.logger.Warn("Mirror emit failed.", "cell", u.At.String(), "error", err)
	}
}

// Close disconnects the client.
func (p *Publisher) Close() error {
	p.logger.Info("Closing mirror", "sid", p.io.Id())
	p.io.Disconnect()
	return nil
}

// Payload builds the event body for u. The error field is the error code
// name for error cells and nil otherwise.
func Payload(u sheet.Update) map[string]any {
	var code any
	if u.Tag == sheet.TagError {
		code = u.Code.String()
	}
	return map[string]any{
		"cell":   u.At.String(),
		"text":   u.Text,
		"type":   u.Tag.String(),
		"error":  code,
		"manual": u.Manual,
	}
}
