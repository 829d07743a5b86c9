package transport

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// TCPPort is the production system's fixed TCP API port.
const TCPPort = 8099

const defaultDialTimeout = 5 * time.Second

// TCPTransport writes line commands over one persistent connection and reads
// one reply line per command.
type TCPTransport struct {
	addr    string
	encoder protocoldomain.Encoder
	logger  *slog.Logger
	dialer  net.Dialer

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// TCPAddress joins a host with the fixed TCP port.
func TCPAddress(host string) string {
	return net.JoinHostPort(host, strconv.Itoa(TCPPort))
}

// DialTCP opens the persistent connection. A failed initial connect is a
// configuration error: the process cannot drive graphics without it.
func DialTCP(ctx context.Context, addr string, encoder protocoldomain.Encoder, logger *slog.Logger) (*TCPTransport, error) {
	t := &TCPTransport{
		addr:    addr,
		encoder: encoder,
		logger:  logger,
		dialer:  net.Dialer{Timeout: defaultDialTimeout},
	}
	if err := t.connect(ctx); err != nil {
		return nil, &shared.ConfigurationError{Component: "production tcp " + addr, Err: err}
	}
	logger.InfoContext(ctx, "Connected to production system", slog.String("addr", addr))
	return t, nil
}

func (t *TCPTransport) connect(ctx context.Context) error {
	conn, err := t.dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return err
	}
	t.conn = conn
	t.reader = bufio.NewReader(conn)
	return nil
}

// Send writes one command and blocks until its reply line arrives.
func (t *TCPTransport) Send(ctx context.Context, cmd protocoldomain.Command) (protocoldomain.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		t.logger.WarnContext(ctx, "Reconnecting to production system", slog.String("addr", t.addr))
		if err := t.connect(ctx); err != nil {
			return protocoldomain.Response{}, &shared.NetworkError{Endpoint: t.addr, Err: err}
		}
	}

	// Cancelling ctx expires the deadline, unblocking a peer that never replies.
	conn := t.conn
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	line := t.encoder.Line(cmd)
	if _, err := conn.Write([]byte(line)); err != nil {
		return protocoldomain.Response{}, t.failLocked(ctx, "write", err)
	}

	reply, err := t.reader.ReadString('\n')
	if err != nil {
		return protocoldomain.Response{}, t.failLocked(ctx, "read", err)
	}

	return protocoldomain.ParseResponse(reply)
}

// failLocked drops the connection and reports the I/O failure, or the
// cancellation that caused it.
func (t *TCPTransport) failLocked(ctx context.Context, op string, err error) error {
	t.dropLocked()
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return &shared.NetworkError{Endpoint: t.addr, Err: fmt.Errorf("%s: %w", op, err)}
}

// dropLocked closes a broken connection so the next Send redials once.
func (t *TCPTransport) dropLocked() {
	if t.conn != nil {
		_ = t.conn.Close()
	}
	t.conn = nil
	t.reader = nil
}

// Close closes the connection.
func (t *TCPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	t.reader = nil
	return err
}
