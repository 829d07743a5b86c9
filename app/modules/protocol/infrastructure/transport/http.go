package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// HTTPPort is the production system's fixed web API port.
const HTTPPort = 8088

// HTTPTransport issues each command as GET /api/?Function=<op>&<selector>.
type HTTPTransport struct {
	baseURL string
	encoder protocoldomain.Encoder
	client  *http.Client
}

// HTTPBaseURL builds the API URL for host on the fixed web port.
func HTTPBaseURL(host string) string {
	return "http://" + net.JoinHostPort(host, strconv.Itoa(HTTPPort)) + "/api/"
}

// NewHTTPTransport creates a transport against baseURL, e.g. http://host:8088/api/.
func NewHTTPTransport(baseURL string, encoder protocoldomain.Encoder, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		encoder: encoder,
		client:  &http.Client{Timeout: timeout},
	}
}

// Send issues the command. Non-2xx replies are reported as negative responses.
func (t *HTTPTransport) Send(ctx context.Context, cmd protocoldomain.Command) (protocoldomain.Response, error) {
	url := t.baseURL + "?" + t.encoder.Query(cmd)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return protocoldomain.Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return protocoldomain.Response{}, &shared.NetworkError{Endpoint: t.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return protocoldomain.Response{}, &shared.NetworkError{Endpoint: t.baseURL, Err: fmt.Errorf("read body: %w", err)}
	}

	msg := strings.TrimSpace(string(body))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg == "" {
			msg = resp.Status
		}
		return protocoldomain.Response{OK: false, Message: msg}, nil
	}
	return protocoldomain.Response{OK: true, Message: msg}, nil
}

// Close is a no-op; HTTP connections are pooled by the client.
func (t *HTTPTransport) Close() error { return nil }
