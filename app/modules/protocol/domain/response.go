package protocoldomain

import (
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// Response is a parsed reply line from the production system.
type Response struct {
	OK      bool
	Message string
}

// ProtocolError is a negative ("ER") reply. It is logged by the queue and never retried.
type ProtocolError struct {
	Command string
	Message string
}

func (e *ProtocolError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("production system rejected %q: %s", e.Command, e.Message)
}

func (e *ProtocolError) Unwrap() error { return shared.ErrProtocol }

// ParseResponse classifies a reply line. Replies look like
// "FUNCTION OK Completed" or "FUNCTION ER Input not found"; the leading verb is optional.
func ParseResponse(line string) (Response, error) {
	fields := strings.Fields(strings.TrimRight(line, "\r\n"))
	if len(fields) > 0 && fields[0] == "FUNCTION" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return Response{}, fmt.Errorf("%w: empty reply", shared.ErrProtocol)
	}

	switch fields[0] {
	case "OK":
		return Response{OK: true, Message: strings.Join(fields[1:], " ")}, nil
	case "ER":
		return Response{OK: false, Message: strings.Join(fields[1:], " ")}, nil
	default:
		return Response{}, fmt.Errorf("%w: unrecognised reply %q", shared.ErrProtocol, line)
	}
}
