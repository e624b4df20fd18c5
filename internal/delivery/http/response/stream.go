package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EventStream writes server-sent events. It is not safe for concurrent use;
// only the handler goroutine may write.
type EventStream struct {
	res *echo.Response
	seq uint64
}

// OpenEventStream sends the stream headers and flushes them to the client.
func OpenEventStream(c echo.Context) *EventStream {
	res := c.Response()
	h := res.Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set(echo.HeaderCacheControl, "no-cache")
	h.Set(echo.HeaderConnection, "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	return &EventStream{res: res}
}

// Send writes data as one JSON encoded event named event.
func (s *EventStream) Send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}

	s.seq++
	if _, err := fmt.Fprintf(s.res, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return errors.Wrap(err, "write event")
	}
	s.res.Flush()

	return nil
}

// Heartbeat writes a comment line that keeps idle proxies from closing the stream.
func (s *EventStream) Heartbeat() error {
	if _, err := fmt.Fprint(s.res, ": ping\n\n"); err != nil {
		return errors.Wrap(err, "write heartbeat")
	}
	s.res.Flush()

	return nil
}
