package http1

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/indigo-web/solo/http/status"
	"github.com/indigo-web/solo/internal/buffer"
	"github.com/indigo-web/solo/internal/tcp"
)

// ErrClientClosed is returned when the client closes the connection before completing the
// headers. There is nobody to respond to in that case.
var ErrClientClosed = errors.New("client closed the connection")

var (
	crlf       = []byte("\r\n")
	terminator = []byte("\r\n\r\n")
)

// Reader accumulates a request off the connection until the end of its headers.
type Reader struct {
	client tcp.Client
	buff   *buffer.Buffer
}

func NewReader(client tcp.Client, buff *buffer.Buffer) *Reader {
	return &Reader{
		client: client,
		buff:   buff,
	}
}

// Read returns the Request-Line and headers, keeping exactly one trailing CRLF. The returned
// slice is valid until the next call. Errors are either ErrClientClosed, the
// status.ErrRequestEntityTooLarge if the buffer is exhausted without meeting the end of the
// headers, or a wrapped I/O error.
func (r *Reader) Read() ([]byte, error) {
	r.buff.Clear()

	for {
		data, err := r.client.Read(r.buff.Room())
		if len(data) > 0 {
			// the terminator wasn't in the data scanned before, so at most its 3 first bytes
			// may be hanging at the end of it
			window := r.buff.Len() - len(terminator) + 1
			if !r.buff.Append(data) {
				return nil, status.ErrRequestEntityTooLarge
			}

			if end := bytes.Index(r.buff.Since(window), terminator); end != -1 {
				r.buff.Trunc(max(window, 0) + end + len(crlf))
				return r.buff.Bytes(), nil
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrClientClosed
		case err != nil:
			return nil, fmt.Errorf("read request: %w", err)
		case len(data) == 0:
			return nil, ErrClientClosed
		case r.buff.Full():
			return nil, status.ErrRequestEntityTooLarge
		}
	}
}
