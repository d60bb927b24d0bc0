package dummy

import (
	"errors"
	"io"
	"net"
	"time"
)

var errClosed = errors.New("dummy: use of closed connection")

// Conn replays the scripted chunks on reads, one chunk (or its head, if the caller asks
// for less) per call, and records everything written into it. Once the script is
// exhausted, reads return ReadErr, which is io.EOF by default.
type Conn struct {
	chunks  [][]byte
	ReadErr error
	// WriteErr, if set, is returned by every write.
	WriteErr error
	Written  []byte
	Reads    int
	Closed   bool
}

func NewConn(chunks ...string) *Conn {
	c := &Conn{ReadErr: io.EOF}
	for _, chunk := range chunks {
		c.chunks = append(c.chunks, []byte(chunk))
	}

	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.Closed {
		return 0, errClosed
	}

	if len(c.chunks) == 0 {
		return 0, c.ReadErr
	}

	c.Reads++
	n = copy(b, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.Closed {
		return 0, errClosed
	}

	if c.WriteErr != nil {
		return 0, c.WriteErr
	}

	c.Written = append(c.Written, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	c.Closed = true
	return nil
}

func (*Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (*Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50505}
}

func (*Conn) SetDeadline(time.Time) error {
	return nil
}

func (*Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (*Conn) SetWriteDeadline(time.Time) error {
	return nil
}
