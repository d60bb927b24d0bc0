package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/http"
	"github.com/indigo-web/solo/http/mime"
	"github.com/indigo-web/solo/http/status"
	"github.com/indigo-web/solo/internal/accesslog"
	"github.com/indigo-web/solo/internal/buffer"
	"github.com/indigo-web/solo/internal/resource"
	"github.com/indigo-web/solo/internal/tcp"
	"github.com/indigo-web/solo/internal/transport/http1"
)

// Server serves a single request per connection. Buffers are shared among connections,
// therefore Serve must never be called concurrently.
type Server struct {
	cfg        *config.Config
	resolver   *resource.Resolver
	invoker    resource.Invoker
	serializer *http1.Serializer
	reqBuff    *buffer.Buffer
	readBuff   []byte
	log        *accesslog.Logger
}

func NewServer(cfg *config.Config, resolver *resource.Resolver, log *accesslog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		resolver:   resolver,
		invoker:    resource.NewInvoker(cfg.Dynamic),
		serializer: http1.NewSerializer(make([]byte, 0, 256)),
		reqBuff:    buffer.New(cfg.Limits.RequestLine, cfg.Limits.MaxRequestSize()),
		readBuff:   make([]byte, cfg.NET.ReadChunkSize),
		log:        log,
	}
}

// session holds everything bound to the connection for the single request/response cycle.
type session struct {
	id      string
	client  tcp.Client
	started time.Time
	request http.Request
	code    status.Code
	sent    int
	err     error
}

// Serve reads, resolves and answers exactly one request. It doesn't close the connection.
func (s *Server) Serve(ctx context.Context, conn net.Conn) {
	sess := &session{
		id:      accesslog.NewID(),
		client:  tcp.NewClient(conn, s.cfg.NET.ReadTimeout, s.readBuff),
		started: time.Now(),
	}
	defer s.finish(sess)

	raw, err := http1.NewReader(sess.client, s.reqBuff).Read()
	if err != nil {
		if !errors.Is(err, http1.ErrClientClosed) {
			s.fail(sess, err)
		}

		return
	}

	sess.request, err = http1.Parse(raw, s.cfg.Limits)
	if err != nil {
		s.fail(sess, err)
		return
	}

	res, err := s.resolver.Resolve(sess.request.Path, sess.request.Query)
	if err != nil {
		s.fail(sess, err)
		return
	}

	body, err := resource.Load(ctx, res, s.invoker)
	if err != nil {
		s.fail(sess, err)
		return
	}

	s.respond(sess, status.OK, res.MIME, body)
}

func (s *Server) fail(sess *session, err error) {
	code := status.CodeOf(err)
	if code == status.InternalServerError {
		sess.err = err
	}

	s.respond(sess, code, mime.HTML, http1.ErrorPage(code))
}

func (s *Server) respond(sess *session, code status.Code, mimeType mime.MIME, body []byte) {
	sess.code = code

	if err := s.serializer.Write(sess.client, code, mimeType, body); err != nil {
		sess.err = errors.Join(sess.err, fmt.Errorf("write response: %w", err))
		return
	}

	sess.sent = len(body)
}

func (s *Server) finish(sess *session) {
	record := accesslog.Record{
		ID:     sess.id,
		Line:   sess.request.Line,
		Status: sess.code,
		Bytes:  sess.sent,
		Took:   time.Since(sess.started),
	}

	if remote := sess.client.Remote(); remote != nil {
		record.Remote = remote.String()
	}

	if sess.err != nil {
		record.Error = sess.err.Error()
	}

	s.log.Request(record)
	// the request line references the buffer, so it's cleared only after being logged
	s.reqBuff.Clear()
}
