package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/internal/accesslog"
	"github.com/indigo-web/solo/internal/requestgen"
	"github.com/indigo-web/solo/internal/resource"
	"github.com/indigo-web/solo/internal/tcp/dummy"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, mutate func(cfg *config.Config)) (*Server, string, *bytes.Buffer) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<p>hi</p>"), 0o644))

	cfg := config.Default()
	cfg.Log.Color = false
	if mutate != nil {
		mutate(cfg)
	}

	out := new(bytes.Buffer)
	logger, err := accesslog.New(out, cfg.Log)
	require.NoError(t, err)

	return NewServer(cfg, resource.NewResolver(root, cfg), logger), root, out
}

func serve(server *Server, chunks ...string) *dummy.Conn {
	conn := dummy.NewConn(chunks...)
	server.Serve(context.Background(), conn)
	return conn
}

func readResponse(t *testing.T, data []byte) (*stdhttp.Response, string) {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func requireStatus(t *testing.T, want int, conn *dummy.Conn) {
	t.Helper()
	resp, _ := readResponse(t, conn.Written)
	require.Equal(t, want, resp.StatusCode)
	require.True(t, resp.Close)
}

func TestServer(t *testing.T) {
	server, root, logs := newServer(t, nil)

	t.Run("index", func(t *testing.T) {
		conn := serve(server, "GET /index.html HTTP/1.1\r\n\r\n")
		require.Equal(t,
			"HTTP/1.1 200 OK\r\n"+
				"Connection: close\r\n"+
				"Content-Length: 9\r\n"+
				"Content-Type: text/html\r\n"+
				"\r\n"+
				"<p>hi</p>",
			string(conn.Written),
		)
		require.Contains(t, logs.String(), `"GET /index.html HTTP/1.1" 200 9`)
	})

	t.Run("binary file in pieces", func(t *testing.T) {
		content := bytes.Repeat([]byte{0x89, 'P', 'N', 'G', 0, '\r', '\n'}, 1000)
		require.NoError(t, os.WriteFile(filepath.Join(root, "big.png"), content, 0o644))

		request := requestgen.Generate("GET", "/big.png?v=3", requestgen.Headers(20))
		conn := serve(server, requestgen.Chunks(request, 100)...)
		resp, body := readResponse(t, conn.Written)
		require.Equal(t, 200, resp.StatusCode)
		require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		require.Equal(t, int64(len(content)), resp.ContentLength)
		require.Equal(t, string(content), body)
	})

	t.Run("idempotence", func(t *testing.T) {
		first := serve(server, "GET /index.html HTTP/1.1\r\nHost: localhost\r\n\r\n")
		second := serve(server, "GET /index.html HTTP/1.1\r\nHost: localhost\r\n\r\n")
		require.Equal(t, first.Written, second.Written)
	})

	for _, tc := range []struct {
		Name   string
		Chunks []string
		Want   int
	}{
		{"post", []string{"POST /index.html HTTP/1.1\r\n\r\n"}, 405},
		{"post to missing", []string{"POST /missing.html HTTP/1.1\r\n\r\n"}, 405},
		{"missing", []string{"GET /missing.html HTTP/1.1\r\n\r\n"}, 404},
		{"bad request", []string{"GET\r\n\r\n"}, 400},
		{"quote", []string{"GET /index.html\" HTTP/1.1\r\n\r\n"}, 400},
		{"relative", []string{"GET index.html HTTP/1.1\r\n\r\n"}, 501},
		{"http/1.0", []string{"GET /index.html HTTP/1.0\r\n\r\n"}, 505},
		{"unsupported extension", []string{"GET /index.txt HTTP/1.1\r\n\r\n"}, 404},
		{"trailing slash on a file", []string{"GET /index.html/ HTTP/1.1\r\n\r\n"}, 404},
		{"traversal", []string{"GET /../../../etc/passwd HTTP/1.1\r\n\r\n"}, 403},
		{"long request line", []string{requestgen.Line(9000) + "\r\n"}, 414},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			requireStatus(t, tc.Want, serve(server, tc.Chunks...))
		})
	}

	t.Run("unmapped extension", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("notes"), 0o644))
		conn := serve(server, "GET /notes.txt HTTP/1.1\r\n\r\n")
		resp, body := readResponse(t, conn.Written)
		require.Equal(t, 501, resp.StatusCode)
		require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		require.Equal(t, "<html><head><title>501 Not Implemented</title></head><body><h1>501 Not Implemented</h1></body></html>", body)
	})

	t.Run("too large", func(t *testing.T) {
		limits := config.Default().Limits
		flood := strings.Repeat("a", limits.MaxRequestSize()+1000)
		conn := serve(server, requestgen.Chunks([]byte(flood), 4096)...)
		requireStatus(t, 413, conn)
	})

	t.Run("client closed", func(t *testing.T) {
		conn := serve(server, "GET /index.ht")
		require.Empty(t, conn.Written)
	})

	t.Run("read error", func(t *testing.T) {
		conn := dummy.NewConn("GET /index.html HTTP/1.1\r\n")
		conn.ReadErr = errors.New("connection reset by peer")
		server.Serve(context.Background(), conn)
		requireStatus(t, 500, conn)
		require.Contains(t, logs.String(), "connection reset by peer")
	})

	t.Run("write error", func(t *testing.T) {
		conn := dummy.NewConn("GET /index.html HTTP/1.1\r\n\r\n")
		conn.WriteErr = errors.New("broken pipe")
		require.NotPanics(t, func() {
			server.Serve(context.Background(), conn)
		})
		require.Contains(t, logs.String(), "write response: broken pipe")
	})
}

func TestServer_Dynamic(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no shell available to act as an interpreter")
	}

	server, root, _ := newServer(t, func(cfg *config.Config) {
		cfg.Dynamic.Interpreter = sh
	})

	script := `printf 'hello, %s' "$1"`
	require.NoError(t, os.WriteFile(filepath.Join(root, "hello.php"), []byte(script), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "fail.php"), []byte("exit 1"), 0o644))

	t.Run("output", func(t *testing.T) {
		conn := serve(server, "GET /hello.php?name=world HTTP/1.1\r\n\r\n")
		resp, body := readResponse(t, conn.Written)
		require.Equal(t, 200, resp.StatusCode)
		require.NotContains(t, resp.Header, "Content-Type")
		require.Equal(t, "hello, name=world", body)
	})

	t.Run("failure", func(t *testing.T) {
		requireStatus(t, 500, serve(server, "GET /fail.php HTTP/1.1\r\n\r\n"))
	})
}
