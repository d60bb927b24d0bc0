package requestgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	req := Generate("GET", "/", Headers(3))
	require.True(t, strings.HasPrefix(string(req), "GET / HTTP/1.1\r\n"))
	require.True(t, strings.HasSuffix(string(req), "Host: localhost\r\n\r\n"))
	require.Equal(t, 5, strings.Count(string(req), "\r\n"))
}

func TestChunks(t *testing.T) {
	require.Equal(t, []string{"abc", "de"}, Chunks([]byte("abcde"), 3))
	require.Empty(t, Chunks(nil, 3))
}

func TestLine(t *testing.T) {
	require.Len(t, Line(8190), 8190)
	require.True(t, strings.HasSuffix(Line(100), " HTTP/1.1\r\n"))
}
