package provider

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bookdex/internal/fetch"
)

// newIPv4TestServer starts a test server bound to IPv4 loopback to avoid IPv6 listener issues.
func newIPv4TestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()

	t.Cleanup(server.Close)
	return server
}

// newTestGoogleBooks creates a Google Books adapter pointed at a test server.
func newTestGoogleBooks(t *testing.T, server *httptest.Server) *GoogleBooks {
	t.Helper()

	g := NewGoogleBooks(fetch.NewWithHTTPClient(server.Client(), time.Second), "", DefaultMaxResults)
	g.baseURL = server.URL
	return g
}

// newTestOpenLibrary creates an OpenLibrary adapter pointed at a test server.
func newTestOpenLibrary(t *testing.T, server *httptest.Server) *OpenLibrary {
	t.Helper()

	o := NewOpenLibrary(fetch.NewWithHTTPClient(server.Client(), time.Second))
	o.baseURL = server.URL
	return o
}
