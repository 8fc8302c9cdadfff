package soap

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Call_Success(t *testing.T) {
	var gotBody string
	var gotAction string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotAction = r.Header.Get("SOAPAction")
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		io.WriteString(w, sampleResponse)
	}))
	defer server.Close()

	client := NewClient(&Config{
		Endpoint:  server.URL,
		Namespace: "urn:test",
		UserAgent: "gollegro-test",
	}, nil)

	resp, err := client.Call(context.Background(), "doExample", Params{
		{Name: "itemId", Value: int64(101)},
	})
	require.NoError(t, err)

	n, err := resp.Int("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	assert.Contains(t, gotBody, "<ns1:doExampleRequest")
	assert.Contains(t, gotBody, "<itemId>101</itemId>")
	assert.Equal(t, `"urn:test#doExample"`, gotAction)
}

func TestClient_Call_FaultWithServerStatus(t *testing.T) {
	// The service ships faults with HTTP 500; the fault must win over the
	// status line.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, sampleFault)
	}))
	defer server.Close()

	client := NewClient(&Config{Endpoint: server.URL, Namespace: "urn:test"}, nil)

	_, err := client.Call(context.Background(), "doExample", nil)
	require.Error(t, err)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "ERR_SESSION_EXPIRED", fault.Code)
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestClient_Call_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(&Config{Endpoint: server.URL, Namespace: "urn:test"}, nil)

	_, err := client.Call(context.Background(), "doExample", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestClient_Call_GatewayErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer server.Close()

	client := NewClient(&Config{Endpoint: server.URL, Namespace: "urn:test"}, nil)

	_, err := client.Call(context.Background(), "doExample", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "https://webapi.allegro.pl/service.php", config.Endpoint)
	assert.NotZero(t, config.Timeout)
	assert.NotEmpty(t, config.UserAgent)
}
