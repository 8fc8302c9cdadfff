package allegro

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oczkers/gollegro/pkg/soap"
)

func TestNew_LoginHandshake(t *testing.T) {
	f := newFakeTransport(t)
	client, _ := newTestClient(t, f)
	assert.Equal(t, "tok-1", client.token)

	status := f.callsTo("doQuerySysStatus")
	require.Len(t, status, 1)
	v, ok := status[0].params.Get("webapiKey")
	require.True(t, ok)
	assert.Equal(t, "webapi-key", v)
	// The status query precedes login and carries no session token.
	_, hasSession := status[0].params.Get("sessionHandle")
	assert.False(t, hasSession)

	login := f.callsTo("doLoginEnc")
	require.Len(t, login, 1)

	digest := sha256.Sum256([]byte("sekret"))
	hash, ok := login[0].params.Get("userHashPassword")
	require.True(t, ok)
	assert.Equal(t, base64.StdEncoding.EncodeToString(digest[:]), hash)

	// The verification key from the status query feeds the login call.
	ver, ok := login[0].params.Get("localVersion")
	require.True(t, ok)
	assert.Equal(t, int64(148321), ver)

	_, hasSession = login[0].params.Get("sessionHandle")
	assert.False(t, hasSession)
}

func TestNew_InitialLoginFailureSurfaces(t *testing.T) {
	f := newFakeTransport(t)
	f.queue("doQuerySysStatus", respXML(t, `<doQuerySysStatusResponse><verKey>1</verKey></doQuerySysStatusResponse>`), nil)
	f.queue("doLoginEnc", nil, &soap.Fault{Code: "ERR_USER_PASSWD", Message: "bad credentials"})

	_, err := New(context.Background(), "jan", "zle-haslo", "webapi-key", WithTransport(f))
	require.Error(t, err)

	var fault *soap.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "ERR_USER_PASSWD", fault.Code)
}

func TestReauthenticate_RetriesUntilSuccess(t *testing.T) {
	f := newFakeTransport(t)
	client, sleeps := newTestClient(t, f)

	f.queue("doQuerySysStatus", nil, transportErr())
	f.queue("doQuerySysStatus", nil, &soap.Fault{Code: "ERR_INTERNAL_SYSTEM_ERROR", Message: "down"})
	queueLogin(t, f, "tok-2")

	token, err := client.reauthenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, []time.Duration{defaultRetryDelay, defaultRetryDelay}, *sleeps)
}

func TestReauthenticate_FullHandshakeDespiteValidToken(t *testing.T) {
	f := newFakeTransport(t)
	client, _ := newTestClient(t, f)
	require.Equal(t, "tok-1", client.token)

	// A valid stored token never short-circuits the handshake.
	queueLogin(t, f, "tok-2")
	token, err := client.reauthenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Len(t, f.callsTo("doQuerySysStatus"), 2)
	assert.Len(t, f.callsTo("doLoginEnc"), 2)
}

func TestReauthenticate_RebuildsTransport(t *testing.T) {
	f1 := newFakeTransport(t)
	f2 := newFakeTransport(t)
	client, _ := newTestClient(t, f1, WithDialFunc(func() (soap.Caller, error) {
		return f2, nil
	}))

	queueLogin(t, f2, "tok-2")
	token, err := client.reauthenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	// The handshake ran on the freshly dialed transport.
	assert.Len(t, f1.callsTo("doLoginEnc"), 1)
	assert.Len(t, f2.callsTo("doLoginEnc"), 1)
	assert.Same(t, soap.Caller(f2), client.transport)
}

func TestReauthenticate_ContextCancellation(t *testing.T) {
	f := newFakeTransport(t)
	client, _ := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.reauthenticate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLogin_MissingTokenField(t *testing.T) {
	f := newFakeTransport(t)
	client, _ := newTestClient(t, f)

	f.queue("doQuerySysStatus", respXML(t, `<doQuerySysStatusResponse><verKey>1</verKey></doQuerySysStatusResponse>`), nil)
	f.queue("doLoginEnc", respXML(t, `<doLoginEncResponse></doLoginEncResponse>`), nil)

	_, err := client.login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sessionHandlePart")
}
