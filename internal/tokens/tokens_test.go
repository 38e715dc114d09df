package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec() *Codec {
	return &Codec{Secret: []byte("test-jwt-secret")}
}

func TestCodec_Issue_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	token, err := codec.Issue("user@example.com", ScopeAccess, AccessTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Decode(token, ScopeAccess)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, ScopeAccess, claims.Scope)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, time.Second)
}

func TestCodec_Issue_UniquePerCall(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	first, err := codec.Issue("user@example.com", ScopeRefresh, RefreshTTL)
	require.NoError(t, err)
	second, err := codec.Issue("user@example.com", ScopeRefresh, RefreshTTL)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCodec_Decode_ScopeIsolation(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	tests := []struct {
		name       string
		issueScope string
		wantScope  string
	}{
		{name: "refresh token as access token", issueScope: ScopeRefresh, wantScope: ScopeAccess},
		{name: "access token as refresh token", issueScope: ScopeAccess, wantScope: ScopeRefresh},
		{name: "email token as access token", issueScope: ScopeEmail, wantScope: ScopeAccess},
		{name: "access token as email token", issueScope: ScopeAccess, wantScope: ScopeEmail},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := codec.Issue("user@example.com", tt.issueScope, time.Minute)
			require.NoError(t, err)

			claims, err := codec.Decode(token, tt.wantScope)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidScope)
		})
	}
}

func TestCodec_Decode_Expired(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	token, err := codec.Issue("user@example.com", ScopeAccess, -time.Minute)
	require.NoError(t, err)

	claims, err := codec.Decode(token, ScopeAccess)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := newTestCodec().Issue("user@example.com", ScopeAccess, time.Minute)
	require.NoError(t, err)

	other := &Codec{Secret: []byte("another-secret")}
	_, err = other.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_Garbage(t *testing.T) {
	t.Parallel()

	_, err := newTestCodec().Decode("not-a-jwt", ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
