package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestIssueAndVerify(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestIssue_TokenCarriesOnlySubject(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "learnex", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerify_Expired(t *testing.T) {
	m := NewSessionManager(testSecret, -time.Minute)

	token, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
	assert.Equal(t, "expired", VerifyReason(err))
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewSessionManager("one-secret", time.Hour)
	verifier := NewSessionManager("another-secret", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.Equal(t, "bad_signature", VerifyReason(err))
}

func TestVerify_Malformed(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	_, err := m.Verify("not-a-token")
	require.Error(t, err)
	assert.Equal(t, "malformed", VerifyReason(err))
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	// alg=none token with a valid-looking payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerify_RejectsEmptySubject(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	token, err := m.Issue("")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subject")
}

func TestVerifyReason_Nil(t *testing.T) {
	assert.Equal(t, "", VerifyReason(nil))
}

func TestIssue_TokensDifferAcrossUsers(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour)

	a, err := m.Issue("user-a")
	require.NoError(t, err)
	b, err := m.Issue("user-b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 3, len(strings.Split(a, ".")))
}
