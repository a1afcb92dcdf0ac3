package password_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nfrund/cyberwatch/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h, err := password.Hash("secret")
	require.NoError(t, err)

	assert.True(t, password.IsHash(h))
	assert.True(t, password.Verify(h, "secret"))
	assert.False(t, password.Verify(h, "Secret"))
}

func TestVerify_PlaintextNeverMatches(t *testing.T) {
	assert.False(t, password.Verify("secret", "secret"))
}

func TestTruncate(t *testing.T) {
	short := "short"
	assert.Equal(t, short, password.Truncate(short))

	long := strings.Repeat("a", 80)
	assert.Len(t, password.Truncate(long), password.MaxBytes)

	// 71 ASCII bytes followed by a two-byte rune straddling the limit.
	mixed := strings.Repeat("a", 71) + "ñ" + "tail"
	got := password.Truncate(mixed)
	assert.Len(t, got, 71)
	assert.True(t, utf8.ValidString(got))
}

func TestHash_LongPasswordsShareTruncatedPrefix(t *testing.T) {
	prefix := strings.Repeat("x", password.MaxBytes)
	h, err := password.Hash(prefix + "one")
	require.NoError(t, err)

	assert.True(t, password.Verify(h, prefix+"two"))
}

func TestUpgrade(t *testing.T) {
	h, err := password.Upgrade("legacy")
	require.NoError(t, err)
	assert.True(t, password.Verify(h, "legacy"))

	_, err = password.Upgrade(h)
	assert.ErrorIs(t, err, password.ErrAlreadyHashed)
}
