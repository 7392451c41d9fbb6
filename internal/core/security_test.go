// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "A@Test.com", "a@test.com"},
		{"trims whitespace", "  a@test.com  ", "a@test.com"},
		{"trailing space", "a@test.com ", "a@test.com"},
		{"already normalized", "a@test.com", "a@test.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formatted", "(555) 123-4567", "5551234567"},
		{"plus prefix", "+1 555 123 4567", "15551234567"},
		{"dots", "555.123.4567", "5551234567"},
		{"plain digits", "5551234567", "5551234567"},
		{"no digits", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestHashIdentifier(t *testing.T) {
	assert.Equal(t,
		"2ca85939294aefb09b481ef700f681f26f741ba8d626917f5295ed582aee16b0",
		HashIdentifier("a@test.com"),
	)
	assert.Equal(t,
		"3c95277da5fd0da6a1a44ee3fdf56d20af6c6d242695a40e18e6e90dc3c5872c",
		HashIdentifier("5551234567"),
	)
}

func TestHashIdentifierNormalizedVariantsMatch(t *testing.T) {
	base := HashIdentifier(NormalizeEmail("a@test.com"))

	assert.Equal(t, base, HashIdentifier(NormalizeEmail("A@Test.com")))
	assert.Equal(t, base, HashIdentifier(NormalizeEmail(" a@test.com ")))
	assert.NotEqual(t, base, HashIdentifier(NormalizeEmail("b@test.com")))
}

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	require.NoError(t, err)

	token2, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.NotEmpty(t, token1)
	assert.NotEqual(t, token1, token2)
}

func TestCompareTokenHash(t *testing.T) {
	token, err := GenerateSessionToken()
	require.NoError(t, err)

	hash := HashToken(token)

	assert.True(t, CompareTokenHash(token, hash))
	assert.False(t, CompareTokenHash("other", hash))
}

func TestCompareAPIKey(t *testing.T) {
	assert.True(t, CompareAPIKey("secret", "secret"))
	assert.False(t, CompareAPIKey("wrong", "secret"))
	assert.False(t, CompareAPIKey("", "secret"))

	// unset key closes the surface entirely
	assert.False(t, CompareAPIKey("anything", ""))
	assert.False(t, CompareAPIKey("", ""))
}
