package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	return signed
}

func TestParseUserIDFromJWT(t *testing.T) {
	token := signedToken(t, "8d4f1c2e-user")

	userID, err := ParseUserIDFromJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "8d4f1c2e-user", userID)
}

func TestParseUserIDFromJWT_EmptySubject(t *testing.T) {
	token := signedToken(t, "")

	_, err := ParseUserIDFromJWT(token)

	require.Error(t, err)
}

func TestParseUserIDFromJWT_Garbage(t *testing.T) {
	_, err := ParseUserIDFromJWT("not-a-token")

	require.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "extra spaces trimmed", header: "  Bearer abc  ", want: "abc"},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBearerToken(tc.header)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
