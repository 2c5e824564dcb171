package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	transactionAt := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
	recordID := "0195a3a2-7b1e-7c3d-9f00-2b4e8d1a6c55"

	token := EncodeToken(transactionAt, recordID)
	require.NotEmpty(t, token)

	gotAt, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, transactionAt.Equal(gotAt))
	assert.Equal(t, recordID, gotID)
}

func TestDecodeTokenInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"missing separator", "MjAyNS0wMy0xNFQwOToyNjo1M1o"},
		{"bad time", "bm90LWEtdGltZXxzb21lLWlk"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeToken(tc.token)
			assert.Error(t, err)
		})
	}
}
