package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	dates := []time.Time{
		time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 1, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.FixedZone("CET", 3600)),
	}
	for _, d := range dates {
		token := EncodeDateBasedToken(d)
		assert.NotEmpty(t, token)

		decoded, err := DecodeDateBasedToken(token)
		require.NoError(t, err)
		assert.True(t, d.Equal(decoded), "date should survive a round trip")
		assert.Equal(t, time.UTC, decoded.Location())
	}
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	_, err := DecodeDateBasedToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeDateBasedToken(base64.URLEncoding.EncodeToString([]byte("notadate")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}
