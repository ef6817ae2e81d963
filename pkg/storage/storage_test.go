package storage

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	raw := []byte("fake image bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("plain base64", func(t *testing.T) {
		decoded, err := decodeImage(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	})

	t.Run("data URI", func(t *testing.T) {
		decoded, err := decodeImage("data:image/png;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, decoded)
	})

	t.Run("malformed data URI", func(t *testing.T) {
		_, err := decodeImage("data:image/png;base64")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := decodeImage("not base64 at all!!!")
		assert.Error(t, err)
	})
}

func TestClient_ValidateImageType(t *testing.T) {
	c := &Client{}

	for _, valid := range []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "IMAGE/PNG"} {
		assert.NoError(t, c.ValidateImageType(valid), valid)
	}

	for _, invalid := range []string{"image/gif", "application/pdf", "text/html", ""} {
		assert.Error(t, c.ValidateImageType(invalid), invalid)
	}
}

func TestClient_ValidateImageSize(t *testing.T) {
	c := &Client{}

	small := base64.StdEncoding.EncodeToString([]byte("tiny"))
	assert.NoError(t, c.ValidateImageSize(small))

	big := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 11*1024*1024)))
	assert.Error(t, c.ValidateImageSize(big))
}
