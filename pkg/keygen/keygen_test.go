package keygen_test

import (
	"strings"
	"testing"

	"lapak/pkg/keygen"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := keygen.NewKey()
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, keygen.Prefix))
		assert.True(t, keygen.ValidFormat(key), "generated keys must pass the format check")
		assert.False(t, seen[key], "keys must not repeat")
		seen[key] = true
	}

	// 32 random bytes in unpadded url-safe base64 is 43 characters
	key, _ := keygen.NewKey()
	assert.Len(t, key, len(keygen.Prefix)+43)
}

func TestValidFormat(t *testing.T) {
	assert.True(t, keygen.ValidFormat(keygen.Prefix+"abcDEF012_-"))

	assert.False(t, keygen.ValidFormat(""))
	assert.False(t, keygen.ValidFormat(keygen.Prefix), "prefix alone is not a key")
	assert.False(t, keygen.ValidFormat("mec_abcdef"), "foreign prefix")
	assert.False(t, keygen.ValidFormat("abcdef"), "no prefix")
	assert.False(t, keygen.ValidFormat(keygen.Prefix+"has space"))
	assert.False(t, keygen.ValidFormat(keygen.Prefix+"has+plus"))
	assert.False(t, keygen.ValidFormat(keygen.Prefix+"has=padding"))
}
