package signature_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/domain/signature"
)

// Vector conocido: SHA-384("abc").
const abcSHA384 = "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"

func TestFingerprint_VectorConocido(t *testing.T) {
	assert.Equal(t, abcSHA384, signature.Fingerprint([]byte("abc")))
}

func TestFingerprintReader_IgualQueEnMemoria(t *testing.T) {
	content := bytes.Repeat([]byte("contrato de obra "), 1000)
	got, err := signature.FingerprintReader(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, signature.Fingerprint(content), got)
}

func TestMatches(t *testing.T) {
	assert.True(t, signature.Matches(abcSHA384, " "+strings.ToUpper(abcSHA384)))
	assert.False(t, signature.Matches("", ""))
	assert.False(t, signature.Matches(abcSHA384, signature.Fingerprint([]byte("abd"))))
}
