// Package signature: huella SHA-384 de documentos firmados electrónicamente.
// La huella se guarda al subir el documento y otra vez al firmar; si difieren,
// el contenido cambió entre ambos momentos.
package signature

import (
	"crypto/sha512"
	"encoding/hex"
	"io"
	"strings"
)

// Fingerprint SHA-384 en hexadecimal (minúsculas) del contenido.
func Fingerprint(content []byte) string {
	sum := sha512.Sum384(content)
	return hex.EncodeToString(sum[:])
}

// FingerprintReader igual que Fingerprint pero leyendo un stream completo.
func FingerprintReader(r io.Reader) (string, error) {
	h := sha512.New384()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Matches compara dos huellas sin distinguir mayúsculas.
func Matches(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
