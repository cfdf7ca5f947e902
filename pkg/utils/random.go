package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
)

// GenerateSecureToken returns n random bytes, hex encoded (2n characters).
// Used for the OAuth state cookie and upload names.
func GenerateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("utils.GenerateSecureToken: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// UploadFileName names a stored upload "<owner>-<16 hex chars><ext>". The owner id
// is reduced to its base name so it can never climb out of the upload directory.
func UploadFileName(ownerID, ext string) (string, error) {
	suffix, err := GenerateSecureToken(8)
	if err != nil {
		return "", err
	}
	return filepath.Base(ownerID) + "-" + suffix + ext, nil
}
