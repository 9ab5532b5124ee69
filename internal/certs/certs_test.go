package certs

import (
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, der [][]byte) *x509.Certificate {
	t.Helper()
	require.Len(t, der, 1)
	cert, err := x509.ParseCertificate(der[0])
	require.NoError(t, err)
	return cert
}

func TestStore_GeneratesWhenMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "certs")
	store := NewStore(dir)

	cert, err := store.Certificate()
	require.NoError(t, err)

	c := leaf(t, cert.Certificate)
	assert.Equal(t, []string{"potax"}, c.Subject.Organization)
	assert.NoError(t, c.VerifyHostname("localhost"))
	assert.NoError(t, c.VerifyHostname("127.0.0.1"))
	assert.True(t, c.NotAfter.After(time.Now().Add(364*24*time.Hour)))

	certPath, keyPath := store.Paths()
	for _, path := range []string{certPath, keyPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), path)
	}
}

func TestStore_ReusesValidCertificate(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir).Certificate()
	require.NoError(t, err)
	second, err := NewStore(dir).Certificate()
	require.NoError(t, err)

	assert.Equal(t, first.Certificate[0], second.Certificate[0])
}

func TestStore_ReplacesExpiredCertificate(t *testing.T) {
	dir := t.TempDir()

	old := NewStore(dir)
	old.now = func() time.Time { return time.Now().Add(-2 * validFor) }
	expired, err := old.Certificate()
	require.NoError(t, err)

	fresh, err := NewStore(dir).Certificate()
	require.NoError(t, err)

	assert.NotEqual(t, expired.Certificate[0], fresh.Certificate[0])
	assert.True(t, leaf(t, fresh.Certificate).NotAfter.After(time.Now()))
}

func TestStore_ReplacesCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	certPath, keyPath := store.Paths()
	require.NoError(t, os.WriteFile(certPath, []byte("not a certificate"), 0o600))
	require.NoError(t, os.WriteFile(keyPath, []byte("not a key"), 0o600))

	cert, err := store.Certificate()
	require.NoError(t, err)
	assert.NoError(t, leaf(t, cert.Certificate).VerifyHostname("localhost"))
}
