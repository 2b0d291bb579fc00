package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/bnema/nexus-lottery-cli/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "deep traversal", key: "../../secret", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := ports.KeystorePassphraseKey(common.HexToAddress("0x1000000000000000000000000000000000000001"))
	want := "correct horse battery staple"

	err := store.Put(context.Background(), key, want)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	secretPath := filepath.Join(root, "nxl", "keystore", "0x1000000000000000000000000000000000000001")
	info, err := os.Stat(secretPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())
}

func TestStoreGetTrimsTrailingNewlineFromHandWrittenFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nxl", "keystore"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nxl", "keystore", "0xabc"), []byte("passphrase\r\n"), 0o600))

	got, err := store.Get(context.Background(), "nxl/keystore/0xabc")
	require.NoError(t, err)
	assert.Equal(t, "passphrase", got)
}

func TestStoreGetMissingSecretReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "nxl/keystore/0xmissing")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "nxl/keystore/0xabc"

	err := store.Delete(context.Background(), key)
	require.NoError(t, err)

	err = store.Delete(context.Background(), key)
	require.NoError(t, err)
}
