package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/nexus-lottery-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "nxl/keystore/0x1000000000000000000000000000000000000001"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", testKey}, args)
			assert.Equal(t, "passphrase\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), testKey, "passphrase")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLineOfEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", testKey}, args)
			assert.Empty(t, input)
			return "passphrase\nlabel: nexus deployer\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "passphrase", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", testKey}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), testKey)
	require.NoError(t, err)
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: " + testKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), testKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), testKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, testKey)
	assert.ErrorContains(t, err, "decryption failed")
}
