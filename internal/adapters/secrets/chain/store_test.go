package chain

import (
	"context"
	"errors"
	"testing"

	passstore "github.com/bnema/nexus-lottery-cli/internal/adapters/secrets/pass"
	"github.com/bnema/nexus-lottery-cli/internal/domain"
	portmocks "github.com/bnema/nexus-lottery-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKey = "nxl/keystore/0x1000000000000000000000000000000000000001"

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPassIsUnavailable(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testKey).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, testKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenNoBackendHasTheSecret(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testKey).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, testKey).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), testKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.NotContains(t, err.Error(), "primary backend")
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testKey).Return("", errors.New("gpg failed")).Once()
	fallback.EXPECT().Get(mock.Anything, testKey).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), testKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "gpg failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, testKey, "secret").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, testKey, "secret").Return(nil).Once()

	err := store.Put(context.Background(), testKey, "secret")
	require.NoError(t, err)
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, testKey, "secret").Return(nil).Once()

	err := store.Put(context.Background(), testKey, "secret")
	require.NoError(t, err)
}

func TestStoreDeleteRemovesFromBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, testKey).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, testKey).Return(nil).Once()

	err := store.Delete(context.Background(), testKey)
	require.NoError(t, err)
}

func TestStoreDeleteIgnoresUnavailablePrimary(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, testKey).Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Delete(mock.Anything, testKey).Return(nil).Once()

	err := store.Delete(context.Background(), testKey)
	require.NoError(t, err)
}

func TestStoreDeleteSurfacesPrimaryFailure(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, testKey).Return(errors.New("gpg failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, testKey).Return(nil).Once()

	err := store.Delete(context.Background(), testKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend delete failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, testKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), testKey)
	require.ErrorIs(t, err, context.Canceled)
}
