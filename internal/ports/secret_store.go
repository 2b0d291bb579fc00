package ports

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// KeystorePassphraseKey is the secret store key holding the passphrase that
// unlocks account in the local keystore.
func KeystorePassphraseKey(account common.Address) string {
	return "nxl/keystore/" + strings.ToLower(account.Hex())
}
