package domain

import "errors"

var (
	ErrProviderNotFound      = errors.New("wallet provider not found")
	ErrNoAccountsGranted     = errors.New("no accounts granted")
	ErrWrongNetwork          = errors.New("wrong network")
	ErrNotConnected          = errors.New("wallet not connected")
	ErrNoActiveLottery       = errors.New("no active lottery")
	ErrTransactionRejected   = errors.New("transaction rejected")
	ErrTransactionReverted   = errors.New("transaction reverted")
	ErrReadFailure           = errors.New("read failure")
	ErrChainNotAdded         = errors.New("chain not added to wallet")
	ErrNetworkNotFound       = errors.New("network not found")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrInvalidTicketCount    = errors.New("ticket count must be at least 1")
	ErrLotteryNotCompletable = errors.New("lottery cannot be completed yet")
	ErrNotOwner              = errors.New("account is not the contract owner")
)
