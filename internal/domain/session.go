package domain

import "github.com/ethereum/go-ethereum/common"

type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnectedCorrectNetwork
	StateConnectedWrongNetwork
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnectedCorrectNetwork:
		return "connected"
	case StateConnectedWrongNetwork:
		return "wrong_network"
	default:
		return "unknown"
	}
}

// Session is the wallet-side view of the user. Account and ChainID are only
// meaningful while Connected is true.
type Session struct {
	Connected        bool
	Account          common.Address
	ChainID          ChainID
	IsCorrectNetwork bool
}

func (s Session) Ready() bool {
	return s.Connected && s.IsCorrectNetwork
}

func (s Session) State() ConnectionState {
	switch {
	case !s.Connected:
		return StateDisconnected
	case s.IsCorrectNetwork:
		return StateConnectedCorrectNetwork
	default:
		return StateConnectedWrongNetwork
	}
}

type SessionEventKind string

const (
	SessionConnected      SessionEventKind = "connected"
	SessionAccountChanged SessionEventKind = "account_changed"
	SessionChainChanged   SessionEventKind = "chain_changed"
	SessionDisconnected   SessionEventKind = "disconnected"
)

type SessionEvent struct {
	Kind    SessionEventKind
	Session Session
}
