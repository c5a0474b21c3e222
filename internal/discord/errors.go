package discord

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when no IPC connection is open
var ErrNotConnected = errors.New("not connected to Discord")

// ErrNoSocket is returned when no Discord IPC endpoint accepts a connection
var ErrNoSocket = errors.New("discord is not running")

// RPCError is an ERROR event or CLOSE frame sent by the Discord client
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("discord rpc error %d: %s", e.Code, e.Message)
}
