// Package discord is a minimal client for the Discord desktop app's local
// RPC socket, enough to set and clear rich presence.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/longkey1/notion-presence/internal/logger"
)

const (
	pipePrefix = "discord-ipc-"
	maxPipes   = 10
	rpcVersion = 1

	closeTimeout = time.Second
)

// DialFunc opens a connection to the Discord IPC endpoint
type DialFunc func(ctx context.Context) (net.Conn, error)

// Option configures a Client
type Option func(*Client)

// WithDialer replaces the platform socket dialer
func WithDialer(dial DialFunc) Option {
	return func(c *Client) {
		c.dial = dial
	}
}

// WithPID sets the process id reported with activities
func WithPID(pid int) Option {
	return func(c *Client) {
		c.pid = pid
	}
}

// User is the Discord account reported in the READY event
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Client talks to the Discord desktop app. It is safe for concurrent use;
// commands are serialised over a single connection.
type Client struct {
	clientID string
	dial     DialFunc
	pid      int

	mu   sync.Mutex
	conn net.Conn
	user *User
}

type handshake struct {
	V        int    `json:"v"`
	ClientID string `json:"client_id"`
}

type message struct {
	Cmd   string          `json:"cmd"`
	Evt   string          `json:"evt,omitempty"`
	Nonce string          `json:"nonce,omitempty"`
	Args  interface{}     `json:"args,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type activityArgs struct {
	PID      int       `json:"pid"`
	Activity *Activity `json:"activity"`
}

// NewClient creates a client for the given Discord application id
func NewClient(clientID string, opts ...Option) *Client {
	c := &Client{
		clientID: clientID,
		dial:     defaultDial,
		pid:      os.Getpid(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connected reports whether a handshake has completed on an open connection
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// User returns the account from the last successful handshake
func (c *Client) User() *User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Connect dials the IPC socket and performs the handshake. Calling Connect
// on a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	var ready struct {
		User *User `json:"user"`
	}
	err = withContext(ctx, conn, func() error {
		if err := writeFrame(conn, OpHandshake, handshake{V: rpcVersion, ClientID: c.clientID}); err != nil {
			return err
		}
		msg, err := readMessage(conn)
		if err != nil {
			return err
		}
		if msg.Cmd != "DISPATCH" || msg.Evt != "READY" {
			return fmt.Errorf("unexpected handshake response: %s %s", msg.Cmd, msg.Evt)
		}
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &ready); err != nil {
				return fmt.Errorf("failed to decode READY: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		conn.Close()
		return err
	}

	c.conn = conn
	c.user = ready.User
	fields := map[string]interface{}{"client_id": c.clientID}
	if ready.User != nil {
		fields["user"] = ready.User.Username
	}
	logger.Debug("discord handshake complete", fields)
	return nil
}

// SetActivity replaces the current rich presence
func (c *Client) SetActivity(ctx context.Context, activity Activity) error {
	return c.setActivity(ctx, &activity)
}

// ClearActivity removes the current rich presence
func (c *Client) ClearActivity(ctx context.Context) error {
	return c.setActivity(ctx, nil)
}

func (c *Client) setActivity(ctx context.Context, activity *Activity) error {
	_, err := c.command(ctx, "SET_ACTIVITY", activityArgs{PID: c.pid, Activity: activity})
	return err
}

// command sends one RPC command and waits for the reply with the same nonce.
// Transport failures drop the connection; RPC errors keep it.
func (c *Client) command(ctx context.Context, cmd string, args interface{}) (*message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	nonce := uuid.NewString()
	var reply *message
	err := withContext(ctx, c.conn, func() error {
		if err := writeFrame(c.conn, OpFrame, message{Cmd: cmd, Nonce: nonce, Args: args}); err != nil {
			return err
		}
		for {
			msg, err := readMessage(c.conn)
			if err != nil {
				return err
			}
			if msg.Nonce == nonce {
				reply = msg
				return nil
			}
			logger.Debug("ignoring discord message", map[string]interface{}{
				"cmd": msg.Cmd,
				"evt": msg.Evt,
			})
		}
	})
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			c.dropLocked()
		}
		return nil, err
	}
	return reply, nil
}

// Close sends a close frame and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(closeTimeout))
	_ = writeFrame(c.conn, OpClose, struct{}{})
	err := c.conn.Close()
	c.conn = nil
	c.user = nil
	return err
}

func (c *Client) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.user = nil
}

// readMessage reads frames until a command frame arrives, answering pings
// along the way. CLOSE frames and ERROR events become *RPCError.
func readMessage(conn net.Conn) (*message, error) {
	for {
		op, payload, err := readFrame(conn)
		if err != nil {
			return nil, err
		}

		switch op {
		case OpPing:
			if err := writeRaw(conn, OpPong, payload); err != nil {
				return nil, err
			}
		case OpPong:
		case OpClose:
			rpcErr := &RPCError{}
			if err := json.Unmarshal(payload, rpcErr); err != nil {
				return nil, fmt.Errorf("connection closed by discord")
			}
			return nil, rpcErr
		case OpFrame:
			var msg message
			if err := json.Unmarshal(payload, &msg); err != nil {
				return nil, fmt.Errorf("failed to decode frame: %w", err)
			}
			if msg.Evt == "ERROR" {
				rpcErr := &RPCError{}
				if err := json.Unmarshal(msg.Data, rpcErr); err != nil {
					return nil, fmt.Errorf("failed to decode error event: %w", err)
				}
				return nil, rpcErr
			}
			return &msg, nil
		default:
			return nil, fmt.Errorf("unexpected opcode %s", op)
		}
	}
}

// withContext runs fn and unblocks its I/O once ctx is done
func withContext(ctx context.Context, conn net.Conn, fn func() error) error {
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer func() {
		stop()
		_ = conn.SetDeadline(time.Time{})
	}()

	err := fn()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
