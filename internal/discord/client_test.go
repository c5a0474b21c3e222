package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readyFrame = `{"cmd":"DISPATCH","evt":"READY","data":{"v":1,"user":{"id":"1","username":"tester"}}}`

// fakeDiscord returns a dialer whose connections are served by handler
func fakeDiscord(t *testing.T, handler func(t *testing.T, conn net.Conn)) DialFunc {
	t.Helper()
	return func(ctx context.Context) (net.Conn, error) {
		client, server := net.Pipe()
		go func() {
			defer server.Close()
			handler(t, server)
		}()
		return client, nil
	}
}

// acceptHandshake reads the handshake and answers READY
func acceptHandshake(t *testing.T, conn net.Conn) {
	op, payload, err := readFrame(conn)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, OpHandshake, op)
	assert.JSONEq(t, `{"v":1,"client_id":"app-1"}`, string(payload))
	assert.NoError(t, writeRaw(conn, OpFrame, []byte(readyFrame)))
}

// drain reads until the client goes away
func drain(conn net.Conn) {
	for {
		if _, _, err := readFrame(conn); err != nil {
			return
		}
	}
}

func TestConnect(t *testing.T) {
	c := NewClient("app-1", WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		acceptHandshake(t, conn)
		drain(conn)
	})))

	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.Connected())
	require.NotNil(t, c.User())
	assert.Equal(t, "tester", c.User().Username)

	// Second connect reuses the connection.
	require.NoError(t, c.Connect(context.Background()))
	require.NoError(t, c.Close())
	assert.False(t, c.Connected())
	assert.Nil(t, c.User())
}

func TestConnectAnswersPing(t *testing.T) {
	c := NewClient("app-1", WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		_, _, err := readFrame(conn)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, writeRaw(conn, OpPing, []byte(`{"n":1}`)))

		op, payload, err := readFrame(conn)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, OpPong, op)
		assert.JSONEq(t, `{"n":1}`, string(payload))

		assert.NoError(t, writeRaw(conn, OpFrame, []byte(readyFrame)))
		drain(conn)
	})))

	require.NoError(t, c.Connect(context.Background()))
	assert.True(t, c.Connected())
	c.Close()
}

func TestConnectRejected(t *testing.T) {
	c := NewClient("app-1", WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		_, _, _ = readFrame(conn)
		_ = writeRaw(conn, OpClose, []byte(`{"code":4000,"message":"Invalid Client ID"}`))
	})))

	err := c.Connect(context.Background())

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 4000, rpcErr.Code)
	assert.Equal(t, "discord rpc error 4000: Invalid Client ID", err.Error())
	assert.False(t, c.Connected())
}

func TestConnectDialFailure(t *testing.T) {
	c := NewClient("app-1", WithDialer(func(context.Context) (net.Conn, error) {
		return nil, ErrNoSocket
	}))

	err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoSocket)
	assert.False(t, c.Connected())
}

func TestConnectTimeout(t *testing.T) {
	c := NewClient("app-1", WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		drain(conn)
	})))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Connect(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, c.Connected())
}

func TestSetActivity(t *testing.T) {
	received := make(chan message, 1)

	c := NewClient("app-1", WithPID(4242), WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		acceptHandshake(t, conn)

		op, payload, err := readFrame(conn)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, OpFrame, op)

		var msg message
		assert.NoError(t, json.Unmarshal(payload, &msg))
		received <- msg

		// An unrelated event first, then the reply.
		assert.NoError(t, writeRaw(conn, OpFrame, []byte(`{"cmd":"DISPATCH","evt":"ACTIVITY_JOIN"}`)))
		reply, _ := json.Marshal(message{Cmd: msg.Cmd, Nonce: msg.Nonce, Data: json.RawMessage(`{}`)})
		assert.NoError(t, writeRaw(conn, OpFrame, reply))
		drain(conn)
	})))

	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	err := c.SetActivity(context.Background(), Activity{
		Details:    "📝 Roadmap",
		State:      "Working on Notion",
		Timestamps: StartedAt(start),
		Assets:     &Assets{LargeImage: "notion", LargeText: "Notion Discord Auto RPC"},
	})
	require.NoError(t, err)

	msg := <-received
	assert.Equal(t, "SET_ACTIVITY", msg.Cmd)
	assert.Len(t, msg.Nonce, 36)

	args, err := json.Marshal(msg.Args)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"pid": 4242,
		"activity": {
			"details": "📝 Roadmap",
			"state": "Working on Notion",
			"timestamps": {"start": 1735787045000},
			"assets": {"large_image": "notion", "large_text": "Notion Discord Auto RPC"}
		}
	}`, string(args))
}

func TestClearActivity(t *testing.T) {
	received := make(chan message, 1)

	c := NewClient("app-1", WithPID(7), WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		acceptHandshake(t, conn)

		_, payload, err := readFrame(conn)
		if !assert.NoError(t, err) {
			return
		}
		var msg message
		assert.NoError(t, json.Unmarshal(payload, &msg))
		received <- msg

		reply, _ := json.Marshal(message{Cmd: msg.Cmd, Nonce: msg.Nonce})
		assert.NoError(t, writeRaw(conn, OpFrame, reply))
		drain(conn)
	})))

	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	require.NoError(t, c.ClearActivity(context.Background()))

	msg := <-received
	args, err := json.Marshal(msg.Args)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pid":7,"activity":null}`, string(args))
}

func TestSetActivityErrorEvent(t *testing.T) {
	c := NewClient("app-1", WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		acceptHandshake(t, conn)

		_, payload, err := readFrame(conn)
		if !assert.NoError(t, err) {
			return
		}
		var msg message
		assert.NoError(t, json.Unmarshal(payload, &msg))

		reply, _ := json.Marshal(message{
			Cmd:   msg.Cmd,
			Evt:   "ERROR",
			Nonce: msg.Nonce,
			Data:  json.RawMessage(`{"code":4000,"message":"child \"activity\" fails"}`),
		})
		assert.NoError(t, writeRaw(conn, OpFrame, reply))
		drain(conn)
	})))

	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	err := c.SetActivity(context.Background(), Activity{Details: "x"})

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 4000, rpcErr.Code)
	assert.True(t, c.Connected())
}

func TestSetActivityConnectionLost(t *testing.T) {
	c := NewClient("app-1", WithDialer(fakeDiscord(t, func(t *testing.T, conn net.Conn) {
		acceptHandshake(t, conn)
	})))

	require.NoError(t, c.Connect(context.Background()))

	err := c.SetActivity(context.Background(), Activity{Details: "x"})
	assert.Error(t, err)
	assert.False(t, c.Connected())
}

func TestSetActivityNotConnected(t *testing.T) {
	c := NewClient("app-1")

	err := c.SetActivity(context.Background(), Activity{})
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.NoError(t, c.Close())
}

func TestStartedAt(t *testing.T) {
	assert.Nil(t, StartedAt(time.Time{}))
	assert.Equal(t, int64(1000), StartedAt(time.Unix(1, 0)).Start)
}
