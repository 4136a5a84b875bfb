package main

import (
	"encoding/json"
	"net"
	"sync"

	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
)

const sendBufferSize = 256

// Client wraps one WebSocket connection. Outbound traffic goes through a
// buffered channel drained by WriteLoop so broadcasts never block on a
// single slow peer.
type Client struct {
	id     string
	conn   net.Conn
	send   chan []byte
	lock   sync.Mutex
	closed bool
}

func NewClient(conn net.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) WriteLoop() {
	for msg := range c.send {
		if err := wsutil.WriteServerText(c.conn, msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// Close releases the writer; the read side exits on its own once the
// connection is torn down.
func (c *Client) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// enqueue drops the message when the buffer is full or the client is
// already closed; a goroutine still holding the client after teardown
// must not hit the closed channel.
func (c *Client) enqueue(msg []byte) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendMessage(message any) {
	encoded, err := json.Marshal(message)
	if err != nil {
		return
	}
	c.enqueue(encoded)
}

type RoomCreatedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
	Name   string `json:"name"`
}

type RoomJoinedMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	IsAdmin  bool   `json:"isAdmin"`
	Nickname string `json:"nickname"`
}

type RoomErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ReconnectKeyMessage struct {
	Type         string `json:"type"`
	ReconnectKey string `json:"reconnectKey"`
}

func (c *Client) SendRoomCreated(roomID, code, name string) {
	c.sendMessage(RoomCreatedMessage{Type: "roomCreated", RoomID: roomID, Code: code, Name: name})
}

func (c *Client) SendRoomJoined(roomID string, isAdmin bool, nickname string) {
	c.sendMessage(RoomJoinedMessage{Type: "roomJoined", RoomID: roomID, IsAdmin: isAdmin, Nickname: nickname})
}

func (c *Client) SendRoomError(message string) {
	c.sendMessage(RoomErrorMessage{Type: "roomError", Message: message})
}

func (c *Client) SendReconnectKey(reconnectKey string) {
	c.sendMessage(ReconnectKeyMessage{Type: "reconnectKey", ReconnectKey: reconnectKey})
}
