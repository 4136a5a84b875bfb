package main

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Server is the room registry: the only component that creates or destroys
// Room entries. conns is the transient connection -> room association used
// to route leave/disconnect and color changes.
type Server struct {
	rooms map[string]*Room
	conns map[string]string
	lock  sync.RWMutex

	codec     *RoomCodec
	reconnect *ReconnectJWT

	graceTimeout      time.Duration
	countdownFrom     int
	countdownInterval time.Duration
	resyncDelay       time.Duration
	raceTimeout       time.Duration
}

func NewServer(codec *RoomCodec, reconnect *ReconnectJWT) *Server {
	return &Server{
		rooms:             make(map[string]*Room),
		conns:             make(map[string]string),
		codec:             codec,
		reconnect:         reconnect,
		graceTimeout:      30 * time.Second,
		countdownFrom:     3,
		countdownInterval: time.Second,
		resyncDelay:       100 * time.Millisecond,
		raceTimeout:       5 * time.Minute,
	}
}

func NewRoomID() string {
	return uuid.NewString()
}

// CreateRoom builds a fresh waiting room with the requester as sole player
// and admin. Id collisions are retried until a free id comes up.
func (s *Server) CreateRoom(c *Client, nickname, avatar, color string) *Room {
	s.lock.Lock()
	defer s.lock.Unlock()
	var id string
	for {
		id = NewRoomID()
		if _, exists := s.rooms[id]; !exists {
			break
		}
	}
	room := NewRoom(id)
	room.adminID = c.id
	room.players[c.id] = NewPlayer(c, nickname, avatar, color, 1)
	s.rooms[id] = room
	s.conns[c.id] = id
	return room
}

func (s *Server) GetRoom(roomID string) (*Room, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	room, exists := s.rooms[strings.ToLower(roomID)]
	return room, exists
}

// RemoveRoom deletes the registry entry and every connection association
// pointing at it. Safe to call for an id that is already gone.
func (s *Server) RemoveRoom(roomID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.rooms, roomID)
	for connID, id := range s.conns {
		if id == roomID {
			delete(s.conns, connID)
		}
	}
}

func (s *Server) RoomByConn(connID string) (*Room, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	roomID, ok := s.conns[connID]
	if !ok {
		return nil, false
	}
	room, exists := s.rooms[roomID]
	return room, exists
}

func (s *Server) trackConn(connID, roomID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.conns[connID] = roomID
}

func (s *Server) forgetConn(connID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.conns, connID)
}
