package main

import (
	"errors"
	"time"
)

var (
	ErrRoomNotFound   = errors.New("Room not found")
	ErrRoomFull       = errors.New("Room is full")
	ErrRaceStarted    = errors.New("Race already started")
	ErrNotAdmin       = errors.New("Only the host can do that")
	ErrPlayerNotFound = errors.New("Player not found")
)

const (
	CloseReasonHostLeft = "host_left"
)

type PlayerListMessage struct {
	Type    string    `json:"type"`
	Players []*Player `json:"players"`
}

type RoomClosedMessage struct {
	Type    string `json:"type"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type PlayerColorChangedMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Color    string `json:"color"`
	Avatar   string `json:"avatar"`
}

// JoinRoom admits a connection into a room, or swaps it in for an existing
// player when the join is a reconnection. A reconnection is recognized by a
// valid reconnect key for this room, or by an exact nickname match; it
// bypasses the state and capacity checks, inherits the old position and,
// when the old entry held admin, the admin role. The nickname the player
// ends up with is returned: a reconnection keeps the matched entry's
// nickname, so at most one player carries a given nickname at any instant.
func (s *Server) JoinRoom(c *Client, msg JoinRoomMessage) (string, bool, error) {
	room, exists := s.GetRoom(msg.RoomID)
	if !exists {
		return "", false, ErrRoomNotFound
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed {
		return "", false, ErrRoomNotFound
	}

	var old *Player
	tokenRoom, tokenNickname, tokenOK := s.reconnect.Parse(msg.ReconnectKey)
	tokenOK = tokenOK && tokenRoom == room.id
	if tokenOK {
		old = room.playerByNicknameLocked(tokenNickname)
	}
	if old == nil {
		old = room.playerByNicknameLocked(msg.Nickname)
	}
	if old != nil {
		nickname, isAdmin := s.reconnectLocked(room, old, c, msg)
		LogReconnectedToRoom(room.id, nickname)
		return nickname, isAdmin, nil
	}

	// A valid key for this room readmits mid-race even when the old entry
	// is already gone (non-admins are dropped from the room immediately on
	// disconnect). Without one, a started room is closed to newcomers.
	if room.state != StateWaiting && !tokenOK {
		return "", false, ErrRaceStarted
	}
	if len(room.players) >= MaxPlayers {
		return "", false, ErrRoomFull
	}
	room.players[c.id] = NewPlayer(c, msg.Nickname, msg.Avatar, msg.Color, len(room.players)+1)
	s.trackConn(c.id, room.id)
	room.broadcastLocked(PlayerListMessage{Type: "playerJoined", Players: room.playerListLocked()})
	return msg.Nickname, false, nil
}

func (s *Server) reconnectLocked(room *Room, old *Player, c *Client, msg JoinRoomMessage) (string, bool) {
	wasAdmin := room.adminID == old.ID
	delete(room.players, old.ID)
	s.forgetConn(old.ID)

	// The replacement keeps the matched entry's nickname: building it from
	// the payload would let a key for one player mint a duplicate of
	// another live player's nickname.
	replacement := NewPlayer(c, old.Nickname, msg.Avatar, msg.Color, old.Position)
	room.players[c.id] = replacement
	if wasAdmin {
		room.adminID = c.id
		room.stopGraceTimerLocked()
	}
	s.trackConn(c.id, room.id)
	room.broadcastLocked(PlayerListMessage{Type: "playerJoined", Players: room.playerListLocked()})
	s.scheduleResync(room.id)
	return old.Nickname, wasAdmin
}

// scheduleResync re-broadcasts the player list shortly after a reconnection
// so clients holding a stale list converge. A fired callback for a room
// that is gone is a no-op.
func (s *Server) scheduleResync(roomID string) {
	time.AfterFunc(s.resyncDelay, func() {
		room, exists := s.GetRoom(roomID)
		if !exists {
			return
		}
		room.lock.Lock()
		defer room.lock.Unlock()
		if room.closed {
			return
		}
		room.broadcastLocked(PlayerListMessage{Type: "playerJoined", Players: room.playerListLocked()})
	})
}

// HandleLeave processes both explicit leaveRoom requests and transport
// drops. An explicit leave by the admin closes the room at once; a drop by
// the admin arms the grace timer instead, because a transport drop is
// indistinguishable from a transient blip.
func (s *Server) HandleLeave(c *Client, explicit bool) {
	room, exists := s.RoomByConn(c.id)
	if !exists {
		return
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	player, present := room.players[c.id]
	if !present || room.closed {
		return
	}

	isAdmin := room.adminID == c.id
	if isAdmin && len(room.players) > 1 {
		if explicit {
			s.closeRoomLocked(room, CloseReasonHostLeft, "The host has left the room")
			return
		}
		player.Disconnected = true
		player.DisconnectedAt = time.Now()
		player.client = nil
		s.forgetConn(c.id)
		room.graceTimer = time.AfterFunc(s.graceTimeout, func() {
			s.expireGrace(room.id, c.id)
		})
		LogHostDisconnected(room.id, player.Nickname)
		room.broadcastLocked(PlayerListMessage{Type: "playerLeft", Players: room.playerListLocked()})
		if room.state == StatePlaying && room.allFinishedLocked() {
			s.finishRaceLocked(room)
		}
		return
	}

	delete(room.players, c.id)
	s.forgetConn(c.id)
	LogLeftRoom(room.id, player.Nickname)
	if len(room.players) == 0 {
		room.closed = true
		room.stopGraceTimerLocked()
		room.stopRaceTimerLocked()
		s.RemoveRoom(room.id)
		LogRemovingRoom(room.id)
		return
	}
	room.broadcastLocked(PlayerListMessage{Type: "playerLeft", Players: room.playerListLocked()})
	if room.state == StatePlaying && room.allFinishedLocked() {
		s.finishRaceLocked(room)
	}
}

// expireGrace fires when the admin's grace window lapses. If a qualifying
// reconnection happened the disconnected entry is gone and this is a no-op.
func (s *Server) expireGrace(roomID, playerID string) {
	room, exists := s.GetRoom(roomID)
	if !exists {
		return
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed {
		return
	}
	player, present := room.players[playerID]
	if !present || !player.Disconnected {
		return
	}
	s.closeRoomLocked(room, CloseReasonHostLeft, "The host has left the room")
}

// closeRoomLocked notifies every remaining member, cancels outstanding
// timers and removes the registry entry. Callers hold room.lock.
func (s *Server) closeRoomLocked(room *Room, reason, message string) {
	room.closed = true
	room.stopGraceTimerLocked()
	room.stopRaceTimerLocked()
	room.broadcastLocked(RoomClosedMessage{Type: "roomClosed", Reason: reason, Message: message})
	s.RemoveRoom(room.id)
	LogRemovingRoom(room.id)
}

// ChangeColor updates a player's cosmetic fields. Any room member may
// target any player; no ownership check is made. Avatar shape is frozen
// while a race is counting down or running, color is always mutable.
func (s *Server) ChangeColor(msg ChangeColorMessage) error {
	room, exists := s.RoomByConn(msg.PlayerID)
	if !exists {
		return ErrPlayerNotFound
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	player, present := room.players[msg.PlayerID]
	if !present || room.closed {
		return ErrPlayerNotFound
	}
	player.Color = msg.Color
	if msg.Avatar != "" && room.state != StateCountdown && room.state != StatePlaying {
		player.Avatar = msg.Avatar
	}
	room.broadcastLocked(PlayerColorChangedMessage{
		Type:     "playerColorChanged",
		PlayerID: player.ID,
		Color:    player.Color,
		Avatar:   player.Avatar,
	})
	return nil
}
