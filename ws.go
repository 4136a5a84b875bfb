package main

import (
	"errors"
	"time"
)

// Dispatch routes one parsed inbound event to the owning component. Every
// expected failure is converted into a roomError back to the requester;
// nothing here ends the connection.
func (s *Server) Dispatch(c *Client, message any) {
	switch m := message.(type) {
	case CreateRoomMessage:
		if err := m.Validate(); err != nil {
			c.SendRoomError(err.Error())
			return
		}
		if _, inRoom := s.RoomByConn(c.id); inRoom {
			c.SendRoomError("Already in a room")
			return
		}
		room := s.CreateRoom(c, m.Nickname, m.Avatar, m.Color)
		LogCreatedRoom(room.id, m.Nickname)
		c.SendRoomCreated(room.id, s.codec.EncryptRoomID(room.id), RoomDisplayName(room.id))
		c.SendRoomJoined(room.id, true, m.Nickname)
		s.RefreshReconnectKey(c)
	case JoinRoomMessage:
		if err := m.Validate(); err != nil {
			c.SendRoomError(err.Error())
			return
		}
		if _, inRoom := s.RoomByConn(c.id); inRoom {
			c.SendRoomError("Already in a room")
			return
		}
		nickname, isAdmin, err := s.JoinRoom(c, m)
		if err != nil {
			c.SendRoomError(err.Error())
			return
		}
		LogJoinedRoom(m.RoomID, nickname)
		c.SendRoomJoined(m.RoomID, isAdmin, nickname)
		s.RefreshReconnectKey(c)
	case StartGameMessage:
		if err := m.Validate(); err != nil {
			c.SendRoomError(err.Error())
			return
		}
		if err := s.StartGame(c, m); err != nil {
			c.SendRoomError(err.Error())
		}
	case ProgressMessage:
		if err := m.Validate(); err != nil {
			c.SendRoomError(err.Error())
			return
		}
		s.UpdateProgress(c, m)
	case ChangeColorMessage:
		if err := m.Validate(); err != nil {
			c.SendRoomError(err.Error())
			return
		}
		if err := s.ChangeColor(m); err != nil {
			c.SendRoomError(err.Error())
		}
	case ReturnToLobbyMessage:
		if err := s.ReturnToLobby(c, m); err != nil {
			c.SendRoomError(err.Error())
		}
	case LeaveRoomMessage:
		s.HandleLeave(c, true)
	}
}

// ServeConn runs one connection: a writer goroutine, a periodic reconnect
// key refresh, and the read loop feeding Dispatch. A read error is a
// transport drop and goes through the implicit-leave path.
func (s *Server) ServeConn(c *Client) {
	go c.WriteLoop()
	defer c.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(reconnectKeyRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RefreshReconnectKey(c)
			case <-done:
				return
			}
		}
	}()

	for {
		message, err := c.ReadMessage()
		if err != nil {
			if errors.Is(err, ErrUndefinedType) {
				continue
			}
			s.HandleLeave(c, false)
			return
		}
		s.Dispatch(c, message)
	}
}
