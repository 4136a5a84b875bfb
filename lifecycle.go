package main

import (
	"errors"
	"time"
)

var (
	ErrRaceInProgress    = errors.New("Race already underway")
	ErrRaceNotResettable = errors.New("Race is still running")
)

type GameStartingMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CountdownMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type GameStartedMessage struct {
	Type string `json:"type"`
}

type ProgressUpdateMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Progress int    `json:"progress"`
	WPM      int    `json:"wpm"`
	Errors   int    `json:"errors"`
}

type PlayerFinishedMessage struct {
	Type     string  `json:"type"`
	PlayerID string  `json:"playerId"`
	Nickname string  `json:"nickname"`
	Time     float64 `json:"time"`
}

type RaceFinishedMessage struct {
	Type string `json:"type"`
}

// StartGame moves a waiting room into countdown. Only the admin may start,
// and a room already past waiting is rejected so a second countdown can
// never run concurrently with the first.
func (s *Server) StartGame(c *Client, msg StartGameMessage) error {
	room, exists := s.GetRoom(msg.RoomID)
	if !exists {
		return ErrRoomNotFound
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed {
		return ErrRoomNotFound
	}
	if room.adminID != c.id {
		return ErrNotAdmin
	}
	if room.state != StateWaiting {
		return ErrRaceInProgress
	}
	room.state = StateCountdown
	room.raceText = msg.Text
	room.broadcastLocked(GameStartingMessage{Type: "gameStarting", Text: msg.Text})
	LogRaceStarting(room.id)
	go s.runCountdown(room.id)
	return nil
}

// runCountdown announces the first count immediately, then one count per
// interval. Reaching zero flips the room into playing. The goroutine bows
// out as soon as the room disappears or leaves the countdown state.
func (s *Server) runCountdown(roomID string) {
	count := s.countdownFrom
	if !s.announceCount(roomID, count) {
		return
	}
	ticker := time.NewTicker(s.countdownInterval)
	defer ticker.Stop()
	for range ticker.C {
		count--
		if !s.announceCount(roomID, count) {
			return
		}
		if count <= 0 {
			s.beginRace(roomID)
			return
		}
	}
}

func (s *Server) announceCount(roomID string, count int) bool {
	room, exists := s.GetRoom(roomID)
	if !exists {
		return false
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed || room.state != StateCountdown {
		return false
	}
	room.broadcastLocked(CountdownMessage{Type: "countdown", Count: count})
	return true
}

func (s *Server) beginRace(roomID string) {
	room, exists := s.GetRoom(roomID)
	if !exists {
		return
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed || room.state != StateCountdown {
		return
	}
	room.state = StatePlaying
	room.startTime = time.Now()
	room.broadcastLocked(GameStartedMessage{Type: "gameStarted"})
	LogRaceStarted(room.id)
	room.raceTimer = time.AfterFunc(s.raceTimeout, func() {
		s.expireRace(roomID)
	})
}

// UpdateProgress records client-reported stats during play and silently
// drops anything sent outside the playing state. Crossing 100% announces
// the player's finish once; the race itself ends when every connected
// player is done or the race budget lapses, whichever comes first.
func (s *Server) UpdateProgress(c *Client, msg ProgressMessage) {
	room, exists := s.GetRoom(msg.RoomID)
	if !exists {
		return
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed || room.state != StatePlaying {
		return
	}
	player, present := room.players[c.id]
	if !present {
		return
	}
	player.Progress = msg.Progress
	player.WPM = msg.WPM
	player.Errors = msg.Errors
	room.broadcastLocked(ProgressUpdateMessage{
		Type:     "progressUpdate",
		PlayerID: player.ID,
		Progress: player.Progress,
		WPM:      player.WPM,
		Errors:   player.Errors,
	})
	if player.Progress >= 100 && !player.finished {
		player.finished = true
		elapsed := time.Since(room.startTime).Seconds()
		room.broadcastLocked(PlayerFinishedMessage{
			Type:     "playerFinished",
			PlayerID: player.ID,
			Nickname: player.Nickname,
			Time:     elapsed,
		})
		if room.allFinishedLocked() {
			s.finishRaceLocked(room)
		}
	}
}

func (s *Server) expireRace(roomID string) {
	room, exists := s.GetRoom(roomID)
	if !exists {
		return
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed {
		return
	}
	s.finishRaceLocked(room)
}

func (s *Server) finishRaceLocked(room *Room) {
	if room.state != StatePlaying {
		return
	}
	room.state = StateFinished
	room.stopRaceTimerLocked()
	room.broadcastLocked(RaceFinishedMessage{Type: "raceFinished"})
	LogRaceFinished(room.id)
}

// ReturnToLobby resets a finished room for another round.
func (s *Server) ReturnToLobby(c *Client, msg ReturnToLobbyMessage) error {
	room, exists := s.GetRoom(msg.RoomID)
	if !exists {
		return ErrRoomNotFound
	}
	room.lock.Lock()
	defer room.lock.Unlock()
	if room.closed {
		return ErrRoomNotFound
	}
	if room.adminID != c.id {
		return ErrNotAdmin
	}
	if room.state != StateFinished {
		return ErrRaceNotResettable
	}
	room.state = StateWaiting
	room.raceText = ""
	room.startTime = time.Time{}
	for _, p := range room.players {
		p.resetRaceStats()
	}
	room.broadcastLocked(PlayerListMessage{Type: "backToLobby", Players: room.playerListLocked()})
	return nil
}
