package main

import (
	"encoding/json"
	"sort"
	"sync"
	"time"
)

type Room struct {
	id        string
	adminID   string
	players   map[string]*Player
	state     RoomState
	raceText  string
	startTime time.Time
	closed    bool

	graceTimer *time.Timer
	raceTimer  *time.Timer

	lock sync.Mutex
}

func NewRoom(id string) *Room {
	return &Room{
		id:      id,
		players: make(map[string]*Player),
		state:   StateWaiting,
	}
}

// playerListLocked returns the non-disconnected players in join order.
// Callers hold r.lock.
func (r *Room) playerListLocked() []*Player {
	list := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.Disconnected {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// broadcastLocked fans a message out to every connected member. The member
// set is read under r.lock at the moment of the broadcast; a member whose
// send buffer is full is skipped rather than allowed to stall the room.
func (r *Room) broadcastLocked(message any) {
	encoded, err := json.Marshal(message)
	if err != nil {
		return
	}
	for _, p := range r.players {
		if p.client != nil {
			p.client.enqueue(encoded)
		}
	}
}

func (r *Room) playerByNicknameLocked(nickname string) *Player {
	for _, p := range r.players {
		if p.Nickname == nickname {
			return p
		}
	}
	return nil
}

func (r *Room) allFinishedLocked() bool {
	racing := false
	for _, p := range r.players {
		if p.Disconnected {
			continue
		}
		racing = true
		if p.Progress < 100 {
			return false
		}
	}
	return racing
}

func (r *Room) stopGraceTimerLocked() {
	if r.graceTimer != nil {
		r.graceTimer.Stop()
		r.graceTimer = nil
	}
}

func (r *Room) stopRaceTimerLocked() {
	if r.raceTimer != nil {
		r.raceTimer.Stop()
		r.raceTimer = nil
	}
}
