package main

import "time"

type RoomState string

const (
	StateWaiting   RoomState = "waiting"
	StateCountdown RoomState = "countdown"
	StatePlaying   RoomState = "playing"
	StateFinished  RoomState = "finished"
)

const MaxPlayers = 32

type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Color    string `json:"color"`
	Progress int    `json:"progress"`
	WPM      int    `json:"wpm"`
	Errors   int    `json:"errors"`
	Position int    `json:"position"`

	Disconnected   bool      `json:"-"`
	DisconnectedAt time.Time `json:"-"`

	// nil while the player is in the grace window
	client *Client
	// already announced via playerFinished this race
	finished bool
}

func NewPlayer(c *Client, nickname, avatar, color string, position int) *Player {
	return &Player{
		ID:       c.id,
		Nickname: nickname,
		Avatar:   avatar,
		Color:    color,
		Position: position,
		client:   c,
	}
}

func (p *Player) resetRaceStats() {
	p.Progress = 0
	p.WPM = 0
	p.Errors = 0
	p.finished = false
}
