package main

import (
	"encoding/json"
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/gobwas/ws/wsutil"
)

func UnmarshalJSON[T any](data []byte) T {
	var parsed T
	json.Unmarshal(data, &parsed)
	return parsed
}

type CreateRoomMessage struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Color    string `json:"color"`
}

type JoinRoomMessage struct {
	RoomID       string `json:"roomId"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
	Color        string `json:"color"`
	ReconnectKey string `json:"reconnectKey"`
}

type StartGameMessage struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

type ProgressMessage struct {
	RoomID   string `json:"roomId"`
	Progress int    `json:"progress"`
	WPM      int    `json:"wpm"`
	Errors   int    `json:"errors"`
}

type ChangeColorMessage struct {
	PlayerID string `json:"playerId"`
	Color    string `json:"color"`
	Avatar   string `json:"avatar"`
}

type ReturnToLobbyMessage struct {
	RoomID string `json:"roomId"`
}

type LeaveRoomMessage struct{}

type Message interface {
	CreateRoomMessage | JoinRoomMessage | StartGameMessage | ProgressMessage | ChangeColorMessage | ReturnToLobbyMessage | LeaveRoomMessage
}

var ErrUndefinedType = errors.New("incorrect type")

// Returns one of struct from message interface
func (c *Client) ReadMessage() (any, error) {
	msg, err := wsutil.ReadClientText(c.conn)
	if err != nil {
		return nil, err
	}
	message := UnmarshalJSON[struct {
		Type string `json:"type"`
	}](msg)
	var parsedMessage any
	switch message.Type {
	case "createRoom":
		parsedMessage = UnmarshalJSON[CreateRoomMessage](msg)
	case "joinRoom":
		parsedMessage = UnmarshalJSON[JoinRoomMessage](msg)
	case "startGame":
		parsedMessage = UnmarshalJSON[StartGameMessage](msg)
	case "updateProgress":
		parsedMessage = UnmarshalJSON[ProgressMessage](msg)
	case "changePlayerColor":
		parsedMessage = UnmarshalJSON[ChangeColorMessage](msg)
	case "returnToLobby":
		parsedMessage = UnmarshalJSON[ReturnToLobbyMessage](msg)
	case "leaveRoom":
		parsedMessage = LeaveRoomMessage{}
	default:
		return nil, ErrUndefinedType
	}
	return parsedMessage, nil
}

var colorPattern = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

var (
	ErrInvalidNickname = errors.New("Nickname must be 1-20 characters")
	ErrInvalidColor    = errors.New("Color must be a 6 digit hex value")
	ErrInvalidProgress = errors.New("Progress must be between 0 and 100")
	ErrInvalidWPM      = errors.New("WPM must be between 0 and 500")
	ErrInvalidErrors   = errors.New("Error count must not be negative")
	ErrInvalidText     = errors.New("Race text must not be empty")
)

func validateNickname(nickname string) error {
	length := utf8.RuneCountInString(nickname)
	if length < 1 || length > 20 {
		return ErrInvalidNickname
	}
	return nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

func (m CreateRoomMessage) Validate() error {
	if err := validateNickname(m.Nickname); err != nil {
		return err
	}
	return validateColor(m.Color)
}

func (m JoinRoomMessage) Validate() error {
	if err := validateNickname(m.Nickname); err != nil {
		return err
	}
	return validateColor(m.Color)
}

func (m StartGameMessage) Validate() error {
	if m.Text == "" {
		return ErrInvalidText
	}
	return nil
}

func (m ProgressMessage) Validate() error {
	if m.Progress < 0 || m.Progress > 100 {
		return ErrInvalidProgress
	}
	if m.WPM < 0 || m.WPM > 500 {
		return ErrInvalidWPM
	}
	if m.Errors < 0 {
		return ErrInvalidErrors
	}
	return nil
}

func (m ChangeColorMessage) Validate() error {
	return validateColor(m.Color)
}
