package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	reconnectKeyTTL     = time.Minute * 2
	reconnectKeyRefresh = time.Second * 45
)

// ReconnectJWT issues the signed reconnect keys clients present to resume
// a session after a transport drop. Nickname matching stays as the
// fallback identity for clients that lost the key.
type ReconnectJWT struct {
	jwtSecret string
}

func NewReconnectJWT(jwtSecret string) *ReconnectJWT {
	return &ReconnectJWT{jwtSecret}
}

func (r ReconnectJWT) Generate(roomID, nickname string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"roomId":   roomID,
		"nickname": nickname,
		"exp":      jwt.NewNumericDate(time.Now().Add(reconnectKeyTTL)),
	})
	return token.SignedString([]byte(r.jwtSecret))
}

func (r ReconnectJWT) Parse(tokenString string) (string, string, bool) {
	if tokenString == "" {
		return "", "", false
	}
	token, _ := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(r.jwtSecret), nil
	})
	if token == nil {
		return "", "", false
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		roomID, _ := claims["roomId"].(string)
		nickname, _ := claims["nickname"].(string)
		return roomID, nickname, roomID != ""
	}
	return "", "", false
}

// RefreshReconnectKey pushes a fresh key to a connected member so the one
// in hand never ages past the grace window.
func (s *Server) RefreshReconnectKey(c *Client) {
	room, exists := s.RoomByConn(c.id)
	if !exists {
		return
	}
	room.lock.Lock()
	player, present := room.players[c.id]
	var nickname string
	if present {
		nickname = player.Nickname
	}
	roomID := room.id
	room.lock.Unlock()
	if !present {
		return
	}
	key, err := s.reconnect.Generate(roomID, nickname)
	if err != nil {
		return
	}
	c.SendReconnectKey(key)
}
