package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// RoomCodec turns the internal room id into the shareable room code and
// back. A single static key; deterrent against casual guessing, not a
// hardened scheme.
type RoomCodec struct {
	gcm cipher.AEAD
}

var ErrBadRoomCode = errors.New("invalid room code")

func NewRoomCodec(secret string) *RoomCodec {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		panic(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		panic(err)
	}
	return &RoomCodec{gcm}
}

func (c *RoomCodec) EncryptRoomID(roomID string) string {
	nonce := make([]byte, c.gcm.NonceSize())
	rand.Read(nonce)
	sealed := c.gcm.Seal(nonce, nonce, []byte(roomID), nil)
	return base64.RawURLEncoding.EncodeToString(sealed)
}

func (c *RoomCodec) DecryptRoomID(code string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return "", ErrBadRoomCode
	}
	nonceSize := c.gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrBadRoomCode
	}
	roomID, err := c.gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrBadRoomCode
	}
	return string(roomID), nil
}

var placeNames = []string{
	"Pantanal",
	"Amazonia",
	"Chaco",
	"Ibera",
	"Orinoco",
	"Parana",
	"Cerrado",
	"Araguaia",
	"Maracaibo",
	"Tocantins",
	"Guapore",
	"Pampas",
	"Caatinga",
	"Magdalena",
	"Beni",
	"Llanos",
}

const displayNameSuffix = " Capy Room"

// RoomDisplayName maps a room id to its human-readable name: the first
// hyphen-delimited segment read as hex, modulo the place list. Pure, so the
// same id always shows the same name on every client.
func RoomDisplayName(roomID string) string {
	segment, _, _ := strings.Cut(roomID, "-")
	n, err := strconv.ParseUint(segment, 16, 64)
	if err != nil {
		n = 0
	}
	return placeNames[n%uint64(len(placeNames))] + displayNameSuffix
}
