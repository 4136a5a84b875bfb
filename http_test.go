package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRoom(t *testing.T) {
	s := newTestServer()
	handler := NewHTTPServer(s)
	room := s.CreateRoom(newTestClient(), "alice", "capy1", "ff0000")
	code := s.codec.EncryptRoomID(room.id)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/room/"+code, nil))
	require.Equal(t, http.StatusOK, res.Code)

	var parsed roomLookupResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &parsed))
	assert.Equal(t, room.id, parsed.ID)
	assert.Equal(t, RoomDisplayName(room.id), parsed.Name)
}

func TestLookupRoomBadCode(t *testing.T) {
	s := newTestServer()
	handler := NewHTTPServer(s)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/room/garbage", nil))
	assert.Equal(t, http.StatusNotFound, res.Code, "undecryptable code answers like an unknown room")
}

func TestLookupRoomUnknownID(t *testing.T) {
	s := newTestServer()
	handler := NewHTTPServer(s)
	code := s.codec.EncryptRoomID(NewRoomID())

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/room/"+code, nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHeartbeat(t *testing.T) {
	handler := NewHTTPServer(newTestServer())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, res.Code)
}
