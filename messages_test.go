package main

import (
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOne(t *testing.T, payload string) (any, error) {
	t.Helper()
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()
	go wsutil.WriteClientText(client, []byte(payload))
	return NewClient(server).ReadMessage()
}

func TestReadMessageDispatch(t *testing.T) {
	msg, err := readOne(t, `{"type":"joinRoom","roomId":"abc","nickname":"capy","avatar":"capy1","color":"ff00ff"}`)
	require.NoError(t, err)
	join, ok := msg.(JoinRoomMessage)
	require.True(t, ok, "expected a JoinRoomMessage, got %T", msg)
	assert.Equal(t, "abc", join.RoomID)
	assert.Equal(t, "capy", join.Nickname)

	msg, err = readOne(t, `{"type":"updateProgress","roomId":"abc","progress":55,"wpm":92,"errors":1}`)
	require.NoError(t, err)
	progress, ok := msg.(ProgressMessage)
	require.True(t, ok)
	assert.Equal(t, 55, progress.Progress)

	msg, err = readOne(t, `{"type":"leaveRoom"}`)
	require.NoError(t, err)
	_, ok = msg.(LeaveRoomMessage)
	assert.True(t, ok)
}

func TestReadMessageUnknownType(t *testing.T) {
	_, err := readOne(t, `{"type":"teleport"}`)
	assert.True(t, errors.Is(err, ErrUndefinedType))
}

func TestValidateNickname(t *testing.T) {
	ok := CreateRoomMessage{Nickname: "capy", Color: "ff0000"}
	assert.NoError(t, ok.Validate())

	empty := CreateRoomMessage{Nickname: "", Color: "ff0000"}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidNickname)

	long := CreateRoomMessage{Nickname: strings.Repeat("a", 21), Color: "ff0000"}
	assert.ErrorIs(t, long.Validate(), ErrInvalidNickname)

	exactly20 := CreateRoomMessage{Nickname: strings.Repeat("a", 20), Color: "ff0000"}
	assert.NoError(t, exactly20.Validate())
}

func TestValidateColor(t *testing.T) {
	for _, color := range []string{"ff0000", "AABB99", "123abc"} {
		m := JoinRoomMessage{Nickname: "capy", Color: color}
		assert.NoError(t, m.Validate(), color)
	}
	for _, color := range []string{"", "fff", "#ff0000", "zzzzzz", "ff00001"} {
		m := JoinRoomMessage{Nickname: "capy", Color: color}
		assert.ErrorIs(t, m.Validate(), ErrInvalidColor, color)
	}
}

func TestValidateProgress(t *testing.T) {
	assert.NoError(t, ProgressMessage{Progress: 0}.Validate())
	assert.NoError(t, ProgressMessage{Progress: 100, WPM: 500}.Validate())
	assert.ErrorIs(t, ProgressMessage{Progress: 101}.Validate(), ErrInvalidProgress)
	assert.ErrorIs(t, ProgressMessage{Progress: -1}.Validate(), ErrInvalidProgress)
	assert.ErrorIs(t, ProgressMessage{Progress: 50, WPM: 501}.Validate(), ErrInvalidWPM)
	assert.ErrorIs(t, ProgressMessage{Progress: 50, Errors: -1}.Validate(), ErrInvalidErrors)
}

func TestValidateStartGame(t *testing.T) {
	assert.NoError(t, StartGameMessage{RoomID: "r", Text: "some text"}.Validate())
	assert.ErrorIs(t, StartGameMessage{RoomID: "r"}.Validate(), ErrInvalidText)
}

func TestDispatchSendsRoomErrorOnBadPayload(t *testing.T) {
	s := newTestServer()
	c := newTestClient()
	s.Dispatch(c, CreateRoomMessage{Nickname: "", Avatar: "capy1", Color: "ff0000"})
	messages := drainMessages(c)
	require.Equal(t, 1, countType(messages, "roomError"))
	assert.Empty(t, s.rooms)
}

func TestDispatchCreateThenLeave(t *testing.T) {
	s := newTestServer()
	c := newTestClient()
	s.Dispatch(c, CreateRoomMessage{Nickname: "capy", Avatar: "capy1", Color: "ff0000"})

	messages := drainMessages(c)
	require.Equal(t, 1, countType(messages, "roomCreated"))
	require.Equal(t, 1, countType(messages, "roomJoined"))
	require.Equal(t, 1, countType(messages, "reconnectKey"))
	require.Len(t, s.rooms, 1)

	s.Dispatch(c, LeaveRoomMessage{})
	assert.Empty(t, s.rooms)
}
