package main

import (
	"strings"
	"testing"
)

func TestRoomCodeRoundTrip(t *testing.T) {
	codec := NewRoomCodec("test-secret")
	for i := 0; i < 20; i++ {
		roomID := NewRoomID()
		code := codec.EncryptRoomID(roomID)
		if code == roomID {
			t.Errorf("code must differ from the raw id, got %v", code)
		}
		decoded, err := codec.DecryptRoomID(code)
		if err != nil {
			t.Fatalf("decrypt failed: %v", err)
		}
		if decoded != roomID {
			t.Errorf("round trip mismatch expected: %v got: %v", roomID, decoded)
		}
	}
}

func TestDecryptGarbage(t *testing.T) {
	codec := NewRoomCodec("test-secret")
	for _, code := range []string{"", "not base64 at all!!", "YWJjZGVm", codec.EncryptRoomID("x")[:4]} {
		if _, err := codec.DecryptRoomID(code); err == nil {
			t.Errorf("expected error for %q", code)
		}
	}
}

func TestDecryptForeignKey(t *testing.T) {
	code := NewRoomCodec("one-secret").EncryptRoomID(NewRoomID())
	if _, err := NewRoomCodec("another-secret").DecryptRoomID(code); err == nil {
		t.Errorf("a code sealed under a different key must not decrypt")
	}
}

func TestRoomDisplayNameDeterministic(t *testing.T) {
	id := NewRoomID()
	first := RoomDisplayName(id)
	for i := 0; i < 5; i++ {
		if got := RoomDisplayName(id); got != first {
			t.Fatalf("display name not stable: %v vs %v", first, got)
		}
	}
	if !strings.HasSuffix(first, displayNameSuffix) {
		t.Errorf("missing suffix in %q", first)
	}
}

func TestRoomDisplayNameFromFirstSegment(t *testing.T) {
	// 0x10 % 16 == 0, 0x11 % 16 == 1: only the first hyphen-delimited
	// segment matters, reduced modulo the place list.
	cases := map[string]string{
		"00000000-aaaa": placeNames[0] + displayNameSuffix,
		"00000010-bbbb": placeNames[0] + displayNameSuffix,
		"00000011-cccc": placeNames[1] + displayNameSuffix,
		"0000000f-dddd": placeNames[15%len(placeNames)] + displayNameSuffix,
	}
	for id, want := range cases {
		if got := RoomDisplayName(id); got != want {
			t.Errorf("%v: expected %v got %v", id, want, got)
		}
	}
	if RoomDisplayName("00000011-aaaa") != RoomDisplayName("00000011-zzzz") {
		t.Errorf("suffix after the first segment must not affect the name")
	}
}

func TestNewRoomIDFormat(t *testing.T) {
	id := NewRoomID()
	if id != strings.ToLower(id) {
		t.Errorf("room ids must be lowercase, got %v", id)
	}
	if !strings.Contains(id, "-") {
		t.Errorf("room ids must be hyphen-delimited, got %v", id)
	}
}
