package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func LogCreatedRoom(roomID, nickname string) {
	log.Info().Str("room-id", roomID).Str("nickname", nickname).Msg("Created room")
}

func LogReconnectedToRoom(roomID, nickname string) {
	log.Info().Str("room-id", roomID).Str("nickname", nickname).Msg("Reconnected")
}

func LogJoinedRoom(roomID, nickname string) {
	log.Info().Str("room-id", roomID).Str("nickname", nickname).Msg("Joined room")
}

func LogLeftRoom(roomID, nickname string) {
	log.Info().Str("room-id", roomID).Str("nickname", nickname).Msg("Left room")
}

func LogHostDisconnected(roomID, nickname string) {
	log.Info().Str("room-id", roomID).Str("nickname", nickname).Msg("Host disconnected, grace window armed")
}

func LogRemovingRoom(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Removing room")
}

func LogRaceStarting(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Countdown started")
}

func LogRaceStarted(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Race started")
}

func LogRaceFinished(roomID string) {
	log.Info().Str("room-id", roomID).Msg("Race finished")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
