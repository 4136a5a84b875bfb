package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	RoomSecret string
}

func MustLoadConfig() *Config {
	godotenv.Load()
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	roomSecret := os.Getenv("ROOM_SECRET")
	if roomSecret == "" {
		panic("ROOM_SECRET is not provided!")
	}
	return &Config{port, roomSecret}
}
