package main

import "net/http"

func main() {
	config := MustLoadConfig()
	server := NewServer(NewRoomCodec(config.RoomSecret), NewReconnectJWT(config.RoomSecret))
	handler := NewHTTPServer(server)
	LogStartedServer(config.Port)
	http.ListenAndServe(":"+config.Port, handler)
}
