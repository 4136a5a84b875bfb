package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
)

type HTTPHandler struct {
	Server *Server
}

func NewHTTPServer(server *Server) http.Handler {
	httpHandler := HTTPHandler{server}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/"))

	r.Get("/ws", httpHandler.websocket())
	r.Get("/room/{roomCode}", httpHandler.lookupRoom())
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		client := NewClient(conn)
		go h.Server.ServeConn(client)
	}
}

type roomLookupResponse struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// lookupRoom resolves a shareable room code to the display name and the
// raw id clients join with. A code that fails to decrypt is answered
// exactly like an unknown room.
func (h HTTPHandler) lookupRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "roomCode")
		roomID, err := h.Server.codec.DecryptRoomID(code)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		room, exists := h.Server.GetRoom(roomID)
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(roomLookupResponse{Name: RoomDisplayName(room.id), ID: room.id})
	}
}
