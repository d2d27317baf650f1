// Flags Quiz Duel
//
// Two players are paired from a shared queue and race through ten timed
// rounds of "name the country from its flag."
//
// Features:
// - Single shared lobby: any two connections that ask to play are paired
// - FIFO matchmaking with random, collision-checked match IDs
// - Each round races the first correct answer against a timeout
// - Tolerant answer matching: accents, short forms, and aliases accepted
// - Wrong answers leave the round open for further attempts
// - A disconnect ends the match and reports final scores to the survivor
// - Flag images served by an external flag API, addressed by country code
// - In-browser QR button to share the duel page, backed by go-qrcode

package main

import (
	_ "embed"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Messages coming from clients
type ClientMessage struct {
	Type   string `json:"type"`             // "joinGame" or "answer"
	Answer string `json:"answer,omitempty"` // answer
}

// eventMessage covers notifications that carry no payload:
// "waitingForOpponent", "wrongAnswer", "opponentDisconnected".
type eventMessage struct {
	Type string `json:"type"`
}

type gameStartMessage struct {
	Type       string `json:"type"` // "gameStart"
	GameID     string `json:"gameId"`
	OpponentID string `json:"opponentId"`
}

type newQuestionMessage struct {
	Type        string `json:"type"` // "newQuestion"
	FlagURL     string `json:"flagUrl"`
	QuestionNum int    `json:"questionNum"` // 1-based
}

type correctAnswerMessage struct {
	Type     string `json:"type"` // "correctAnswer"
	PlayerID string `json:"playerId"`
	Correct  string `json:"correct"`
}

type timeUpMessage struct {
	Type    string `json:"type"` // "timeUp"
	Correct string `json:"correct"`
}

type playerResult struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

type gameEndMessage struct {
	Type    string       `json:"type"` // "gameEnd"
	Player1 playerResult `json:"player1"`
	Player2 playerResult `json:"player2"`
}

type Client struct {
	id   string
	conn *websocket.Conn
	send chan any
}

// emit queues msg for delivery without blocking the lobby. A client whose
// buffer is full misses the message; its disconnect arrives separately.
func (c *Client) emit(msg any) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) readPump(l *Lobby) {
	defer func() {
		l.parts <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "joinGame":
			l.joins <- c
		case "answer":
			l.answers <- answerEvent{client: c, text: msg.Answer}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWS upgrades the connection and hands it to the lobby under a fresh
// opaque ID. There is no resume: a new connection is a new player.
func serveWS(cfg *Config, l *Lobby) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan any, 8),
		}

		logf(cfg, "DUEL: Connection %s from %s", client.id, realIP(r))

		go client.writePump()
		client.readPump(l)
	}
}

// QR handler: generates a PNG QR code for the duel page URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../qr; strip the trailing "/qr" to get the duel URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed flagduel/index.html
var indexHTML []byte

//go:embed flagduel/app.css
var duelCSS []byte

//go:embed flagduel/app.js
var duelJS []byte

func getIndexHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(indexHTML)
	}
}

func getCssHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(duelCSS)
	}
}

func getJsHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(duelJS)
	}
}

// registerFlagDuel sets up routes so that:
//   - $path        → HTML client
//   - $path/ws     → WebSocket into the shared lobby
//   - $path/qr     → PNG QR code for the duel URL
func registerFlagDuel(cfg *Config, path string, mux *httprouter.Router) {
	l := newLobby(cfg)
	go l.run()

	mux.GET(cfg.prefix+path, getIndexHandler(cfg))

	// Shared assets
	mux.GET(cfg.prefix+"/assets/flagduel/app.css", getCssHandler(cfg))
	mux.GET(cfg.prefix+"/assets/flagduel/app.js", getJsHandler(cfg))

	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, l))

	mux.GET(cfg.prefix+path+"/qr", qrHandler)
}
