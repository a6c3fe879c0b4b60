package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
)

const (
	liveReadLimit    = 4 * 1024
	livePongWait     = 90 * time.Second
	livePingInterval = 30 * time.Second
	liveWriteWait    = 10 * time.Second
)

// LiveFeed upgrades GET /ws/admin/feedback and streams submission events
// from hub. Requests without an Origin header (non-browser clients) are
// accepted; browser origins must be in allowedOrigins.
func LiveFeed(hub *services.LiveHub, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, o := range allowedOrigins {
				if strings.EqualFold(o, origin) {
					return true
				}
			}
			return sameHost(origin, r.Host)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied with an HTTP error.
			logging.Ctx(r.Context()).Debug().Err(err).Msg("live feed upgrade failed")
			return
		}

		id := hub.Register(conn)
		defer hub.Unregister(id)
		logging.Ctx(r.Context()).Info().Str("client", id.String()).Msg("live feed client connected")

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(livePingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
						return
					}
				}
			}
		}()

		conn.SetReadLimit(liveReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(livePongWait))
		})

		// The feed is one-way; reads only drive control frames and detect close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Str("client", id.String()).Msg("live feed client disconnected")
				return
			}
		}
	}
}

func sameHost(origin, host string) bool {
	o := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	return strings.EqualFold(o, host)
}
