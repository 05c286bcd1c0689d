// internal/handlers/realtime_ws.go
package handlers

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/jason-s-yu/pushups/internal/middleware"
	"github.com/jason-s-yu/pushups/internal/realtime"
)

// WebsocketHandler upgrades a signed-in client and registers it with the hub so it receives
// rank_up pushes. Clients may send {"type":"ping"} and get {"type":"pong"} back.
func (s *APIServer) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	remoteAddr := r.RemoteAddr

	origins := s.OriginPatterns
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:   []string{realtime.Subprotocol},
		OriginPatterns: origins,
	})
	if err != nil {
		s.Logger.Warnf("websocket accept error: %v", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "handler finished")

	if c.Subprotocol() != realtime.Subprotocol {
		c.Close(BadSubprotocolError, "client must speak the pushups subprotocol")
		return
	}

	unregister := s.Hub.Register(userID, c)
	defer unregister()
	middleware.LogWebSocketConnect(s.Logger, remoteAddr, r.URL.Path)

	ctx := r.Context()
	for {
		var msg realtime.Message
		err := wsjson.Read(ctx, c, &msg)
		if err != nil {
			// wsjson closes the connection itself on non-JSON frames
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				err = nil
			}
			middleware.LogWebSocketDisconnect(s.Logger, remoteAddr, r.URL.Path, err)
			return
		}

		if msg.Type == "ping" {
			if err := wsjson.Write(ctx, c, realtime.Message{Type: "pong"}); err != nil {
				middleware.LogWebSocketDisconnect(s.Logger, remoteAddr, r.URL.Path, err)
				return
			}
		}
	}
}
