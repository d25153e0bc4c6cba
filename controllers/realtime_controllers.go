package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/acadmatch/academic-matchmaker/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades the connection and registers it with the realtime hub
// under the authenticated user's id.
func WSHandler(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID, ok := userIDInterface.(string)
	if !ok || userID == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, userID)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}
