package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apierrors "github.com/tsukihara/groupboard-api/internal/errors"
	"github.com/tsukihara/groupboard-api/internal/middleware"
	"github.com/tsukihara/groupboard-api/internal/realtime"
)

// WSHandler upgrades authenticated group members onto their group's realtime
// channel. Membership is verified by RequireGroupAccess before the upgrade.
type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// TODO: restrict origins once the frontend host is settled.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe joins the caller to the group's broadcast channel.
func (h *WSHandler) Subscribe(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := realtime.NewClient(h.hub, conn, member.GroupID)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump()
}
