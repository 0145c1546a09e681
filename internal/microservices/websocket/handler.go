package websocket

import (
	"errors"
	"net/http"
	"time"

	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewUpgrader accepts same-origin requests and the given CORS origins
// ("*" allows any).
func NewUpgrader(origins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		},
	}
}

// LiveHandler upgrades GET /api/foodreviews/:id/live and streams the
// review's counters: a snapshot first, then one frame per change.
func LiveHandler(hub *Hub, reviews service.ReviewService, upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !primitive.IsValidObjectID(id) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
			return
		}

		review, err := reviews.Get(c.Request.Context(), id)
		if err != nil {
			status := http.StatusInternalServerError
			msg := "internal server error"
			if errors.Is(err, models.ErrNotFound) {
				status, msg = http.StatusNotFound, err.Error()
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		snapshot, err := encode(TypeSnapshot, models.NewReviewEvent("snapshot", review, time.Now().UTC()))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		// upgrade writes its own error response
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Debug().Err(err).Str("review_id", id).Msg("websocket upgrade failed")
			return
		}

		client := NewClient(id, c.GetString("userID"), conn, hub)
		client.send <- snapshot
		if !hub.join(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
