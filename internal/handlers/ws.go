package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/models"
	"github.com/frencon/backend/internal/store"
	"github.com/frencon/backend/internal/voting"
)

type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WSHandler streams aggregated voting tables over a websocket. Each
// connection runs two independent live subscriptions (nominees and votes)
// which may deliver in any order; the table is only sent once both have
// produced a snapshot, and is rebuilt from scratch on every delivery.
type WSHandler struct {
	db       *gorm.DB
	nominees *store.NomineeStore
	votes    *store.VoteStore
	upgrader websocket.Upgrader
}

func NewWSHandler(db *gorm.DB, nominees *store.NomineeStore, votes *store.VoteStore) *WSHandler {
	return &WSHandler{
		db:       db,
		nominees: nominees,
		votes:    votes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades GET /ws/:gameType and pushes the full table after every
// change until the client disconnects. Both subscriptions are released on
// every exit path.
func (h *WSHandler) Handle(c *gin.Context) {
	gameType, ok := gameTypeParam(c)
	if !ok {
		return
	}
	variant, _ := voting.VariantFor(gameType)
	viewer := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	nomCh, cancelNominees, err := h.nominees.Observe(ctx, gameType)
	if err != nil {
		log.Printf("ws: nominee subscription failed: %v", err)
		return
	}
	defer cancelNominees()

	voteCh, cancelVotes, err := h.votes.Observe(ctx, gameType)
	if err != nil {
		log.Printf("ws: vote subscription failed: %v", err)
		return
	}
	defer cancelVotes()

	// Reader loop only to detect the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var nominees []models.Nominee
	var votes []models.Vote
	haveNominees, haveVotes := false, false

	for {
		select {
		case snap, ok := <-nomCh:
			if !ok {
				return
			}
			nominees, haveNominees = snap, true
		case snap, ok := <-voteCh:
			if !ok {
				return
			}
			votes, haveVotes = snap, true
		case <-closed:
			return
		}

		if !haveNominees || !haveVotes {
			continue
		}

		names, err := displayNames(ctx, h.db)
		if err != nil {
			log.Printf("ws: display name query failed: %v", err)
			names = map[string]string{}
		}

		table := variant.BuildTable(nominees, votes, viewer, names, voting.DefaultState())
		if err := conn.WriteJSON(WSMessage{Type: "table", Data: table}); err != nil {
			return
		}
	}
}
