package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frencon/backend/internal/middleware"
	"github.com/frencon/backend/internal/store"
	"github.com/frencon/backend/internal/voting"
)

type TableHandler struct {
	db       *gorm.DB
	nominees *store.NomineeStore
	votes    *store.VoteStore
}

func NewTableHandler(db *gorm.DB, nominees *store.NomineeStore, votes *store.VoteStore) *TableHandler {
	return &TableHandler{db: db, nominees: nominees, votes: votes}
}

// Get returns the aggregated voting table for one nominee type. Sort and
// filter state comes from the query string: ?sort=<column>&dir=asc|desc
// plus one query parameter per filterable column. Anonymous viewers get the
// same table with nothing editable.
func (h *TableHandler) Get(c *gin.Context) {
	gameType, ok := gameTypeParam(c)
	if !ok {
		return
	}
	variant, _ := voting.VariantFor(gameType)

	ctx := c.Request.Context()
	nominees, err := h.nominees.List(ctx, gameType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nominees"})
		return
	}
	votes, err := h.votes.List(ctx, gameType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch votes"})
		return
	}
	names, err := displayNames(ctx, h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	table := variant.BuildTable(nominees, votes, middleware.CurrentUser(c), names, tableState(c, variant))
	c.JSON(http.StatusOK, table)
}

func tableState(c *gin.Context, variant voting.Variant) voting.TableState {
	state := voting.DefaultState()
	if sort := c.Query("sort"); sort != "" {
		state.SortColumn = sort
		state.SortDesc = c.DefaultQuery("dir", "desc") != "asc"
	}

	filters := make(map[string]string)
	for _, col := range variant.Columns {
		if v := c.Query(col.Name); v != "" {
			filters[col.Name] = v
		}
	}
	state.Filters = filters
	return state
}
