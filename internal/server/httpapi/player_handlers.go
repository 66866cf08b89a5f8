package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (h *handler) getData(c *gin.Context) {
	claims := currentClaims(c)

	rec, err := h.saves.Get(c.Request.Context(), claims.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}

	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "hasCharacter": false, "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hasCharacter": true, "data": newSaveData(rec)})
}

// putData stores the body as the full save. The body is decoded over a
// default record, so omitted fields are reset to their starting values.
func (h *handler) putData(c *gin.Context) {
	claims := currentClaims(c)

	data := newSaveData(models.NewSaveRecord(claims.AccountID, "", ""))
	if err := c.ShouldBindJSON(data); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.saves.Save(c.Request.Context(), claims.AccountID, data.record()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Game data saved successfully"})
}

func (h *handler) createCharacter(c *gin.Context) {
	claims := currentClaims(c)

	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := h.saves.Create(c.Request.Context(), claims.AccountID, req.Name, req.Class)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Character created", "data": newSaveData(rec)})
}

func (h *handler) online(c *gin.Context) {
	players, err := h.presence.ListOnline(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]onlinePlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, newOnlinePlayerView(p))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views), "players": views})
}

func (h *handler) heartbeat(c *gin.Context) {
	claims := currentClaims(c)

	if err := h.presence.MarkOnline(c.Request.Context(), claims.AccountID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
