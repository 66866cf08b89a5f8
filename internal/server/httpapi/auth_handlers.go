package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/gin-gonic/gin"
)

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, token, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Player registered successfully",
		"token":   token,
		"player":  playerView{ID: account.ID, Username: account.UserName, Email: account.Email},
	})
}

// login answers with the last login from before this one, nil on the first.
func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"player": playerView{
			ID:        account.ID,
			Username:  account.UserName,
			Email:     account.Email,
			LastLogin: account.LastLogin,
		},
	})
}

// logout always succeeds; the token, if any, is only used to find whom to
// mark offline.
func (h *handler) logout(c *gin.Context) {
	h.accounts.Logout(c.Request.Context(), bearerToken(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *handler) verify(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "valid": false,
			"error": common.KindInvalidSignature, "message": "no token provided",
		})
		return
	}

	claims, err := h.accounts.Verify(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false, "valid": false,
			"error": common.Kind(err), "message": "invalid token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   true,
		"player":  playerView{ID: claims.AccountID, Username: claims.Username},
	})
}
