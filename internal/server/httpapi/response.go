package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/gin-gonic/gin"
)

// Kinds that only exist at the HTTP boundary.
const (
	kindRateLimited = "rate_limited"
	kindTooLarge    = "payload_too_large"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

var kindStatus = map[string]int{
	common.KindValidation:        http.StatusBadRequest,
	common.KindInvalidCredential: http.StatusUnauthorized,
	common.KindInvalidSignature:  http.StatusForbidden,
	common.KindExpired:           http.StatusForbidden,
	common.KindNotFound:          http.StatusNotFound,
	common.KindConflict:          http.StatusConflict,
	common.KindStorage:           http.StatusInternalServerError,
}

// respondError writes the error body for err and aborts the chain.
// Storage failure details are logged, never returned.
func respondError(c *gin.Context, err error) {
	kind := common.Kind(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: kind, Message: msg})
}

func respondKind(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: kind, Message: msg})
}

// respondBindError maps a request decoding failure to 400, or 413 when the
// body limit was hit.
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondKind(c, http.StatusRequestEntityTooLarge, kindTooLarge, "request body too large")
		return
	}
	respondKind(c, http.StatusBadRequest, common.KindValidation, "malformed request body")
}
