package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"usersapi/internal/logging"
	"usersapi/internal/services"
)

// Env bundles the dependencies shared by every handler. It is built once at
// startup and passed to the handler constructors.
type Env struct {
	DB         *gorm.DB
	Tokens     *services.TokenIssuer
	Denylist   services.Denylist
	Log        logging.Logger
	BcryptCost int
}

// Context keys set by the middlewares.
const (
	ctxRequestID      = "request_id"
	ctxUserID         = "user_id"
	ctxTokenID        = "token_id"
	ctxTokenExpiresAt = "token_expires_at"
)

// internalError logs err and aborts with an empty 500.
func internalError(c *gin.Context, env *Env, msg string, err error) {
	env.Log.Error(c.Request.Context(), msg,
		"error", err,
		"request_id", c.GetString(ctxRequestID),
		"path", c.FullPath(),
	)
	c.AbortWithStatus(http.StatusInternalServerError)
}
