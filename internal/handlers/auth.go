package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"usersapi/internal/models"
	"usersapi/internal/services"
	"usersapi/internal/utils"
)

// Login godoc
// @Summary Log in
// @Description Checks mail and password and issues a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "credentials"
// @Success 200 {object} TokenResponse
// @Failure 400
// @Failure 401
// @Failure 404
// @Router /login [post]
func Login(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r LoginRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		if err := r.Validate(); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		var user models.User
		if err := env.DB.WithContext(c.Request.Context()).Where("mail = ?", r.Mail).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.Status(http.StatusNotFound)
				return
			}
			internalError(c, env, "find user by mail", err)
			return
		}
		if !utils.CheckPassword(user.Password, r.Password) {
			c.Status(http.StatusUnauthorized)
			return
		}
		token, err := env.Tokens.Issue(user.ID)
		if err != nil {
			internalError(c, env, "issue token", err)
			return
		}
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

// AuthMiddleware gates every route registered after it. A missing header is
// 403; anything wrong with the token itself is 401.
func AuthMiddleware(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := env.Tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		userID, err := services.UserID(claims)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		revoked, err := env.Denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			internalError(c, env, "check token denylist", err)
			return
		}
		if revoked {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(ctxUserID, userID)
		c.Set(ctxTokenID, claims.ID)
		c.Set(ctxTokenExpiresAt, claims.ExpiresAt.Time)
		c.Next()
	}
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented token until it expires.
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 401
// @Failure 403
// @Router /logout [post]
func Logout(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenID := c.GetString(ctxTokenID)
		if tokenID == "" {
			c.Status(http.StatusUnauthorized)
			return
		}
		expiresAt := c.GetTime(ctxTokenExpiresAt)
		if expiresAt.IsZero() {
			expiresAt = time.Now().Add(env.Tokens.TTL())
		}
		if err := env.Denylist.Revoke(c.Request.Context(), tokenID, expiresAt); err != nil {
			internalError(c, env, "revoke token", err)
			return
		}
		env.Log.Info(c.Request.Context(), "user logged out", "user_id", c.GetUint(ctxUserID))
		c.JSON(http.StatusOK, StatusResponse{Status: "logged out"})
	}
}
