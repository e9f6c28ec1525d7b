package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"usersapi/internal/models"
	"usersapi/internal/utils"
)

const listLimit = 10

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, case-folded.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// ListUsers godoc
// @Summary List users
// @Description Case-insensitive substring filters on name and mail, combined with AND. At most 10 users.
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param name query string false "name contains"
// @Param mail query string false "mail contains"
// @Success 200 {array} models.User
// @Failure 401
// @Failure 403
// @Router /users [get]
func ListUsers(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := env.DB.WithContext(c.Request.Context()).Model(&models.User{})
		if name := c.Query("name"); name != "" {
			q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(name))
		}
		if mail := c.Query("mail"); mail != "" {
			q = q.Where(`LOWER(mail) LIKE ? ESCAPE '\'`, containsPattern(mail))
		}
		users := make([]models.User, 0)
		if err := q.Order("id").Limit(listLimit).Find(&users).Error; err != nil {
			internalError(c, env, "list users", err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body CreateUserRequest true "user"
// @Success 201 {object} models.User
// @Failure 400
// @Failure 409
// @Router /users [post]
func CreateUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r CreateUserRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		if err := r.Validate(); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		db := env.DB.WithContext(c.Request.Context())
		taken, err := mailTaken(db, r.Mail, 0)
		if err != nil {
			internalError(c, env, "check mail", err)
			return
		}
		if taken {
			c.Status(http.StatusConflict)
			return
		}
		hash, err := utils.HashPassword(r.Password, env.BcryptCost)
		if err != nil {
			internalError(c, env, "hash password", err)
			return
		}
		user := models.User{Name: r.Name, Mail: r.Mail, Password: hash, Active: true}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.Status(http.StatusConflict)
				return
			}
			internalError(c, env, "create user", err)
			return
		}
		env.Log.Info(c.Request.Context(), "user created", "user_id", user.ID)
		c.JSON(http.StatusCreated, user)
	}
}

// GetUser godoc
// @Summary Get user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} models.User
// @Failure 404
// @Router /users/{id} [get]
func GetUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findUser(c, env)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PatchUser godoc
// @Summary Partially update user
// @Description Only the fields present in the body change. A new password is hashed.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param input body PatchUserRequest true "fields to change"
// @Success 200 {object} models.User
// @Failure 400
// @Failure 404
// @Failure 409
// @Router /users/{id} [patch]
func PatchUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r PatchUserRequest
		if err := c.ShouldBindJSON(&r); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		if err := r.Validate(); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		user, ok := findUser(c, env)
		if !ok {
			return
		}
		db := env.DB.WithContext(c.Request.Context())

		updates := map[string]any{}
		if r.Name != nil {
			updates["name"] = *r.Name
		}
		if r.Mail != nil {
			taken, err := mailTaken(db, *r.Mail, user.ID)
			if err != nil {
				internalError(c, env, "check mail", err)
				return
			}
			if taken {
				c.Status(http.StatusConflict)
				return
			}
			updates["mail"] = *r.Mail
		}
		if r.Password != nil {
			hash, err := utils.HashPassword(*r.Password, env.BcryptCost)
			if err != nil {
				internalError(c, env, "hash password", err)
				return
			}
			updates["password"] = hash
		}
		if r.Active != nil {
			updates["active"] = *r.Active
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					c.Status(http.StatusConflict)
					return
				}
				internalError(c, env, "update user", err)
				return
			}
			if err := db.First(user, user.ID).Error; err != nil {
				internalError(c, env, "reload user", err)
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUser godoc
// @Summary Delete user
// @Description Removes the user permanently and returns its last state.
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} models.User
// @Failure 404
// @Router /users/{id} [delete]
func DeleteUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := findUser(c, env)
		if !ok {
			return
		}
		if err := env.DB.WithContext(c.Request.Context()).Delete(user).Error; err != nil {
			internalError(c, env, "delete user", err)
			return
		}
		env.Log.Info(c.Request.Context(), "user deleted", "user_id", user.ID)
		c.JSON(http.StatusOK, user)
	}
}

// findUser loads the user named by the :id path parameter. On failure it has
// already written the response.
func findUser(c *gin.Context, env *Env) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return nil, false
	}
	var user models.User
	if err := env.DB.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return nil, false
		}
		internalError(c, env, "find user", err)
		return nil, false
	}
	return &user, true
}

// mailTaken reports whether another user (not exceptID) already uses mail.
func mailTaken(db *gorm.DB, mail string, exceptID uint) (bool, error) {
	q := db.Model(&models.User{}).Where("mail = ?", mail)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
