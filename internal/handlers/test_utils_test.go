package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"usersapi/internal/db"
	"usersapi/internal/logging"
	"usersapi/internal/models"
	"usersapi/internal/services"
)

const testSecret = "test-secret"

// setupTest creates a migrated in-memory DB and the full route table.
func setupTest(t *testing.T) (*Env, *gin.Engine) {
	t.Helper()
	return setupTestWithTTL(t, time.Hour)
}

func setupTestWithTTL(t *testing.T, ttl time.Duration) (*Env, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.Migrate(context.Background(), gdb, db.DialectSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &Env{
		DB:         gdb,
		Tokens:     services.NewTokenIssuer(testSecret, ttl),
		Denylist:   services.NewMemoryDenylist(),
		Log:        logging.Discard(),
		BcryptCost: bcrypt.MinCost,
	}

	r := gin.Default()
	r.Use(RequestLogger(env.Log))
	r.GET("/", Root())
	r.GET("/health", Health(env))
	r.POST("/login", Login(env))
	r.Use(AuthMiddleware(env))
	r.POST("/logout", Logout(env))
	r.GET("/users", ListUsers(env))
	r.POST("/users", CreateUser(env))
	r.GET("/users/:id", GetUser(env))
	r.PATCH("/users/:id", PatchUser(env))
	r.DELETE("/users/:id", DeleteUser(env))

	return env, r
}

// doJSON sends body (a string or any JSON-marshalable value) with an optional
// bearer token.
func doJSON(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	switch b := body.(type) {
	case nil:
		buf = &bytes.Buffer{}
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		buf = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// seedUser inserts a user directly, bypassing the API.
func seedUser(t *testing.T, env *Env, name, mail, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{Name: name, Mail: mail, Password: string(hash), Active: true}
	if err := env.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// loginToken seeds an admin user and returns a valid token for it.
func loginToken(t *testing.T, env *Env, r http.Handler) string {
	t.Helper()
	seedUser(t, env, "Admin", "admin@x.com", "adminpass")
	w := doJSON(r, "POST", "/login", `{"mail":"admin@x.com","password":"adminpass"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d", w.Code)
	}
	var resp TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login parse: %v", err)
	}
	return resp.Token
}
