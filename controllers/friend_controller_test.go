package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/cmarkstaller/fit-buddy/models"
	"github.com/cmarkstaller/fit-buddy/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.WeightEntry{}, &models.Friend{}))

	friendSvc := services.NewFriendService(db)
	userSvc := services.NewUserService(db)
	ctl := NewFriendController(friendSvc, userSvc)

	r := gin.New()
	// stand-in for the JWT middleware: trusts the X-Test-User header
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 64); err == nil {
				c.Set("userID", uint(id))
			}
		}
		c.Next()
	})
	r.POST("/friends", ctl.AddFriend)
	r.GET("/friends", ctl.ListFriends)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, email, name, code string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Password: "x", DisplayName: name, Onboarded: true}
	if code != "" {
		u.FriendCode = &code
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func postJSON(r *gin.Engine, path string, userID string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddFriendEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	me := seedUser(t, db, "me@example.com", "Me", "MMMMMM")
	seedUser(t, db, "o@example.com", "Other", "AB12CD")

	t.Run("unauthenticated", func(t *testing.T) {
		w := postJSON(r, "/friends", "", gin.H{"code": "AB12CD"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("short code is a 400 with the inline message", func(t *testing.T) {
		w := postJSON(r, "/friends", itoa(me.ID), gin.H{"code": "abc12"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "6 characters")
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		w := postJSON(r, "/friends", itoa(me.ID), gin.H{"code": "QQQQQQ"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "no user found")
	})

	t.Run("own code is a 409", func(t *testing.T) {
		w := postJSON(r, "/friends", itoa(me.ID), gin.H{"code": "MMMMMM"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("valid code links and lists", func(t *testing.T) {
		w := postJSON(r, "/friends", itoa(me.ID), gin.H{"code": "ab12cd"})
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/friends", nil)
		req.Header.Set("X-Test-User", itoa(me.ID))
		lw := httptest.NewRecorder()
		r.ServeHTTP(lw, req)
		require.Equal(t, http.StatusOK, lw.Code)
		assert.Contains(t, lw.Body.String(), "Other")
	})
}
