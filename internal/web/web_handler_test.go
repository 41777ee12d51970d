package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"go-staffhub/internal/auth"
	autherrors "go-staffhub/internal/auth/errors"
	authMock "go-staffhub/internal/auth/mock"
	"go-staffhub/internal/session"
	"go-staffhub/internal/web"
)

const testCookieName = "staffhub_session"

func setupWebRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVerifier := authMock.NewMockService(ctrl)
	rdb, redisMock := redismock.NewClientMock()
	sessions := session.NewStore(rdb, 30*time.Minute)

	handler := web.NewHandler(mockVerifier, nil, nil, sessions, testCookieName, false)
	router := setupWebRouter()
	router.POST("/web/login", handler.Login)

	t.Run("Success Sets Session Cookie", func(t *testing.T) {
		body, _ := json.Marshal(web.LoginRequest{Username: "jdoe", Password: "Secret#123"})

		mockVerifier.EXPECT().
			VerifyCredentials(gomock.Any(), "jdoe", "Secret#123").
			Return(auth.Principal{ID: "user-1", Username: "jdoe", Role: auth.RoleSales}, nil)

		redisMock.CustomMatch(func(expected, actual []interface{}) error {
			return nil
		}).ExpectSet("session:", "", 30*time.Minute).SetVal("OK")

		req := httptest.NewRequest(http.MethodPost, "/web/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, testCookieName, cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "jdoe", data["username"])
		assert.Equal(t, auth.RoleSales, data["role"])
	})

	t.Run("Invalid Credentials - No Cookie", func(t *testing.T) {
		body, _ := json.Marshal(web.LoginRequest{Username: "jdoe", Password: "wrong"})

		mockVerifier.EXPECT().
			VerifyCredentials(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.Principal{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/web/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestHandler_Logout(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	sessions := session.NewStore(rdb, 30*time.Minute)

	handler := web.NewHandler(nil, nil, nil, sessions, testCookieName, false)
	router := setupWebRouter()
	router.POST("/web/logout", func(c *gin.Context) {
		// Stands in for the session middleware resolving the cookie.
		c.Set("session_id", "sid-1")
	}, handler.Logout)

	redisMock.ExpectDel("session:sid-1").SetVal(1)

	req := httptest.NewRequest(http.MethodPost, "/web/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, redisMock.ExpectationsWereMet())

	cookies := w.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
