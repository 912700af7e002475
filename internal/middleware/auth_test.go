package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func doGet(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil DB is safe here: every case fails before the user lookup.
	r.GET("/protected", AuthMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doGet(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"sometoken", "Basic abc123", "Bearer"} {
		w := doGet(r, map[string]string{"Authorization": header})
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "header: %q", header)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doGet(r, map[string]string{"Authorization": "Bearer not.a.token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, guard gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		seed := func(c *gin.Context) {
			c.Set("userID", int64(1))
			c.Set("userRole", role)
			c.Next()
		}
		r.GET("/protected", seed, guard, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	cases := []struct {
		name  string
		role  string
		guard gin.HandlerFunc
		want  int
	}{
		{"user allowed on user routes", "user", UserMiddleware(), http.StatusOK},
		{"seller denied on user routes", "seller", UserMiddleware(), http.StatusForbidden},
		{"seller allowed on seller routes", "seller", SellerMiddleware(), http.StatusOK},
		{"admin allowed on seller routes", "admin", SellerMiddleware(), http.StatusOK},
		{"user denied on seller routes", "user", SellerMiddleware(), http.StatusForbidden},
		{"admin allowed on admin routes", "admin", AdminMiddleware(), http.StatusOK},
		{"seller denied on admin routes", "seller", AdminMiddleware(), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(newRouter(tc.role, tc.guard), nil)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRoleMiddlewareWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doGet(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
