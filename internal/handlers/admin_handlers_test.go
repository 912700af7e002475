package handlers

import (
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func adminUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "role", "name", "email", "mobile", "profile_picture", "is_active", "created_at", "updated_at",
	})
}

// All three user listings share one convention: an empty result is a 404.
func TestUserListingsEmptyAre404(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		handler func(h *Handlers) gin.HandlerFunc
		query   string
		args    []driver.Value
	}{
		{
			name:    "all users",
			path:    "/admin/users",
			handler: func(h *Handlers) gin.HandlerFunc { return h.GetUsers },
			query:   "FROM users ORDER BY created_at DESC",
		},
		{
			name:    "active users",
			path:    "/admin/active-users",
			handler: func(h *Handlers) gin.HandlerFunc { return h.GetActiveUsers },
			query:   "FROM users WHERE is_active = ?",
			args:    []driver.Value{true},
		},
		{
			name:    "inactive users",
			path:    "/admin/inactive-users",
			handler: func(h *Handlers) gin.HandlerFunc { return h.GetInactiveUsers },
			query:   "FROM users WHERE is_active = ?",
			args:    []driver.Value{false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := newMockDB(t)
			r := newTestRouter(http.MethodGet, tc.path, tc.handler(h))

			exp := mock.ExpectQuery(regexp.QuoteMeta(tc.query))
			if len(tc.args) > 0 {
				exp.WithArgs(tc.args...)
			}
			exp.WillReturnRows(adminUserRows())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetUsersReturnsAllUsers(t *testing.T) {
	h, mock := newMockDB(t)
	r := newTestRouter(http.MethodGet, "/admin/users", h.GetUsers)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY created_at DESC")).
		WillReturnRows(adminUserRows().
			AddRow(1, "user", "Asha", "asha@example.com", "0123456789", "pic.png", true, now, now).
			AddRow(2, "seller", "Ravi", "ravi@example.com", "0123456780", "pic.png", false, now, now))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asha@example.com")
	assert.Contains(t, w.Body.String(), "ravi@example.com")
	assert.NoError(t, mock.ExpectationsWereMet())
}
