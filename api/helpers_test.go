package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-cms/backend/auth"
	"github.com/inkwell-cms/backend/database"
	"github.com/inkwell-cms/backend/models"
)

type testServer struct {
	router *chi.Mux
	db     database.Database
	issuer auth.TokenIssuer
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB))

	db := database.New(gormDB)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	return testServer{
		router: newRouter(db, issuer),
		db:     db,
		issuer: issuer,
	}
}

// createUser inserts a user directly and mints a token for it, bypassing
// the register/login endpoints.
func (ts testServer) createUser(t *testing.T, username string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "Author",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, ts.db.UserRepo().Add(&user))

	token, err := ts.issuer.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (ts testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Timestamp  string          `json:"timestamp"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, rec.Code, env.StatusCode)
	require.NotEmpty(t, env.Timestamp)
	return env
}

func decodeData(t *testing.T, env testEnvelope, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, target))
}

type testListData struct {
	Count    int64          `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []postResponse `json:"results"`
}
