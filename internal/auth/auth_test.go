package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)

	raw, expiresAt, err := tokens.Issue(42, "ann@example.com", "Ann", "student")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "ann@example.com", claims.Email)
}

func TestTokenManager_Rejects(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	raw, _, err := tokens.Issue(1, "a@b.c", "A", "admin")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(1, "a@b.c", "A", "admin")
	require.NoError(t, err)
	_, err = tokens.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newRouter(tokens *TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(tokens))

	router.GET("/open", func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	router.GET("/me", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/admin", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	router := newRouter(tokens)

	student, _, err := tokens.Issue(5, "s@x.y", "S", "student")
	require.NoError(t, err)
	admin, _, err := tokens.Issue(6, "a@x.y", "A", "admin")
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"anonymous open", "/open", "", http.StatusOK},
		{"anonymous me", "/me", "", http.StatusUnauthorized},
		{"student me", "/me", "Bearer " + student, http.StatusNoContent},
		{"bad token", "/open", "Bearer nope", http.StatusUnauthorized},
		{"not bearer", "/open", "Basic abc", http.StatusUnauthorized},
		{"student admin", "/admin", "Bearer " + student, http.StatusForbidden},
		{"admin admin", "/admin", "Bearer " + admin, http.StatusNoContent},
		{"anonymous admin", "/admin", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestTokenInfoVerifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "good":
			w.Write([]byte(`{"iss":"https://accounts.google.com","aud":"client","sub":"g1","email":"g@x.y","email_verified":"true","name":"Gee"}`))
		case "other-aud":
			w.Write([]byte(`{"iss":"accounts.google.com","aud":"someone","sub":"g1","email":"g@x.y","email_verified":"true"}`))
		case "unverified":
			w.Write([]byte(`{"iss":"accounts.google.com","aud":"client","sub":"g1","email":"g@x.y","email_verified":"false"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	verifier := NewTokenInfoVerifier("client").WithEndpoint(server.URL)

	identity, err := verifier.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, &GoogleIdentity{Subject: "g1", Email: "g@x.y", Name: "Gee"}, identity)

	for _, token := range []string{"other-aud", "unverified", "expired"} {
		_, err := verifier.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidGoogleToken, token)
	}

	_, err = NewTokenInfoVerifier("").Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}
