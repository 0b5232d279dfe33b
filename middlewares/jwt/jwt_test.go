package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwtgo "github.com/dgrijalva/jwt-go"
	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/httpcontext"
	"github.com/kildevaeld/polka/middlewares/jwt"
	"github.com/kildevaeld/strong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("secret")

func newApp(t *testing.T) *polka.Polka {
	app := polka.New()
	app.Use(jwt.New(secret))
	app.Get("/me", func(ctx *httpcontext.Context) error {
		claims := ctx.UserValue(jwt.DefaultUserValue).(jwtgo.MapClaims)
		return ctx.Text(claims["sub"].(string))
	})
	return app
}

func sign(t *testing.T, key []byte) string {
	token, err := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.MapClaims{"sub": "anna"}).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWT_ValidToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(strong.HeaderAuthorization, "Bearer "+sign(t, secret))
	rec := httptest.NewRecorder()
	newApp(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anna", rec.Body.String())
}

func TestJWT_MissingToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	rec := httptest.NewRecorder()
	newApp(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_BadSignature(t *testing.T) {
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(strong.HeaderAuthorization, "Bearer "+sign(t, []byte("other")))
	rec := httptest.NewRecorder()
	newApp(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_MissingSecretPanics(t *testing.T) {
	assert.Panics(t, func() {
		jwt.NewWithConfig(jwt.Config{})
	})
}
