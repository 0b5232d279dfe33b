package jwt

import (
	"fmt"
	"strings"

	jwtgo "github.com/dgrijalva/jwt-go"
	"github.com/kildevaeld/polka"
	"github.com/kildevaeld/polka/httpcontext"
	"github.com/kildevaeld/strong"
)

// DefaultUserValue is the context user value the parsed claims are stored
// under.
const DefaultUserValue = "claims"

type Config struct {
	// Secret is the HMAC key tokens must be signed with. Required.
	Secret []byte
	// UserValue overrides the user value the claims are stored under.
	UserValue string
}

// New returns a middleware that requires a valid HMAC-signed bearer token in
// the Authorization header. The parsed claims are stored on the context;
// missing or invalid tokens short-circuit with a 401 into the error route.
func New(secret []byte) polka.HandlerFunc {
	return NewWithConfig(Config{Secret: secret})
}

func NewWithConfig(config Config) polka.HandlerFunc {
	if len(config.Secret) == 0 {
		panic("jwt: missing secret")
	}
	userValue := config.UserValue
	if userValue == "" {
		userValue = DefaultUserValue
	}

	return func(ctx *httpcontext.Context, next polka.Next) {
		auth := ctx.Request().Header.Get(strong.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			next(strong.NewHTTPError(strong.StatusUnauthorized))
			return
		}

		token, err := jwtgo.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwtgo.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwtgo.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return config.Secret, nil
		})

		if err != nil || !token.Valid {
			next(strong.NewHTTPError(strong.StatusUnauthorized))
			return
		}

		ctx.SetUserValue(userValue, token.Claims)
		next(nil)
	}
}
