package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CassioNunes77/randomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// identityKey is the gin context key under which the caller identity is stored.
const identityKey = "identity"

// Identity is the verified caller resolved from the identity provider's
// token: the stable subject id plus the profile claims the core consumes.
type Identity struct {
	SubjectID       string
	Name            string
	Email           string
	ProfileImageURL string
}

// TokenVerifier resolves a bearer token into a caller identity. The identity
// provider's protocol internals stay behind this interface.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// JWTVerifier verifies provider-issued tokens as HS256 JWTs carrying the
// standard sub/name/email/picture claims.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a TokenVerifier for the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and extracts the identity claims.
func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse identity token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid identity token")
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, errors.New("identity token has no subject")
	}

	identity := &Identity{SubjectID: subject}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if picture, ok := claims["picture"].(string); ok {
		identity.ProfileImageURL = picture
	}
	return identity, nil
}

// Authenticate resolves the Authorization bearer token (when present) into an
// Identity stored on the context. When required is true, requests without a
// verifiable identity are rejected before reaching the handler.
func Authenticate(verifier TokenVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				utils.SendJSONError(c, http.StatusUnauthorized, "Authentication required.", utils.ErrUnauthenticated)
				return
			}
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			utils.SendJSONError(c, http.StatusUnauthorized, "Malformed Authorization header.", utils.ErrUnauthenticated)
			return
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			utils.SendJSONError(c, http.StatusUnauthorized, "Invalid or expired credentials.", err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the verified caller identity, or nil for an
// unauthenticated request.
func IdentityFrom(c *gin.Context) *Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*Identity)
	if !ok {
		return nil
	}
	return identity
}
