// Package auth validates bearer tokens minted by the external identity
// provider and exposes the token subject as the caller's opaque identity. No
// credentials are checked or stored here.
package auth

import (
    "errors"
    "fmt"
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/golang-jwt/jwt/v4"
    "github.com/rs/zerolog/log"
)

const identityKey = "identity"

var errMissingHeader = errors.New("missing Authorization header")

// Middleware rejects requests without a valid HS256 bearer token and stores
// the token's sub claim in the request context.
func Middleware(secret string) gin.HandlerFunc {
    if secret == "" {
        panic("auth: secret must not be empty")
    }
    return func(c *gin.Context) {
        tokenStr, err := extractToken(c)
        if err != nil {
            log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("auth: no usable token")
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
            return
        }
        subject, err := validate(tokenStr, secret)
        if err != nil {
            log.Warn().Err(err).Msg("auth: token rejected")
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
            return
        }
        c.Set(identityKey, subject)
        c.Next()
    }
}

// Identity returns the authenticated caller's opaque subject, or "" when the
// request did not pass through Middleware.
func Identity(c *gin.Context) string {
    return c.GetString(identityKey)
}

func extractToken(c *gin.Context) (string, error) {
    header := c.GetHeader("Authorization")
    if header == "" {
        return "", errMissingHeader
    }
    parts := strings.Split(header, " ")
    if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
        return "", jwt.ErrTokenMalformed
    }
    return parts[1], nil
}

func validate(tokenStr, secret string) (string, error) {
    token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
        }
        return []byte(secret), nil
    })
    if err != nil {
        return "", err
    }
    claims, ok := token.Claims.(jwt.MapClaims)
    if !ok || !token.Valid {
        return "", errors.New("invalid token claims")
    }
    subject, _ := claims["sub"].(string)
    if subject == "" {
        return "", errors.New("token has no sub claim")
    }
    return subject, nil
}
