package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type operatorJWT struct {
	Email     *string `json:"email"`
	ExpiresAt int64   `json:"exp"`
	Subject   string  `json:"sub"`
}

func parseOperatorJWT(jwtStr string, decodeToken string) (*operatorJWT, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(decodeToken), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}

	parsed := operatorJWT{}
	if sub, ok := claims["sub"].(string); ok {
		parsed.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		parsed.Email = &email
	}
	if exp, ok := claims["exp"].(float64); ok {
		parsed.ExpiresAt = int64(exp)
	}

	if time.Now().UTC().Unix() > parsed.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}

	return &parsed, nil
}

// requestedBy identifies the operator behind a trigger for the audit trail.
// Authorization itself is handled upstream at the gateway, so a missing or
// unparseable token is not an error here.
func (m ApiHandler) requestedBy(c *gin.Context) *string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil
	}
	jwtStr := strings.TrimPrefix(header, "Bearer ")

	parsed, err := parseOperatorJWT(jwtStr, m.JwtDecodeToken)
	if err != nil {
		return nil
	}
	if parsed.Email != nil {
		return parsed.Email
	}
	if parsed.Subject != "" {
		return &parsed.Subject
	}
	return nil
}
