package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoSecret     = errors.New("jwt secret not configured")
)

// JWTValidator validates HS256 tokens issued by the content backend's users plugin
type JWTValidator struct {
	secret      []byte
	tenantClaim string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(secret, tenantClaim string) *JWTValidator {
	if tenantClaim == "" {
		tenantClaim = "tenant"
	}
	return &JWTValidator{secret: []byte(secret), tenantClaim: tenantClaim}
}

// ValidateToken validates a JWT token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return v.extractUserContext(claims)
}

func (v *JWTValidator) extractUserContext(claims jwt.MapClaims) (*UserContext, error) {
	user := &UserContext{
		UserID:   claimString(claims, "id"),
		Username: claimString(claims, "username"),
		Email:    claimString(claims, "email"),
		Tenant:   strings.ToLower(claimString(claims, v.tenantClaim)),
	}
	if user.UserID == "" {
		user.UserID = claimString(claims, "sub")
	}
	if user.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	user.Roles = extractRoles(claims)
	if len(user.Roles) == 0 {
		user.Roles = []Role{RoleViewer}
	}
	return user, nil
}

// extractRoles reads "roles": [..] or "role": "x" or "role": {"type": "x"}
func extractRoles(claims jwt.MapClaims) []Role {
	var roles []Role
	if list, ok := claims["roles"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok && s != "" {
				roles = append(roles, Role(strings.ToLower(s)))
			}
		}
	}
	switch r := claims["role"].(type) {
	case string:
		if r != "" {
			roles = append(roles, Role(strings.ToLower(r)))
		}
	case map[string]interface{}:
		if s, ok := r["type"].(string); ok && s != "" {
			roles = append(roles, Role(strings.ToLower(s)))
		}
	}
	return roles
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
