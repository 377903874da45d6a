package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds configuration for access-token operations.
type JWTConfig struct {
	SecretKey     string
	TokenDuration time.Duration
	Issuer        string
}

// DefaultJWTConfig returns a default JWT configuration.
func DefaultJWTConfig(secretKey string) *JWTConfig {
	return &JWTConfig{
		SecretKey:     secretKey,
		TokenDuration: 24 * time.Hour,
		Issuer:        "helixarchive",
	}
}

// AccessClaims are the claims carried by an internal access token. DatasetID
// is set on tokens scoped to a single dataset (e.g. work-package download
// tokens) and empty on general session tokens.
type AccessClaims struct {
	UserID    string   `json:"user_id"`
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	DatasetID string   `json:"dataset_id,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the given role.
func (c *AccessClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type jwtCtxKey string

// jwtClaimsKey is the context key under which validated claims are stored.
const jwtClaimsKey jwtCtxKey = "jwt_claims"

// IssueAccessToken creates a signed token for the given user.
func IssueAccessToken(userID, name, email string, roles []string, config *JWTConfig) (string, error) {
	if userID == "" {
		return "", errors.New("user ID cannot be empty")
	}
	return issueToken(AccessClaims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Roles:  roles,
	}, config)
}

// IssueDatasetToken creates a signed token scoped to a single dataset, used
// to authorize downloads of that dataset's files.
func IssueDatasetToken(userID, datasetID string, config *JWTConfig) (string, error) {
	if userID == "" {
		return "", errors.New("user ID cannot be empty")
	}
	if datasetID == "" {
		return "", errors.New("dataset ID cannot be empty")
	}
	return issueToken(AccessClaims{
		UserID:    userID,
		DatasetID: datasetID,
	}, config)
}

func issueToken(claims AccessClaims, config *JWTConfig) (string, error) {
	if config.SecretKey == "" {
		return "", errors.New("secret key cannot be empty")
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    config.Issuer,
		Subject:   claims.UserID,
		Audience:  []string{"helixarchive"},
		ExpiresAt: jwt.NewNumericDate(now.Add(config.TokenDuration)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        generateTokenID(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.SecretKey))
}

// ValidateAccessToken validates a token and returns its claims.
func ValidateAccessToken(tokenString string, config *JWTConfig) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// RefreshAccessToken creates a new token with extended expiration from an
// existing one.
func RefreshAccessToken(tokenString string, config *JWTConfig) (string, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, &AccessClaims{})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	now := time.Now()
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(config.TokenDuration))
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ID = generateTokenID()

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return newToken.SignedString([]byte(config.SecretKey))
}

// JWTAuthMiddleware extracts and validates the bearer token from the
// Authorization header and injects the claims into the request context.
func JWTAuthMiddleware(config *JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := ValidateAccessToken(tokenString, config)
			if err != nil {
				http.Error(w, "Invalid token: "+err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), jwtClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// JWTOptionalMiddleware validates a bearer token when one is present but
// never rejects the request; anonymous requests continue without claims.
func JWTOptionalMiddleware(config *JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := ValidateAccessToken(tokenString, config)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), jwtClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retrieves the validated claims from ctx, if present.
func ClaimsFromContext(ctx context.Context) (*AccessClaims, bool) {
	claims, ok := ctx.Value(jwtClaimsKey).(*AccessClaims)
	return claims, ok
}

func generateTokenID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
