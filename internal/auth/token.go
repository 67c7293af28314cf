package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims du token (RBAC simple: EstAdmin)
type Claims struct {
	UserID   uint `json:"userId"`
	EstAdmin bool `json:"estAdmin"`
	jwt.RegisteredClaims
}

// Durée de vie du token d'accès
const AccessTTL = 8 * time.Hour

var (
	secretOnce sync.Once
	secretErr  error
	secret     []byte
)

func signingSecret() ([]byte, error) {
	secretOnce.Do(func() {
		s := os.Getenv("AUTH_SECRET")
		if s == "" {
			secretErr = errors.New("variable AUTH_SECRET manquante")
			return
		}
		secret = []byte(s)
	})
	return secret, secretErr
}

// GenererToken émet un JWT HS256 pour l'utilisateur donné.
func GenererToken(userID uint, estAdmin bool) (string, error) {
	key, err := signingSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		EstAdmin: estAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(key)
}

// ParseAndValidate vérifie la signature et l'expiration du token.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	key, err := signingSecret()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token invalide")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims invalides")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expiré")
	}

	return c, nil
}
