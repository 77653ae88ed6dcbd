package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// ErrNotHost is returned when a host token is missing, forged, expired or issued for another room.
var ErrNotHost = errors.New("caller is not the room host")

const (
	claimRoom = "room"

	defaultHostIssuer   = "marbles"
	defaultHostTokenTTL = 6 * time.Hour
)

// HostAuthority issues and verifies the capability token that lets a room's host start and reset games.
type HostAuthority struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewHostAuthority builds an authority signing with secret. Empty issuer and non-positive ttl fall back to defaults.
func NewHostAuthority(secret, issuer string, ttl time.Duration) *HostAuthority {
	if issuer == "" {
		issuer = defaultHostIssuer
	}
	if ttl <= 0 {
		ttl = defaultHostTokenTTL
	}
	return &HostAuthority{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a host token binding userID to roomID.
func (a *HostAuthority) Issue(roomID, userID string) (string, error) {
	if a == nil {
		return "", fmt.Errorf("host authority is nil")
	}
	if len(a.secret) == 0 {
		return "", fmt.Errorf("host secret is not configured")
	}
	if roomID == "" || userID == "" {
		return "", fmt.Errorf("room and user are required")
	}

	claims := jwt.MapClaims{
		"iss":     a.issuer,
		"sub":     userID,
		claimRoom: roomID,
		"jti":     uuid.NewString(),
		"iat":     a.now().Unix(),
		"exp":     a.now().Add(a.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify checks the token against roomID and returns the host user id it was issued to.
func (a *HostAuthority) Verify(tokenString, roomID string) (string, error) {
	if a == nil || len(a.secret) == 0 || tokenString == "" {
		return "", ErrNotHost
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrNotHost, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNotHost
	}
	if !claims.VerifyIssuer(a.issuer, true) {
		return "", fmt.Errorf("%w: wrong issuer", ErrNotHost)
	}
	if !claims.VerifyExpiresAt(a.now().Unix(), true) {
		return "", fmt.Errorf("%w: token expired", ErrNotHost)
	}
	if room, _ := claims[claimRoom].(string); room != roomID {
		return "", fmt.Errorf("%w: token issued for another room", ErrNotHost)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrNotHost)
	}
	return sub, nil
}
