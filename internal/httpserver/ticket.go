package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const ticketCookieName = "wordscramble_ticket"

// ErrBadTicket is returned for tickets that fail verification.
var ErrBadTicket = errors.New("invalid ticket")

// Tickets signs and verifies round tickets: HS256 JWTs that bind a client
// to one round session.
type Tickets struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type ticketClaims struct {
	RoundID string `json:"rid"`
	jwt.RegisteredClaims
}

// NewTickets returns a signer using secret; tickets expire after ttl.
func NewTickets(secret string, ttl time.Duration) *Tickets {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	return &Tickets{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a ticket for roundID and returns it with its expiry.
func (t *Tickets) Sign(roundID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, ticketClaims{
		RoundID: roundID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := tok.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign ticket: %w", err)
	}
	return ss, exp, nil
}

// Verify checks signature and expiry and returns the round ID.
func (t *Tickets) Verify(token string) (string, error) {
	var claims ticketClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadTicket, err)
	}
	if claims.RoundID == "" {
		return "", fmt.Errorf("%w: missing round id", ErrBadTicket)
	}
	return claims.RoundID, nil
}

// setTicketCookie writes the ticket cookie with appropriate security attributes.
func setTicketCookie(w http.ResponseWriter, token string, exp time.Time, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ticketCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearTicketCookie expires the ticket cookie.
func clearTicketCookie(w http.ResponseWriter, secure bool) {
	setTicketCookie(w, "", time.Unix(0, 0), secure)
}

// bearerOrCookie extracts a ticket from the Authorization header or the ticket cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(ticketCookieName); err == nil {
		return c.Value
	}
	return ""
}
