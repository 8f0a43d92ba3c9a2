package httpserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickets_RoundTrip(t *testing.T) {
	tk := NewTickets("secret", time.Hour)

	tok, exp, err := tk.Sign("round-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	id, err := tk.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "round-1", id)
}

func TestTickets_Expired(t *testing.T) {
	tk := NewTickets("secret", time.Minute)
	tok, _, err := tk.Sign("round-1")
	require.NoError(t, err)

	tk.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tk.Verify(tok)
	assert.ErrorIs(t, err, ErrBadTicket)
}

func TestTickets_MissingRoundID(t *testing.T) {
	tk := NewTickets("secret", time.Minute)
	tok, _, err := tk.Sign("")
	require.NoError(t, err)

	_, err = tk.Verify(tok)
	assert.ErrorIs(t, err, ErrBadTicket)
}

func TestBearerOrCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, bearerOrCookie(r))

	r.Header.Set("Authorization", "bearer abc ")
	assert.Equal(t, "abc", bearerOrCookie(r))

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Cookie", ticketCookieName+"=xyz")
	assert.Equal(t, "xyz", bearerOrCookie(r))
}
