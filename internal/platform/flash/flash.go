package flash

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "flash"

	CategorySuccess = "success"
	CategoryError   = "error"

	defaultTTL = 5 * time.Minute
)

// Message is a one-shot notice shown on the next rendered page.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// Store keeps pending messages in a signed cookie.
type Store struct {
	secret []byte
	ttl    time.Duration
}

func NewStore(secret string) *Store {
	return &Store{secret: []byte(secret), ttl: defaultTTL}
}

// Add queues a message, keeping any still pending on the request.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, category, text string) error {
	msgs := append(s.read(r), Message{Category: category, Text: text})

	now := time.Now()
	c := claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending messages and clears the cookie.
// Invalid, tampered or expired cookies yield no messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.read(r)
}

func (s *Store) read(r *http.Request) []Message {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	t, err := jwt.ParseWithClaims(cookie.Value, &claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	if c, ok := t.Claims.(*claims); ok && t.Valid {
		return c.Messages
	}
	return nil
}
