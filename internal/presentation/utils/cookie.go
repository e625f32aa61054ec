package utils

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const CookieNameCreatorToken = "creator_token"

// EnsureCreatorToken returns the caller's creator token, minting and
// setting one when the request carries none. The token is what ties a
// browser session to the schedules it opened.
func EnsureCreatorToken(w http.ResponseWriter, r *http.Request) string {
	if token := GetCreatorToken(r); token != "" {
		return token
	}
	newToken := uuid.New().String()
	SetCreatorTokenCookie(newToken, w)
	return newToken
}

// GetCreatorToken reads the token from the X-Creator-Token header (API
// clients) or the session cookie (browsers).
func GetCreatorToken(r *http.Request) string {
	if token := r.Header.Get("X-Creator-Token"); token != "" {
		return token
	}

	cookie, err := r.Cookie(CookieNameCreatorToken)
	if err != nil {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func SetCreatorTokenCookie(token string, w http.ResponseWriter) {
	expires := time.Now().Add(30 * 24 * time.Hour)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieNameCreatorToken,
		Value:    base64.StdEncoding.EncodeToString([]byte(token)),
		Path:     "/",
		HttpOnly: true,
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	})
}
