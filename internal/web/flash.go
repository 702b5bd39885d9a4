package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

const flashCookie = "flash"

// SetFlash stores a one-shot message for the page after a redirect. The
// cookie is signed with the per-process secret, so flashes do not survive
// a restart.
func (rn *Renderer) SetFlash(w http.ResponseWriter, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    encoded + "." + rn.sign(encoded),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
// Tampered or unverifiable cookies are discarded silently.
func (rn *Renderer) PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	encoded, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok || !hmac.Equal([]byte(rn.sign(encoded)), []byte(signature)) {
		return ""
	}
	message, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(message)
}

func (rn *Renderer) sign(payload string) string {
	mac := hmac.New(sha256.New, rn.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
