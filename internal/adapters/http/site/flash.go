package site

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/talento/internal/app"
)

// flashCookie carries toasts across a redirect. It is cleared on first read.
const flashCookie = "talento_flash"

func writeFlash(w http.ResponseWriter, r *http.Request, notes []app.Notification) {
	if len(notes) == 0 {
		return
	}
	payload, err := json.Marshal(notes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func readFlash(w http.ResponseWriter, r *http.Request) []app.Notification {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return nil
	}
	var notes []app.Notification
	if err := json.Unmarshal(decoded, &notes); err != nil {
		return nil
	}
	out := notes[:0]
	for _, n := range notes {
		if n.Message == "" || (n.Level != app.LevelSuccess && n.Level != app.LevelError) {
			continue
		}
		out = append(out, n)
	}
	return out
}
