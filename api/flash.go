package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seenimoa/equibull/web"
)

const (
	flashCookie      = "equibull_flash"
	subscribedCookie = "equibull_subscribed"

	subscribedFor = 365 * 24 * time.Hour
)

// setFlash stores a toast for the page rendered after the redirect.
func setFlash(w http.ResponseWriter, t web.Toast) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns the pending toast, if any, and clears it.
func takeFlash(w http.ResponseWriter, r *http.Request) []web.Toast {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var t web.Toast
	if err := json.Unmarshal(raw, &t); err != nil || t.Message == "" {
		return nil
	}
	if t.Kind != web.ToastSuccess {
		t.Kind = web.ToastError
	}
	return []web.Toast{t}
}

// markSubscribed remembers that this browser already subscribed.
func markSubscribed(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     subscribedCookie,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(subscribedFor / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSubscribed(r *http.Request) bool {
	c, err := r.Cookie(subscribedCookie)
	return err == nil && c.Value == "1"
}

// safeNext keeps redirects on this site. Browsers drop tabs and newlines
// before resolving Location, so any control byte is refused outright.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	if strings.IndexFunc(next, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0 {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
