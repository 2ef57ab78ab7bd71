package webui

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/revquotes/console/internal/domain"
)

const sessionCookieName = "rq_session"

// CookieManager signs and reads the session-identifier cookie. The cookie
// carries only the opaque session ID; everything else lives server-side.
type CookieManager struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

func NewCookieManager(hashKey []byte, maxAge time.Duration, secure bool) *CookieManager {
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(int(maxAge.Seconds()))
	return &CookieManager{codec: codec, maxAge: maxAge, secure: secure}
}

// Read returns the session ID from the request cookie, or false when the
// cookie is absent, expired or fails signature verification.
func (m *CookieManager) Read(r *http.Request) (domain.SessionID, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	var sid string
	if err := m.codec.Decode(sessionCookieName, c.Value, &sid); err != nil || sid == "" {
		return "", false
	}
	return domain.SessionID(sid), true
}

func (m *CookieManager) Write(w http.ResponseWriter, sid domain.SessionID) error {
	encoded, err := m.codec.Encode(sessionCookieName, string(sid))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
