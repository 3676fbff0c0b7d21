// Package export validates the session credential and downloads the
// reservation-rate spreadsheet.
package export

import (
	"net/http"
	"net/url"
	"sync"
)

const sessionCookieName = "session"

// SessionStore is the capability holding the session credential. Modeled
// as an interface so the export preconditions can be tested without a
// cookie jar.
type SessionStore interface {
	Get() string
	Set(value string)
	Clear()
}

// CookieSessionStore keeps the credential as a cookie in the shared HTTP
// client's jar, so every request to the local endpoints carries it.
type CookieSessionStore struct {
	jar  http.CookieJar
	base *url.URL
}

// NewCookieSessionStore creates a store scoped to the given base URL.
func NewCookieSessionStore(jar http.CookieJar, base *url.URL) *CookieSessionStore {
	return &CookieSessionStore{jar: jar, base: base}
}

func (s *CookieSessionStore) Get() string {
	for _, c := range s.jar.Cookies(s.base) {
		if c.Name == sessionCookieName {
			return c.Value
		}
	}
	return ""
}

func (s *CookieSessionStore) Set(value string) {
	s.jar.SetCookies(s.base, []*http.Cookie{{
		Name:   sessionCookieName,
		Value:  value,
		Path:   "/",
		MaxAge: 86400,
	}})
}

func (s *CookieSessionStore) Clear() {
	s.jar.SetCookies(s.base, []*http.Cookie{{
		Name:   sessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}})
}

// MemorySessionStore holds the credential in memory.
type MemorySessionStore struct {
	mu    sync.Mutex
	value string
}

func (s *MemorySessionStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *MemorySessionStore) Set(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
}

func (s *MemorySessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
}
