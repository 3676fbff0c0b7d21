package export

import (
	"net/http/cookiejar"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	s := &MemorySessionStore{}
	require.Empty(t, s.Get())

	s.Set("abc123")
	require.Equal(t, "abc123", s.Get())

	s.Set("replaced")
	require.Equal(t, "replaced", s.Get())

	s.Clear()
	require.Empty(t, s.Get())
}

func TestCookieSessionStore(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	base, err := url.Parse("http://127.0.0.1:8000/api/download_excel")
	require.NoError(t, err)

	s := NewCookieSessionStore(jar, base)
	require.Empty(t, s.Get())

	s.Set("abc123")
	require.Equal(t, "abc123", s.Get())

	// The cookie rides the jar, so sibling endpoints see it too.
	sibling, err := url.Parse("http://127.0.0.1:8000/api/validate_session")
	require.NoError(t, err)
	found := false
	for _, c := range jar.Cookies(sibling) {
		if c.Name == "session" && c.Value == "abc123" {
			found = true
		}
	}
	require.True(t, found)

	s.Clear()
	require.Empty(t, s.Get())
}
