// Package httpclient builds the shared HTTP client used for the listing
// API and the local report endpoints: a cookie jar for the session
// credential plus a transport that stamps default headers on every request.
package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
)

// New returns a client whose requests carry the given headers and whose
// cookies (the session credential among them) persist in a jar.
func New(header http.Header) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("can't create cookie jar: %w", err)
	}

	return &http.Client{
		Jar: jar,
		Transport: &headerRoundTripper{
			base:   http.DefaultTransport,
			header: header,
		},
	}, nil
}

type headerRoundTripper struct {
	base   http.RoundTripper
	header http.Header
}

func (rt *headerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	for k, vs := range rt.header {
		for _, v := range vs {
			if r.Header.Get(k) == "" {
				r.Header.Set(k, v)
			}
		}
	}
	return rt.base.RoundTrip(r)
}
