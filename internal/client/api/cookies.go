package api

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// sameOriginJar is an http.CookieJar that only accepts and returns cookies
// for one origin, mirroring the browser's same-origin credentials mode.
type sameOriginJar struct {
	scheme string
	host   string
	port   string
	jar    *cookiejar.Jar
}

func newSameOriginJar(origin string) (*sameOriginJar, error) {
	u, err := url.Parse(NormalizeBaseURL(origin))
	if err != nil {
		return nil, fmt.Errorf("invalid cookie origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("cookie origin %q must be scheme://host[:port]", origin)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	return &sameOriginJar{
		scheme: strings.ToLower(u.Scheme),
		host:   strings.ToLower(u.Hostname()),
		port:   effectivePort(u),
		jar:    jar,
	}, nil
}

func effectivePort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	if strings.EqualFold(u.Scheme, "https") {
		return "443"
	}
	return "80"
}

func (j *sameOriginJar) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, j.scheme) &&
		strings.EqualFold(u.Hostname(), j.host) &&
		effectivePort(u) == j.port
}

func (j *sameOriginJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if j.sameOrigin(u) {
		j.jar.SetCookies(u, cookies)
	}
}

func (j *sameOriginJar) Cookies(u *url.URL) []*http.Cookie {
	if !j.sameOrigin(u) {
		return nil
	}
	return j.jar.Cookies(u)
}
