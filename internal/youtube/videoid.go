package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var bareIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// ExtractVideoID accepts either a bare video id or a YouTube URL (watch,
// youtu.be, embed, v, shorts, live) and returns the video id.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty video id")
	}
	if bareIDPattern.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" && !strings.Contains(raw, "://") {
		// Best effort: treat as https.
		u, err = url.Parse("https://" + raw)
		if err != nil {
			return "", err
		}
	}

	host := normalizeHost(u.Host)

	// Handle youtu.be shortlinks
	if host == "youtu.be" {
		if id := firstPathSegment(u.Path); id != "" {
			return id, nil
		}
		return "", errors.New("not a youtube url or video id not found")
	}

	if !youtubeHosts[host] {
		return "", errors.New("not a youtube url or video id not found")
	}

	if q := u.Query().Get("v"); q != "" {
		return q, nil
	}
	for _, prefix := range []string{"/embed/", "/v/", "/shorts/", "/live/"} {
		if strings.HasPrefix(u.Path, prefix) {
			if id := firstPathSegment(strings.TrimPrefix(u.Path, prefix)); id != "" {
				return id, nil
			}
		}
	}

	return "", errors.New("not a youtube url or video id not found")
}

func normalizeHost(hostport string) string {
	h := strings.TrimSpace(strings.ToLower(hostport))
	if h == "" {
		return ""
	}
	// url.URL.Host may include port.
	if strings.Contains(h, ":") {
		if parsed, err := url.Parse("//" + h); err == nil {
			if parsed.Hostname() != "" {
				h = parsed.Hostname()
			}
		}
	}
	return strings.TrimSuffix(h, ".")
}

func firstPathSegment(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return ""
	}
	seg, _, _ := strings.Cut(p, "/")
	return strings.TrimSpace(seg)
}
