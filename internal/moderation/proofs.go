// Package moderation holds the checks and notifications shared by the
// moderation commands.
package moderation

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

// ErrUntrustedURL is returned when a proof is not a media file on a trusted
// host.
var ErrUntrustedURL = errors.New("moderation: untrusted proof url")

// MediaExtensions are the accepted proof file types.
var MediaExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "mp4", "mp3"}

// TrustedHosts serve proofs.
var TrustedHosts = []string{
	"i.ibb.co",
	"i.imgur.com",
	"media.discordapp.net",
	"cdn.discordapp.com",
	"media.giphy.com",
	"media1.giphy.com",
	"media2.giphy.com",
	"media3.giphy.com",
	"media4.giphy.com",
}

// IsTrustedMediaURL reports whether raw is an https media file on one of
// TrustedHosts.
func IsTrustedMediaURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
	if !contains(MediaExtensions, ext) {
		return false
	}
	return contains(TrustedHosts, strings.ToLower(u.Host))
}

// ParseProofs splits a comma separated list of proof URLs. Every entry must
// be trusted; an empty list is fine.
func ParseProofs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !IsTrustedMediaURL(p) {
			return nil, ErrUntrustedURL
		}
		out = append(out, p)
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
