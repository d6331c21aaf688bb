// Package portfolio turns raw deployment API records into display-ready projects
// and filters them for presentation. Everything here is pure.
package portfolio

import (
	"net"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"zenfolio/internal/models"
)

const vercelSuffix = ".vercel.app"

// Candidate scores, lower is better.
const (
	ScoreCustomDomain    = 0
	ScoreCanonical       = 1
	ScoreTeamAlias       = 2
	ScoreOtherVercel     = 3
	ScoreProtectedPrev   = 4
	ScoreUnparseableHost = 99
)

var (
	// deployment ids and branch names show up as hyphen-delimited segments
	previewSegment = regexp.MustCompile(`-[a-z0-9]{8,}-`)
	schemePrefix   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)
)

const forbiddenHostChars = " \t#/:<>?@[\\]^|%"

// FallbackHost is the host the platform assigns to a project by default
func FallbackHost(name string) string {
	return name + vercelSuffix
}

// Candidates lists the raw URL candidates of a project in priority order:
// production alias[0], production url, project aliases, latest deployment
// aliases, latest deployment url and the synthesized fallback.
func Candidates(raw *models.RawProject) []string {
	var out []string
	if prod := raw.Production(); prod != nil {
		if len(prod.Alias) > 0 {
			out = append(out, prod.Alias[0])
		}
		out = append(out, prod.URL)
	}
	out = append(out, raw.Alias...)
	if latest := raw.LatestDeployment(); latest != nil {
		out = append(out, latest.Alias...)
		out = append(out, latest.URL)
	}
	return append(out, FallbackHost(raw.Name))
}

// NormalizeCandidate trims s, adds https:// when no scheme is present and
// parses the result as an absolute URL. Strings that already carry a scheme,
// http or not, are parsed as they are.
func NormalizeCandidate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !schemePrefix.MatchString(s) {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || !validHost(u) {
		return "", false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), true
}

func validHost(u *url.URL) bool {
	host := u.Hostname()
	if host == "" {
		return false
	}
	if strings.HasPrefix(u.Host, "[") {
		return net.ParseIP(host) != nil
	}
	return !strings.ContainsAny(host, forbiddenHostChars)
}

// IsProtectedPreviewHost reports whether a lowercase host looks like an
// ephemeral preview deployment, which is usually behind SSO.
func IsProtectedPreviewHost(host string) bool {
	if !strings.HasSuffix(host, vercelSuffix) {
		return false
	}
	return previewSegment.MatchString(host) || strings.Contains(host, "-git-")
}

// Score ranks a normalized candidate for the named project.
// The name is compared literally, never as a pattern.
func Score(candidate, name string) int {
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return ScoreUnparseableHost
	}
	host := strings.ToLower(u.Hostname())
	name = strings.ToLower(name)

	switch {
	case !strings.HasSuffix(host, vercelSuffix):
		return ScoreCustomDomain
	case IsProtectedPreviewHost(host):
		return ScoreProtectedPrev
	case host == FallbackHost(name):
		return ScoreCanonical
	case strings.HasPrefix(host, name+"-"):
		return ScoreTeamAlias
	default:
		return ScoreOtherVercel
	}
}

// SelectBestURL picks the public URL that best represents the project,
// preferring custom domains and stable aliases over preview deployments.
func SelectBestURL(raw *models.RawProject) string {
	seen := make(map[string]struct{})
	var candidates []string
	for _, c := range Candidates(raw) {
		normalized, ok := NormalizeCandidate(c)
		if !ok {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		candidates = append(candidates, normalized)
	}

	if len(candidates) == 0 {
		return "https://" + FallbackHost(raw.Name)
	}

	slices.SortStableFunc(candidates, func(a, b string) int {
		return Score(a, raw.Name) - Score(b, raw.Name)
	})
	return candidates[0]
}
