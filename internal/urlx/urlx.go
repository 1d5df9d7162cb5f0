// Package urlx builds provider endpoint URLs from configured base URLs.
package urlx

import "strings"

// NormalizeBase trims whitespace and trailing slashes from a base URL.
func NormalizeBase(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

// Join concatenates base and suffix with exactly one separating slash,
// regardless of what either side carries.
func Join(base, suffix string) string {
	return NormalizeBase(base) + "/" + strings.TrimLeft(suffix, "/")
}

// JoinVersioned inserts version between base and path unless the base
// already ends with that segment, so "https://host" and "https://host/v1"
// both yield "https://host/v1/<path>". The segment match ignores case.
// An empty version appends path only.
func JoinVersioned(base, version, path string) string {
	b := NormalizeBase(base)
	if version == "" || strings.EqualFold(lastSegment(b), version) {
		return Join(b, path)
	}
	return Join(Join(b, version), path)
}

func lastSegment(s string) string {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
