package utils

import (
	"regexp"
	"strings"
)

var (
	slugSpaces = regexp.MustCompile(`\s+`)
	slugStrip  = regexp.MustCompile(`[^\w-]+`)
	fileSpaces = regexp.MustCompile(`\s`)
)

// Slugify derives a URL-safe slug from a post title: lowercase, runs of
// whitespace become a single hyphen, and everything that is not a word
// character or hyphen is stripped.
//
//	"An Analysis: Interstellar!" -> "an-analysis-interstellar"
//
// The derivation is pure; equal titles always yield equal slugs.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugStrip.ReplaceAllString(s, "")
}

// SanitizeFilename makes an uploaded filename safe for use in an object
// name: whitespace becomes underscores and any path components are dropped.
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return fileSpaces.ReplaceAllString(name, "_")
}
