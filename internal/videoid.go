package internal

import (
	"regexp"
	"strings"
)

const videoIDLength = 11

// Patterns are tried in order. Each capture must end at a non-ID character or the end of input.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`watch\?v=([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`/embed/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
}

var bareVideoID = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// youtubeHosts are the substrings that mark an input as a direct video reference
var youtubeHosts = []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}

// ExtractVideoID returns the 11 character video ID contained in a YouTube URL or bare ID
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			return m[1], true
		}
	}

	if bareVideoID.MatchString(input) {
		return input, true
	}

	return "", false
}

// IsValidVideoID checks if a string looks like a valid YouTube video ID
func IsValidVideoID(id string) bool {
	return len(id) == videoIDLength && bareVideoID.MatchString(id)
}

// CanonicalURL returns the watch URL for a video ID
func CanonicalURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Classify decides whether input refers to a video directly or should be searched for
func Classify(input string) InputKind {
	input = strings.TrimSpace(input)
	if input == "" {
		return InputKindUnknown
	}

	lower := strings.ToLower(input)
	for _, host := range youtubeHosts {
		if strings.Contains(lower, host) {
			return InputKindVideo
		}
	}

	if IsValidVideoID(input) {
		return InputKindVideo
	}

	return InputKindSearch
}
