// Package sanitize performs mechanical cleanup on raw biodata text.
// It removes transport noise, emoji, and conversational chatter without
// parsing any fields. Every function here is pure and never fails.
package sanitize

import (
	"regexp"
	"strings"
)

// chatHeader matches WhatsApp-style chat prefixes at the start of a line,
// with or without brackets, with an optional trailing "Name:" part.
// e.g. "[12/05/21, 10:30:00 AM] Mom: " or "12/05/21, 10:30 AM - Ravi: "
var chatHeader = regexp.MustCompile(`(?m)^\[?\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4},? \d{1,2}:\d{2}(?::\d{2})? ?(?:AM|PM|am|pm)?\]? ?-? ?(?:[\w ]+: ?)?`)

// transportNoise lists literal headers/footers stripped case-insensitively.
var transportNoise = []string{
	"Forwarded message",
	"Forwarded",
	"Sent from my iPhone",
	"Sent from my Android",
	"Sent from my Samsung",
	"Get Outlook for iOS",
	"Get Outlook for Android",
}

// chatterPhrases lists conversational filler removed anywhere in the text.
var chatterPhrases = []string{
	"Hi please see attached",
	"Please find attached",
	"PFA",
	"This is my cousin's profile",
	"This is my son's profile",
	"This is my daughter's profile",
	"Let me know if you need more info",
	"Let me know if you need anything else",
	"Hope you are doing well",
	"Please check",
	"Kindly check",
	"Attached is the biodata",
	"Here is the biodata",
}

// emojiRanges covers the common emoji and symbol Unicode blocks.
var emojiRanges = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)

var (
	transportRes []*regexp.Regexp
	chatterRes   []*regexp.Regexp

	runsOfSpace = regexp.MustCompile(`[ \t]+`)
	manyBlanks  = regexp.MustCompile(`\n{3,}`)
)

func init() {
	for _, lit := range transportNoise {
		transportRes = append(transportRes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(lit)))
	}
	for _, lit := range chatterPhrases {
		chatterRes = append(chatterRes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(lit)))
	}
}

// Sanitize cleans raw biodata text. Empty input yields an empty string.
// The whitespace pass must run last: the earlier removals leave
// gaps that it collapses, which also makes Sanitize idempotent.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = stripTransportNoise(text)
	text = stripEmojis(text)
	text = stripChatter(text)
	return normalizeWhitespace(text)
}

func stripTransportNoise(text string) string {
	text = chatHeader.ReplaceAllString(text, "")
	for _, re := range transportRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func stripEmojis(text string) string {
	return emojiRanges.ReplaceAllString(text, "")
}

func stripChatter(text string) string {
	for _, re := range chatterRes {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func normalizeWhitespace(text string) string {
	text = runsOfSpace.ReplaceAllString(text, " ")
	text = manyBlanks.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
