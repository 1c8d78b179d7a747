package compose

import (
	"regexp"
	"strings"
)

// Rewrite rules applied to every generated answer, in order. They
// clean up model artifacts (leaked "Entry N" references, run-on
// paragraphs) and bold the things users scan for.
var formatRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	// Collapse excessive blank lines first
	{regexp.MustCompile(`\n\n\n+`), "\n\n"},

	// Strip leaked knowledge-entry references
	{regexp.MustCompile(`(?:Knowledge )?Entry \d+[\s:-]*`), ""},

	// Break numbered lists onto their own lines
	{regexp.MustCompile(`(\d+\.\s)`), "\n\n${1}"},
	{regexp.MustCompile(`(\?\s)(\d+\.)`), "${1}\n\n${2}"},

	// Break before sentences that shift to addressing the user
	{regexp.MustCompile(`(\. )([A-Z][a-z]+ you)`), "${1}\n\n${2}"},
	{regexp.MustCompile(`(\. )(Once|From|Would|If)`), "${1}\n\n${2}"},
	{regexp.MustCompile(`(\. )(Would you|Do you|Are you)`), "${1}\n\n${2}"},

	// Bold system names and email addresses
	{regexp.MustCompile(`\b(TUMonline|Exchange|Outlook|Thunderbird|TUM-ID|TUM-Kennung)\b`), "**${1}**"},
	{regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`), "**${1}**"},

	// The list-break rules above can stack blank lines back up
	{regexp.MustCompile(`\n\n+`), "\n\n"},
}

// Format normalizes a generated answer for display.
func Format(response string) string {
	response = strings.TrimSpace(response)
	for _, rule := range formatRules {
		response = rule.re.ReplaceAllString(response, rule.repl)
	}
	return response
}
