package status

import (
	"net/url"
	"strings"
	"time"
)

// DefaultIssueEmail receives problem reports.
const DefaultIssueEmail = "dev@buk1t.com"

// LocalTimeLayout mimics a browser's default locale timestamp.
const LocalTimeLayout = "1/2/2006, 3:04:05 PM"

// isoLayout is the millisecond UTC form used in report bodies.
const isoLayout = "2006-01-02T15:04:05.000Z"

// ReportMailto builds the pre-filled issue report link. context is the
// summary of the run; it is omitted when empty. Body lines are joined
// without blank separators.
func ReportMailto(email, pageURL, context string, now time.Time) string {
	subject := "buk1t issue report (" + now.Format(LocalTimeLayout) + ")"

	lines := []string{
		"Describe what happened:",
		"Which URL?",
		"What did you expect?",
		"What actually happened?",
		"—",
		"Time: " + now.UTC().Format(isoLayout),
		"Status page: " + pageURL,
	}
	if context != "" {
		lines = append(lines, "Context: "+context)
	}

	return "mailto:" + email +
		"?subject=" + encodeURIComponent(subject) +
		"&body=" + encodeURIComponent(strings.Join(lines, "\n"))
}

// uriComponentUnreserved restores the marks encodeURIComponent leaves alone
// and writes spaces as %20.
var uriComponentUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent percent-encodes s like the browser function of the same
// name: everything but A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is escaped.
func encodeURIComponent(s string) string {
	return uriComponentUnreserved.Replace(url.QueryEscape(s))
}
