package parse

import "regexp"

const monthNames = `(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)`

// Date-line matchers. A date line is a timeline entry heading ("March 2020",
// "1957-09-05", "Summer 1947", "ca. 1950"), so each pattern must cover the
// whole line (modulo an optional trailing ":" or " -").
var dateLinePatterns = []*regexp.Regexp{
	// March 2020 / March 5 / March 5, 2020 / March 5 2020
	regexp.MustCompile(`(?i)^` + monthNames + `\.?(?:\s+\d{1,2}(?:st|nd|rd|th)?)?(?:,?\s+\d{4})?$`),
	// 5 March 1957 / 5 March
	regexp.MustCompile(`(?i)^\d{1,2}\s+` + monthNames + `\.?(?:,?\s+\d{4})?$`),
	// ISO: 1957-09-05
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	// US style: 9/5/1957, 09/05/57
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`),
	// Season / quarter: Summer 1947, Q3 1951
	regexp.MustCompile(`(?i)^(?:spring|summer|fall|autumn|winter)\s+\d{4}$`),
	regexp.MustCompile(`(?i)^q[1-4]\s+\d{4}$`),
	// Approximate: circa 1950, ca. 1950, c. 1950, ~1950, 1950s
	regexp.MustCompile(`(?i)^(?:circa|ca\.?|c\.|~)\s*\d{3,4}s?$`),
	regexp.MustCompile(`^\d{4}s?$`),
	// Year spans: 1947-1950, 1947–1950
	regexp.MustCompile(`^\d{4}\s*[-–]\s*\d{4}$`),
}

var reDateTrailer = regexp.MustCompile(`\s*(?::|-)\s*$`)

func isDateLine(text string) bool {
	text = reDateTrailer.ReplaceAllString(text, "")
	if text == "" {
		return false
	}
	for _, re := range dateLinePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
