package tle

import "strings"

// CanonicalLines is the result of line canonicalization (C1): the
// optional satellite-name line, the two data lines, and any retained
// comment lines.
type CanonicalLines struct {
	Name     string // empty if no name line was present
	HasName  bool
	Line1    string
	Line2    string
	Comments []string
}

// canonicalize implements spec.md §4.1. It never fails outright;
// structural problems are reported as Issues (INVALID_LINE_COUNT) so
// the caller can decide how to proceed.
func canonicalize(text string) (CanonicalLines, []Issue) {
	var issues []Issue

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	rawLines := strings.Split(normalized, "\n")

	var comments []string
	var dataLines []string
	for _, raw := range rawLines {
		line := strings.ReplaceAll(raw, "\t", " ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			comments = append(comments, line)
			continue
		}
		dataLines = append(dataLines, line)
	}

	cl := CanonicalLines{Comments: comments}

	switch len(dataLines) {
	case 2:
		cl.Line1 = dataLines[0]
		cl.Line2 = dataLines[1]
	case 3:
		first := dataLines[0]
		if len(first) == 0 || (first[0] != '1' && first[0] != '2') {
			cl.Name = first
			cl.HasName = true
		} else {
			issues = append(issues, newIssue(CodeSatelliteNameFormatWarn, SeverityWarning,
				"first of three data lines looks like a data line, not a satellite name"))
			cl.Name = first
			cl.HasName = true
		}
		cl.Line1 = dataLines[1]
		cl.Line2 = dataLines[2]
	default:
		issues = append(issues, Issue{
			Code:     CodeInvalidLineCount,
			Severity: SeverityError,
			Message:  "expected 2 or 3 non-comment data lines",
			Expected: "2 or 3",
			Actual:   len(dataLines),
			Position: -1,
		})
		return cl, issues
	}

	if cl.HasName && len(cl.Name) > 24 {
		issues = append(issues, Issue{
			Code:     CodeSatelliteNameTooLong,
			Severity: SeverityWarning,
			Message:  "satellite name exceeds the recommended 24 characters",
			Expected: 24,
			Actual:   len(cl.Name),
			Position: -1,
		})
	}

	return cl, issues
}
