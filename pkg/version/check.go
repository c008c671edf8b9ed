package version

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	changeTypes   = map[string]bool{
		"Added":      true,
		"Changed":    true,
		"Deprecated": true,
		"Removed":    true,
		"Fixed":      true,
		"Security":   true,
	}
)

// Problem is a deviation from the changelog format. Line is 0 when the
// problem concerns the whole document.
type Problem struct {
	Line    int
	Message string
}

func (p Problem) String() string {
	if p.Line == 0 {
		return p.Message
	}
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

// Check reports every deviation of source from the Keep a Changelog format.
func Check(source []byte) []Problem {
	var problems []Problem
	report := func(line int, format string, args ...interface{}) {
		problems = append(problems, Problem{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	title, unreleased := false, false
	var versions []string
	for i, line := range strings.Split(string(source), "\n") {
		n := i + 1
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "# "):
			title = true
			if !strings.Contains(strings.ToLower(line), "changelog") {
				report(n, "title should mention Changelog")
			}
		case strings.HasPrefix(line, "## ["):
			version, date := splitHeading(strings.TrimPrefix(line, "## "))
			if strings.EqualFold(version, Unreleased) {
				unreleased = true
				continue
			}
			versions = append(versions, version)
			if !semverPattern.MatchString(version) {
				report(n, "version %q is not X.Y.Z", version)
			}
			if date == "" {
				report(n, "version %s has no release date", version)
			} else if !datePattern.MatchString(date) {
				report(n, "date %q is not YYYY-MM-DD", date)
			}
		case strings.HasPrefix(line, "### "):
			if kind := strings.TrimPrefix(line, "### "); !changeTypes[kind] {
				report(n, "unknown change type %q", kind)
			}
		}
	}

	if !title {
		report(0, "missing title")
	}
	if !unreleased {
		report(0, "missing [%s] section", Unreleased)
	}

	links := Parse(source).Links
	if unreleased {
		versions = append([]string{Unreleased}, versions...)
	}
	for _, v := range versions {
		if _, ok := links[v]; !ok {
			report(0, "missing link definition for [%s]", v)
		}
	}
	return problems
}
