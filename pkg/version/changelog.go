package version

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Unreleased is the heading of changes not yet released.
const Unreleased = "Unreleased"

// Release is one version section of the changelog
type Release struct {
	Version string
	Date    string
	Notes   string
}

// History is a parsed changelog. Releases are in file order, newest first.
type History struct {
	Releases []Release
	Links    map[string]string
}

// Find returns the release of version, with or without a "v" prefix.
func (h *History) Find(version string) *Release {
	version = strings.TrimPrefix(version, "v")
	for i := range h.Releases {
		if strings.TrimPrefix(h.Releases[i].Version, "v") == version {
			return &h.Releases[i]
		}
	}
	return nil
}

// Latest returns the newest released version, nil when there is none.
func (h *History) Latest() *Release {
	for i := range h.Releases {
		if !strings.EqualFold(h.Releases[i].Version, Unreleased) {
			return &h.Releases[i]
		}
	}
	return nil
}

type section struct {
	version, date string
	start, body   int
}

// Parse reads a Keep a Changelog document. Every level 2 heading starts
// a release; its notes run up to the next one.
func Parse(source []byte) *History {
	pctx := parser.NewContext()
	doc := goldmark.New().Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	h := &History{Links: make(map[string]string)}
	for _, ref := range pctx.References() {
		h.Links[string(ref.Label())] = string(ref.Destination())
	}

	var sections []section
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		s := section{}
		s.version, s.date = splitHeading(headingText(heading, source))
		if lines := heading.Lines(); lines.Len() > 0 {
			s.start = lines.At(0).Start
			s.body = lines.At(lines.Len() - 1).Stop
		}
		sections = append(sections, s)
		return ast.WalkSkipChildren, nil
	})

	for i, s := range sections {
		end := len(source)
		if i+1 < len(sections) {
			end = sections[i+1].start
		}
		var notes string
		if s.body < end {
			notes = stripLinks(string(source[s.body:end]))
		}
		h.Releases = append(h.Releases, Release{Version: s.version, Date: s.date, Notes: notes})
	}
	return h
}

// headingText concatenates the text of a heading, including link labels.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.Link:
			buf.WriteString(headingText(c, source))
		}
	}
	return buf.String()
}

// splitHeading reads "[1.2.0] - 2023-05-02", "1.2.0 - 2023-05-02" or "1.2.0".
func splitHeading(heading string) (version, date string) {
	heading = strings.TrimPrefix(strings.TrimSpace(heading), "[")
	if v, rest, ok := strings.Cut(heading, "]"); ok {
		rest = strings.TrimSpace(rest)
		return v, strings.TrimSpace(strings.TrimPrefix(rest, "-"))
	}
	if v, d, ok := strings.Cut(heading, " - "); ok {
		return strings.TrimSpace(v), strings.TrimSpace(d)
	}
	return heading, ""
}

// stripLinks drops link reference definitions that follow the last release.
func stripLinks(notes string) string {
	var kept []string
	for _, line := range strings.Split(notes, "\n") {
		if isLinkDefinition(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isLinkDefinition(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") {
		return false
	}
	_, rest, ok := strings.Cut(line, "]:")
	return ok && strings.TrimSpace(rest) != ""
}
