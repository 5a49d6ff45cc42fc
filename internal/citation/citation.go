// Package citation splits turn text into renderable segments.
//
// Turn text references its sources with inline markers of the form
// "[Source N]" and emphasizes phrases with "**bold**". A marker resolves
// when the turn carries a citation whose id equals the marker's content
// exactly ("Source N"). Unresolved markers are not an error: they render as
// the literal marker text.
package citation

import (
	"regexp"
	"strings"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

// Kind classifies a segment.
type Kind int

const (
	// KindText is plain text, including unresolved markers.
	KindText Kind = iota
	// KindBold is emphasized text without its delimiters.
	KindBold
	// KindCitation is a resolved marker.
	KindCitation
)

// Segment is one renderable run of a turn's text.
type Segment struct {
	Kind     Kind
	Text     string
	Citation debate.Citation // Set for KindCitation
}

var markerRe = regexp.MustCompile(`\[(Source \d+)\]`)

const boldDelim = "**"

// Parse splits text into segments, resolving markers against citations.
// Adjacent plain runs are merged.
func Parse(text string, citations []debate.Citation) []Segment {
	var out []Segment
	push := func(seg Segment) {
		if seg.Text == "" && seg.Kind != KindCitation {
			return
		}
		if n := len(out); n > 0 && seg.Kind == KindText && out[n-1].Kind == KindText {
			out[n-1].Text += seg.Text
			return
		}
		out = append(out, seg)
	}

	last := 0
	for _, loc := range markerRe.FindAllStringSubmatchIndex(text, -1) {
		for _, seg := range parseBold(text[last:loc[0]]) {
			push(seg)
		}
		marker := text[loc[0]:loc[1]]
		id := text[loc[2]:loc[3]]
		if c, ok := find(citations, id); ok {
			push(Segment{Kind: KindCitation, Text: marker, Citation: c})
		} else {
			push(Segment{Kind: KindText, Text: marker})
		}
		last = loc[1]
	}
	for _, seg := range parseBold(text[last:]) {
		push(seg)
	}
	return out
}

// parseBold splits s on bold delimiters. An unmatched opening delimiter is
// kept as literal text.
func parseBold(s string) []Segment {
	var out []Segment
	for {
		open := strings.Index(s, boldDelim)
		if open < 0 {
			break
		}
		end := strings.Index(s[open+len(boldDelim):], boldDelim)
		if end < 0 {
			break
		}
		end += open + len(boldDelim)
		out = append(out,
			Segment{Kind: KindText, Text: s[:open]},
			Segment{Kind: KindBold, Text: s[open+len(boldDelim) : end]},
		)
		s = s[end+len(boldDelim):]
	}
	return append(out, Segment{Kind: KindText, Text: s})
}

func find(citations []debate.Citation, id string) (debate.Citation, bool) {
	for _, c := range citations {
		if c.ID == id {
			return c, true
		}
	}
	return debate.Citation{}, false
}

// Strip removes markers and bold delimiters, leaving the prose shown while
// a turn is still streaming.
func Strip(text string) string {
	text = markerRe.ReplaceAllString(text, "")
	return strings.ReplaceAll(text, boldDelim, "")
}

// StripPartial is Strip for a prefix of a longer text. A marker or bold
// delimiter cut off at the end of the prefix is dropped as well.
func StripPartial(prefix string) string {
	if open := strings.LastIndex(prefix, "["); open >= 0 && !strings.Contains(prefix[open:], "]") {
		if strings.HasPrefix("[Source ", prefix[open:min(len(prefix), open+len("[Source "))]) {
			prefix = prefix[:open]
		}
	}
	prefix = strings.TrimRight(prefix, "*")
	return Strip(prefix)
}

// Markers returns the citation ids referenced by text, in order of first
// appearance.
func Markers(text string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, m := range markerRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

// Unresolved returns the marker ids in text that no citation matches.
func Unresolved(text string, citations []debate.Citation) []string {
	var out []string
	for _, id := range Markers(text) {
		if _, ok := find(citations, id); !ok {
			out = append(out, id)
		}
	}
	return out
}
