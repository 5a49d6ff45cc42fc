package citation

import (
	"testing"

	"github.com/Iron-Ham/debatemebro/internal/debate"
)

var testCitations = []debate.Citation{
	{ID: "Source 1", Title: "Commonwealth Fund", Type: debate.CitationWeb},
	{ID: "Source 2", Title: "Admin waste estimate", Type: debate.CitationDocument},
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Segment
	}{
		{
			name: "plain text",
			text: "No sources here.",
			want: []Segment{{Kind: KindText, Text: "No sources here."}},
		},
		{
			name: "resolved marker",
			text: "Costs are high [Source 1].",
			want: []Segment{
				{Kind: KindText, Text: "Costs are high "},
				{Kind: KindCitation, Text: "[Source 1]", Citation: testCitations[0]},
				{Kind: KindText, Text: "."},
			},
		},
		{
			name: "unresolved marker stays literal",
			text: "See [Source 9] for details.",
			want: []Segment{{Kind: KindText, Text: "See [Source 9] for details."}},
		},
		{
			name: "bold and marker",
			text: "**On savings:** waste is real [Source 2]",
			want: []Segment{
				{Kind: KindBold, Text: "On savings:"},
				{Kind: KindText, Text: " waste is real "},
				{Kind: KindCitation, Text: "[Source 2]", Citation: testCitations[1]},
			},
		},
		{
			name: "unclosed bold is literal",
			text: "a **b",
			want: []Segment{{Kind: KindText, Text: "a **b"}},
		},
		{
			name: "id match is exact",
			text: "[Source 10]",
			want: []Segment{{Kind: KindText, Text: "[Source 10]"}},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text, testCitations)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStrip(t *testing.T) {
	got := Strip("**Bold** claim [Source 1] and more [Source 22].")
	want := "Bold claim  and more ."
	if got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStripPartial(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"Costs are high [Source 1] and", "Costs are high  and"},
		{"Costs are high [Sou", "Costs are high "},
		{"Costs are high [Source 1", "Costs are high "},
		{"an array [0", "an array [0"},
		{"**Bold** then *", "Bold then "},
		{"**Bol", "Bol"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripPartial(tt.prefix); got != tt.want {
			t.Errorf("StripPartial(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestMarkersAndUnresolved(t *testing.T) {
	text := "[Source 2] then [Source 1] then [Source 2] and [Source 7]"

	markers := Markers(text)
	if len(markers) != 3 || markers[0] != "Source 2" || markers[1] != "Source 1" || markers[2] != "Source 7" {
		t.Errorf("Markers() = %v", markers)
	}

	unresolved := Unresolved(text, testCitations)
	if len(unresolved) != 1 || unresolved[0] != "Source 7" {
		t.Errorf("Unresolved() = %v, want [Source 7]", unresolved)
	}
}
