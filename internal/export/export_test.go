package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/debatemebro/internal/debate"
	"github.com/Iron-Ham/debatemebro/internal/errors"
)

func testSnapshot() debate.Snapshot {
	results := debate.Judge(map[debate.Side]debate.Scores{
		debate.SidePro: {Logic: 4, Evidence: 5, Refutation: 4, Steelman: 5},
		debate.SideCon: {Logic: 5, Evidence: 4, Refutation: 5, Steelman: 4},
	})
	results.Verdict = &debate.Verdict{
		Headline: "Close call.",
		Summary:  "Con argued the economics better.",
		Panel:    "3 judges, 2/3 consistent after swapping positions.",
		Judges:   []debate.JudgeNote{{Name: "Logic Judge", Reasoning: "The shop data carried it."}},
	}
	return debate.Snapshot{
		SessionID: "sess-1",
		Topic:     "Should cities ban cars?",
		Status:    debate.StatusJudging,
		Positions: map[debate.Side]string{
			debate.SidePro: "Ban them",
			debate.SideCon: "Keep them",
		},
		Research: map[debate.Side][]debate.ResearchQuery{
			debate.SidePro: {{Query: "car-free city outcomes", Results: 4}},
		},
		History: []debate.CompletedTurn{
			{Index: 0, Turn: debate.Turn{
				Side: debate.SidePro, Phase: debate.PhaseOpening,
				Text:      "**Air** improves [Source 1].",
				Citations: []debate.Citation{{ID: "Source 1", Title: "Air study", URL: "https://example.org/air", Type: debate.CitationWeb}},
			}},
			{Index: 1, Turn: debate.Turn{Side: debate.SideCon, Phase: debate.PhaseOpening, Text: "Shops suffer."}},
			{Index: 2, Turn: debate.Turn{Side: debate.SidePro, Phase: debate.PhaseRebuttal, Text: "Foot traffic rises."}},
			{Index: 4, Turn: debate.Turn{Side: debate.SidePro, Phase: debate.PhaseClosing, Text: "Breathe easy."}},
		},
		Results: &results,
		Vote:    debate.SidePro,
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"yml", "yaml", false},
		{"markdown", "md", false},
		{"MD", "md", false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exp, err := NewExporter(tt.format)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrUnknownFormat) {
					t.Errorf("NewExporter(%q) error = %v, want ErrUnknownFormat", tt.format, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExporter(%q) error = %v", tt.format, err)
			}
			if exp.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", exp.Extension(), tt.wantExt)
			}
		})
	}
}

func TestFromSnapshot(t *testing.T) {
	tr := FromSnapshot(testSnapshot(), debate.DefaultCatalog())

	if len(tr.Turns) != 4 {
		t.Fatalf("len(Turns) = %d, want 4", len(tr.Turns))
	}
	if tr.Turns[0].PhaseLabel != debate.DefaultCatalog().Label(debate.PhaseOpening) {
		t.Errorf("PhaseLabel = %q", tr.Turns[0].PhaseLabel)
	}
	if tr.Turns[3].Index != 4 {
		t.Errorf("Index = %d, want plan index 4", tr.Turns[3].Index)
	}
	if tr.Results == nil || tr.Results.Winner != debate.SideCon {
		t.Fatalf("Results = %+v, want con winner", tr.Results)
	}
	if tr.Results.Blended[debate.SidePro] <= tr.Results.Blended[debate.SideCon] {
		t.Errorf("Blended = %v, want the vote to carry pro", tr.Results.Blended)
	}

	noCatalog := FromSnapshot(testSnapshot(), nil)
	if noCatalog.Turns[0].PhaseLabel != "opening" {
		t.Errorf("PhaseLabel without catalog = %q, want raw id", noCatalog.Turns[0].PhaseLabel)
	}
}

func TestFromSnapshot_NoResultsNoVote(t *testing.T) {
	snap := testSnapshot()
	snap.Results = nil
	snap.Vote = ""
	if tr := FromSnapshot(snap, nil); tr.Results != nil {
		t.Errorf("Results = %+v, want nil", tr.Results)
	}
}

func TestPhaseFilter(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"", 4},
		{"opening", 2},
		{"{opening,closing}", 3},
		{"*ing", 3},
		{"judging", 0},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			f, err := NewPhaseFilter(tt.pattern)
			if err != nil {
				t.Fatalf("NewPhaseFilter(%q) error = %v", tt.pattern, err)
			}
			tr := FromSnapshot(testSnapshot(), nil)
			got := f.Apply(tr)
			if len(got.Turns) != tt.want {
				t.Errorf("Apply() kept %d turns, want %d", len(got.Turns), tt.want)
			}
			if len(tr.Turns) != 4 {
				t.Error("Apply() modified its input")
			}
		})
	}

	if _, err := NewPhaseFilter("[open"); err == nil {
		t.Error("NewPhaseFilter(\"[open\") = nil error, want error")
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(FromSnapshot(testSnapshot(), nil), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["topic"] != "Should cities ban cars?" {
		t.Errorf("topic = %v", decoded["topic"])
	}
	if turns, ok := decoded["turns"].([]any); !ok || len(turns) != 4 {
		t.Errorf("turns = %v", decoded["turns"])
	}
	results, _ := decoded["results"].(map[string]any)
	verdict, _ := results["verdict"].(map[string]any)
	if verdict["headline"] != "Close call." {
		t.Errorf("results.verdict = %v, want headline", results["verdict"])
	}
	if judges, ok := verdict["judges"].([]any); !ok || len(judges) != 1 {
		t.Errorf("results.verdict.judges = %v, want one judge", verdict["judges"])
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(FromSnapshot(testSnapshot(), nil), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	var decoded struct {
		SessionID string `yaml:"session_id"`
		Results   struct {
			Winner  string         `yaml:"winner"`
			Verdict debate.Verdict `yaml:"verdict"`
		} `yaml:"results"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if decoded.SessionID != "sess-1" || decoded.Results.Winner != "con" {
		t.Errorf("decoded = %+v", decoded)
	}
	if v := decoded.Results.Verdict; len(v.Judges) != 1 || v.Judges[0].Reasoning != "The shop data carried it." {
		t.Errorf("verdict = %+v", v)
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(FromSnapshot(testSnapshot(), debate.DefaultCatalog()), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Should cities ban cars?",
		"- **Pro:** Ban them",
		"- car-free city outcomes (4 results)",
		"**Air** improves [Source 1].",
		"- [Source 1] [Air study](https://example.org/air)",
		"| Logical Validity (30%) | 4/5 | 5/5 |",
		"**Judges' winner:** Con",
		"**Your vote:** Pro",
		"## Verdict",
		"_3 judges, 2/3 consistent after swapping positions._",
		"**Close call.** Con argued the economics better.",
		"### Logic Judge\n\nThe shop data carried it.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "### Pro") > strings.Index(out, "### Con") {
		t.Error("pro should be listed before con")
	}
	if strings.Index(out, "## Judging") > strings.Index(out, "## Verdict") {
		t.Error("verdict should follow the scorecard")
	}
}

func TestMarkdownExporter_NoVerdict(t *testing.T) {
	snap := testSnapshot()
	r := *snap.Results
	r.Verdict = nil
	snap.Results = &r

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(FromSnapshot(snap, nil), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if strings.Contains(buf.String(), "## Verdict") {
		t.Error("markdown should omit the verdict section when there is none")
	}
}
