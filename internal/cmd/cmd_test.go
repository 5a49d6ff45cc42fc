package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/debatemebro/internal/errors"
	"github.com/Iron-Ham/debatemebro/internal/testutil"
)

const tabsPlan = `
catalog:
  phases:
    - {id: research, label: Research}
    - {id: statements, label: Statements}
    - {id: verdict, label: Verdict}
plans:
  - topic: "Tabs or spaces?"
    turns:
      - {side: pro, phase: statements, text: "Tabs **always**."}
      - {side: con, phase: statements, text: "Spaces."}
    scores:
      pro: {logic: 2, evidence: 2, refutation: 2, steelman: 2}
      con: {logic: 3, evidence: 3, refutation: 3, steelman: 3}
`

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// baseArgs pins the global flags. Flag values persist between executions of
// the shared root command, so every test sets them explicitly.
func baseArgs(t *testing.T, cfg, plan string) []string {
	t.Helper()
	if cfg == "" {
		cfg = testutil.WriteFile(t, "config.yaml", "tui:\n  theme: default\n")
	}
	return []string{"--config", cfg, "--plan", plan}
}

func exportArgs(t *testing.T, plan, format, phases, output, vote string) []string {
	args := append([]string{"export"}, baseArgs(t, "", plan)...)
	return append(args, "--format", format, "--phases", phases, "--output", output, "--vote", vote)
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "debatemebro" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "debatemebro")
	}

	expected := []string{"play", "replay", "export", "config", "phases", "topics"}
	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range expected {
		if !cmdMap[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestExport_DemoJSON(t *testing.T) {
	out, err := executeCommand(rootCmd, exportArgs(t, "", "json", "*", "", "pro")...)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}

	var got struct {
		Topic   string `json:"topic"`
		Status  string `json:"status"`
		Turns   []any  `json:"turns"`
		Results struct {
			Winner  string             `json:"winner"`
			Vote    string             `json:"vote"`
			Blended map[string]float64 `json:"blended"`
			Verdict struct {
				Headline string `json:"headline"`
				Judges   []any  `json:"judges"`
			} `json:"verdict"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !strings.Contains(got.Topic, "universal healthcare") {
		t.Errorf("topic = %q, want the demo topic", got.Topic)
	}
	if got.Status != "judging" {
		t.Errorf("status = %q, want judging", got.Status)
	}
	if len(got.Turns) != 6 {
		t.Errorf("turns = %d, want 6", len(got.Turns))
	}
	if got.Results.Winner != "con" {
		t.Errorf("winner = %q, want con", got.Results.Winner)
	}
	if got.Results.Vote != "pro" {
		t.Errorf("vote = %q, want pro", got.Results.Vote)
	}
	if got.Results.Blended["pro"] <= got.Results.Blended["con"] {
		t.Errorf("blended = %v, want the vote to tip pro ahead", got.Results.Blended)
	}
	if got.Results.Verdict.Headline == "" || len(got.Results.Verdict.Judges) != 3 {
		t.Errorf("verdict = %+v, want the demo headline and three judges", got.Results.Verdict)
	}
}

func TestExport_PhaseFilter(t *testing.T) {
	out, err := executeCommand(rootCmd, exportArgs(t, "", "markdown", "closing", "", "")...)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "## Closing Statements") {
		t.Error("markdown should include the closing phase")
	}
	if strings.Contains(out, "## Opening Arguments") {
		t.Error("markdown should not include the opening phase")
	}
}

func TestExport_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debate.yaml")
	out, err := executeCommand(rootCmd, exportArgs(t, "", "yaml", "*", path, "")...)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wrote "+path) {
		t.Errorf("output = %q, want a confirmation", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "session_id:") {
		t.Errorf("yaml export missing session_id:\n%s", data)
	}
}

func TestExport_PlanFile(t *testing.T) {
	plan := testutil.WriteFile(t, "plans.yaml", tabsPlan)
	out, err := executeCommand(rootCmd, exportArgs(t, plan, "json", "*", "", "")...)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}
	for _, want := range []string{`"topic": "Tabs or spaces?"`, `"phase_label": "Statements"`, `"winner": "con"`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %s", want)
		}
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", exportArgs(t, "", "pdf", "*", "", "")},
		{"bad phase glob", exportArgs(t, "", "json", "[open", "", "")},
		{"missing plan file", exportArgs(t, filepath.Join(t.TempDir(), "absent.yaml"), "json", "*", "", "")},
		{"unknown vote", exportArgs(t, "", "json", "*", "", "maybe")},
	}
	t.Cleanup(func() {
		_ = exportCmd.Flags().Set("format", "markdown")
		_ = exportCmd.Flags().Set("phases", "*")
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(rootCmd, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestReplay_Instant(t *testing.T) {
	args := append([]string{"replay"}, baseArgs(t, "", "")...)
	args = append(args, "--instant", "--stream=false", "--vote", "pro", "--width", "100", "--stall-side=")
	out, err := executeCommand(rootCmd, args...)
	if err != nil {
		t.Fatalf("replay error = %v\n%s", err, out)
	}

	for _, want := range []string{
		"Should the United States adopt universal healthcare?",
		"Opening Arguments",
		"Closing Statements",
		"research done",
		"[Source 1]",
		"Judges' Scorecard",
		"Logical Validity (30%)",
		"Judges favor CON",
		"3 AI judges evaluated the debate",
		"Extremely close debate.",
		"Judge reasoning (Logic Judge)",
		"Your vote: PRO",
		"Blended PRO: 93%",
		"Blended CON: 55%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("replay output missing %q", want)
		}
	}
	if strings.Contains(out, "**") {
		t.Error("bold delimiters should be stripped")
	}
}

func TestReplay_StallSide(t *testing.T) {
	t.Cleanup(func() { _ = replayCmd.Flags().Set("stall-side", "") })

	args := append([]string{"replay"}, baseArgs(t, "", "")...)
	args = append(args, "--instant", "--stream=false", "--vote", "", "--width", "100", "--stall-side", "con")
	out, err := executeCommand(rootCmd, args...)
	if !errors.Is(err, errors.ErrResearchTimeout) {
		t.Fatalf("replay error = %v, want ErrResearchTimeout\n%s", err, out)
	}
	for _, want := range []string{"[PRO] research done", "Debate stopped:"} {
		if !strings.Contains(out, want) {
			t.Errorf("replay output missing %q", want)
		}
	}
	for _, unwanted := range []string{"[CON] research done", "Opening Arguments", "Judges' Scorecard"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("stalled replay should not print %q", unwanted)
		}
	}
}

func TestReplay_StallSideRejected(t *testing.T) {
	t.Cleanup(func() { _ = replayCmd.Flags().Set("stall-side", "") })

	tests := []struct {
		name    string
		config  string
		side    string
		wantErr string
	}{
		{name: "unknown side", side: "moderator", wantErr: "not a side"},
		{name: "timeout disabled", config: "research:\n  timeout_seconds: 0\n", side: "con", wantErr: "timeout_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ""
			if tt.config != "" {
				cfg = testutil.WriteFile(t, "config.yaml", tt.config)
			}
			args := append([]string{"replay"}, baseArgs(t, cfg, "")...)
			args = append(args, "--instant", "--stream=false", "--vote", "", "--width", "100", "--stall-side", tt.side)
			out, err := executeCommand(rootCmd, args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("replay error = %v, want containing %q\n%s", err, tt.wantErr, out)
			}
		})
	}
}

func TestPhases(t *testing.T) {
	args := append([]string{"phases"}, baseArgs(t, "", "")...)
	out, err := executeCommand(rootCmd, args...)
	if err != nil {
		t.Fatalf("phases error = %v", err)
	}
	for _, want := range []string{"1. 🔍 Research", "Opening Arguments", "Preparing Rebuttals (pause)", "opening -> eval_rebuttal -> rebuttal"} {
		if !strings.Contains(out, want) {
			t.Errorf("phases output missing %q:\n%s", want, out)
		}
	}

	plan := testutil.WriteFile(t, "plans.yaml", tabsPlan)
	args = append([]string{"phases"}, baseArgs(t, "", plan)...)
	out, err = executeCommand(rootCmd, args...)
	if err != nil {
		t.Fatalf("phases error = %v", err)
	}
	if !strings.Contains(out, "Statements") || strings.Contains(out, "Evaluation pauses") {
		t.Errorf("custom catalog output unexpected:\n%s", out)
	}
}

func TestTopics(t *testing.T) {
	plan := testutil.WriteFile(t, "plans.yaml", tabsPlan)
	args := append([]string{"topics"}, baseArgs(t, "", plan)...)
	out, err := executeCommand(rootCmd, args...)
	if err != nil {
		t.Fatalf("topics error = %v", err)
	}
	if strings.TrimSpace(out) != "Tabs or spaces?" {
		t.Errorf("topics = %q", out)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"defaults", "tui:\n  theme: nord\n", false},
		{"bad theme", "tui:\n  theme: neon\n", true},
		{"bad level", "logging:\n  level: loud\n", true},
		{"negative pacing", "pacing:\n  turn_gap_ms: -5\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.WriteFile(t, "config.yaml", tt.body)
			args := append([]string{"config", "validate"}, baseArgs(t, cfg, "")...)
			out, err := executeCommand(rootCmd, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			if !tt.wantErr && !strings.Contains(out, "Configuration is valid") {
				t.Errorf("output = %q", out)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	cfg := testutil.WriteFile(t, "config.yaml", "tui:\n  theme: dracula\nresearch:\n  timeout_seconds: 15\n")
	args := append([]string{"config", "show"}, baseArgs(t, cfg, "")...)
	out, err := executeCommand(rootCmd, args...)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"Config file: " + cfg, "theme: dracula", "timeout_seconds: 15", "plan_file: (built-in demo)"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestLogs(t *testing.T) {
	dir := t.TempDir()
	cfg := testutil.WriteFile(t, "config.yaml", "logging:\n  enabled: true\n  level: debug\n  dir: "+dir+"\n")

	args := append([]string{"export"}, baseArgs(t, cfg, "")...)
	args = append(args, "--format", "json", "--phases", "*", "--output", "", "--vote", "")
	if out, err := executeCommand(rootCmd, args...); err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}

	logArgs := func(level, phase, grep string) []string {
		a := append([]string{"logs"}, baseArgs(t, cfg, "")...)
		return append(a, "--level", level, "--session", "", "--phase", phase, "--side", "", "--grep", grep, "--since", "0s", "--json=false")
	}

	out, err := executeCommand(rootCmd, logArgs("info", "", "")...)
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	if !strings.Contains(out, "session started") || !strings.Contains(out, "debate judged") {
		t.Errorf("logs missing session lifecycle:\n%s", out)
	}

	out, err = executeCommand(rootCmd, logArgs("debug", "judging", "phase changed")...)
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("filtered logs = %d lines, want 1:\n%s", lines, out)
	}
}
