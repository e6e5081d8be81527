package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/phraseforge/internal/model"
)

func TestBuildReportFrequency(t *testing.T) {
	lists := model.WordLists{
		model.Adjective: {{Word: "big", Frequency: 900}, {Word: "rare", Frequency: 5}},
		model.Noun:      {{Word: "house", Frequency: 400}, {Word: "mouse", Frequency: 300}, {Word: "cat", Frequency: 200}, {Word: "dog", Frequency: 100}},
		model.Verb:      {{Word: "run", Frequency: 50}},
		model.Adverb:    nil,
	}
	report := BuildReport(lists, model.VariantFrequency, 10)

	if len(report.Rows) != 5 {
		t.Fatalf("expected number row plus 4 parts, got %d rows", len(report.Rows))
	}
	if report.Rows[0].Part != "number" || report.Rows[0].Eligible != 998 {
		t.Fatalf("unexpected number row: %+v", report.Rows[0])
	}
	adj := report.Rows[1]
	if adj.Total != 2 || adj.Eligible != 1 || adj.Bits != 0 {
		t.Fatalf("unexpected adjective row: %+v", adj)
	}
	noun := report.Rows[2]
	if noun.Eligible != 4 || noun.Bits != 2 {
		t.Fatalf("unexpected noun row: %+v", noun)
	}
	want := math.Log2(998) + 2
	if math.Abs(report.TotalBits-want) > 1e-9 {
		t.Fatalf("expected %.4f total bits, got %.4f", want, report.TotalBits)
	}
	if empty := report.Empty(); len(empty) != 1 || empty[0] != "adverb" {
		t.Fatalf("unexpected empty parts: %v", empty)
	}
}

func TestBuildReportLexicalIgnoresFrequency(t *testing.T) {
	lists := model.WordLists{
		model.Adjective: {{Word: "happy"}, {Word: "large"}},
		model.Noun:      {{Word: "house"}, {Word: "zebra"}},
		model.Verb:      {{Word: "walk"}, {Word: "jump"}},
		model.Adverb:    {{Word: "slowly"}, {Word: "gently"}},
	}
	report := BuildReport(lists, model.VariantLexical, 10000)
	if len(report.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(report.Rows))
	}
	if report.TotalBits != 4 {
		t.Fatalf("expected 4 bits, got %v", report.TotalBits)
	}
}

func TestRenderReport(t *testing.T) {
	lists := model.WordLists{
		model.Adjective: {{Word: "big", Frequency: 900}},
		model.Noun:      {{Word: "house", Frequency: 400}, {Word: "mouse", Frequency: 300}},
		model.Verb:      {{Word: "run", Frequency: 50}},
		model.Adverb:    {{Word: "fast", Frequency: 50}},
	}
	var buf bytes.Buffer
	if err := BuildReport(lists, model.VariantFrequency, 10).Render(&buf, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Variant frequency, frequency > 10" {
		t.Fatalf("unexpected title: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Slot") {
		t.Fatalf("unexpected header: %q", lines[1])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "total") || !strings.HasSuffix(lines[len(lines)-1], "10.96") {
		t.Fatalf("unexpected total line: %q", lines[len(lines)-1])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected no colour codes")
	}
}

func TestShouldUseColorRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ShouldUseColor(&bytes.Buffer{}, true) {
		t.Fatalf("NO_COLOR must win over force")
	}
	t.Setenv("NO_COLOR", "")
	if ShouldUseColor(&bytes.Buffer{}, false) {
		t.Fatalf("buffers are not terminals")
	}
}
