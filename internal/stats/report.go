// Package stats estimates passphrase entropy from the loaded word lists.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/phraseforge/internal/generator"
	"github.com/verte-zerg/phraseforge/internal/model"
)

// numberChoices is the size of the numeric token range [1, 999).
const numberChoices = 998

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

// Row describes one passphrase slot.
type Row struct {
	Part     string
	Total    int
	Eligible int
	Bits     float64
}

// Report contains precomputed data for entropy rendering.
type Report struct {
	Variant      model.Variant
	MinFrequency uint32
	Rows         []Row
	TotalBits    float64
}

// BuildReport measures every slot of the passphrase format of variant.
// Bits assume a uniform pick among the eligible words.
func BuildReport(lists model.WordLists, variant model.Variant, minFrequency uint32) Report {
	report := Report{Variant: variant, MinFrequency: minFrequency}
	if variant != model.VariantLexical {
		report.Rows = append(report.Rows, Row{
			Part:     "number",
			Total:    numberChoices,
			Eligible: numberChoices,
			Bits:     math.Log2(numberChoices),
		})
	}
	for _, pos := range model.PartsOfSpeech {
		entries := lists[pos]
		eligible := len(entries)
		if variant != model.VariantLexical {
			eligible = generator.CountAbove(entries, minFrequency)
		}
		report.Rows = append(report.Rows, Row{
			Part:     pos.String(),
			Total:    len(entries),
			Eligible: eligible,
			Bits:     bits(eligible),
		})
	}
	for _, row := range report.Rows {
		report.TotalBits += row.Bits
	}
	return report
}

// Empty returns the parts of speech with no eligible words.
func (r Report) Empty() []string {
	var out []string
	for _, row := range r.Rows {
		if row.Eligible == 0 {
			out = append(out, row.Part)
		}
	}
	return out
}

// Render writes the report as an aligned table.
func (r Report) Render(w io.Writer, color bool) error {
	tbl := newTable(
		column{title: "Slot"},
		column{title: "Words", right: true},
		column{title: "Eligible", right: true},
		column{title: "Bits", right: true},
	)
	for _, row := range r.Rows {
		tbl.addRow(row.Part, strconv.Itoa(row.Total), strconv.Itoa(row.Eligible), fmt.Sprintf("%.2f", row.Bits))
	}
	tbl.addRow("total", "", "", fmt.Sprintf("%.2f", r.TotalBits))

	lines := tbl.lines()
	if color {
		lines[0] = headerStyle.Render(lines[0])
	}

	title := fmt.Sprintf("Variant %s", r.Variant)
	if r.Variant != model.VariantLexical {
		title += fmt.Sprintf(", frequency > %d", r.MinFrequency)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// ShouldUseColor reports whether w is a terminal that accepts colour.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func bits(choices int) float64 {
	if choices <= 1 {
		return 0
	}
	return math.Log2(float64(choices))
}
