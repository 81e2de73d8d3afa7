// Package observability provides formatted console output for pipeline runs.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jonathan/campaign-pipeline/internal/db"
	"github.com/jonathan/campaign-pipeline/internal/research"
	"github.com/jonathan/campaign-pipeline/internal/types"
	"github.com/mattn/go-isatty"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// columnWidth caps free-text table columns; longer cells wrap
	columnWidth = 48
)

const (
	ansiReset = "\033[0m"
	ansiBlue  = "\033[34m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out      io.Writer
	colorize bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// Colour is enabled only when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, colorize: shouldColorize(out)}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Printer) paint(color, s string) string {
	if !p.colorize {
		return s
	}
	return color + s + ansiReset
}

// printBox prints a formatted box with a title and content. The title is
// painted with color when colour output is enabled.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(color, title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", p.paint(color, pad(title, boxWidth-4)))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintReading announces the source document being read
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReading(source string) {
	fmt.Fprintf(p.out, "Reading marketing brief from: %s\n\n", source)
}

// PrintStage outputs a section header for stage index (1-based) of total
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStage(index, total int, title string) {
	line := fmt.Sprintf("== [%d/%d] %s ==", index, total, strings.TrimSpace(title))
	rule := strings.Repeat("-", len([]rune(line)))
	fmt.Fprintf(p.out, "%s\n%s\n", p.paint(ansiBlue, line), p.paint(ansiBlue, rule))
}

// PrintCampaignBrief outputs a brief as indented JSON under a heading
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCampaignBrief(heading string, brief *types.CampaignBrief) {
	if brief == nil {
		return
	}
	fmt.Fprintf(p.out, "%s:\n%s\n\n", heading, brief.JSON())
}

// PrintResearch outputs research text followed by a numbered source list
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResearch(r *types.MarketResearch) {
	if r == nil {
		return
	}
	fmt.Fprintf(p.out, "%s\n\n", strings.TrimSpace(r.Text))
	if len(r.Citations) == 0 {
		fmt.Fprintln(p.out, "No sources cited.")
		fmt.Fprintln(p.out)
		return
	}
	fmt.Fprintln(p.out, "Sources:")
	fmt.Fprintln(p.out, research.Sources(r.Citations))
}

// PrintCitations outputs citations as a table
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCitations(citations []types.Citation) {
	if len(citations) == 0 {
		return
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Title", "URI", "Source"})
	for i, c := range citations {
		tw.AppendRow(table.Row{i + 1, c.Title, c.URI, string(c.Source)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: columnWidth},
		{Number: 3, WidthMax: columnWidth},
	})
	fmt.Fprintln(p.out, tw.Render())
}

// PrintAdCopy outputs one table row per market. Entries are paired with
// countries by position; extra entries are labelled by index.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAdCopy(bundle *types.AdCopyBundle, countries []string) {
	if bundle == nil {
		return
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"Market", "Ad copy", "Localization notes", "Visual description"})
	for i := 0; i < bundle.Len(); i++ {
		market := fmt.Sprintf("#%d", i+1)
		if i < len(countries) {
			market = countries[i]
		}
		copyText, note, visual := bundle.Entry(i)
		tw.AppendRow(table.Row{market, copyText, note, visual})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: columnWidth},
		{Number: 3, WidthMax: columnWidth},
		{Number: 4, WidthMax: columnWidth},
	})
	fmt.Fprintln(p.out, tw.Render())
}

// PrintAdCopyJSON outputs the ad copy bundle as indented JSON
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAdCopyJSON(bundle *types.AdCopyBundle) {
	if bundle == nil {
		return
	}
	fmt.Fprintf(p.out, "Ad copy:\n%s\n\n", bundle.JSON())
}

// PrintStoryboard outputs the storyboard text
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStoryboard(storyboard string) {
	if strings.TrimSpace(storyboard) == "" {
		return
	}
	fmt.Fprintf(p.out, "Storyboard:\n%s\n\n", strings.TrimSpace(storyboard))
}

// PrintRunSteps outputs recorded stage executions as a table
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunSteps(steps []db.RunStep) {
	if len(steps) == 0 {
		fmt.Fprintln(p.out, "No steps recorded.")
		return
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"Step", "Category", "Status", "Duration", "Error"})
	for _, s := range steps {
		duration := ""
		if s.DurationMs != nil {
			duration = (time.Duration(*s.DurationMs) * time.Millisecond).String()
		}
		errMsg := ""
		if s.ErrorMessage != nil {
			errMsg = *s.ErrorMessage
		}
		tw.AppendRow(table.Row{s.Step, s.Category, s.Status, duration, errMsg})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: columnWidth},
	})
	fmt.Fprintln(p.out, tw.Render())
}

// PrintDone outputs the completion box for a successful run
func (p *Printer) PrintDone(runID string, elapsed time.Duration) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", runID))
	sb.WriteString(fmt.Sprintf("Elapsed:  %s", elapsed.Round(time.Millisecond)))
	p.printBox(ansiGreen, "✅ CAMPAIGN PIPELINE COMPLETE", sb.String())
}

// PrintFailure outputs the halt box for a failed run
func (p *Printer) PrintFailure(stage, phase string, err error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", stage))
	sb.WriteString(fmt.Sprintf("Halted:   %s\n", phase))
	indent := "          "
	for i, line := range wrap(err.Error(), boxWidth-4-len(indent)) {
		if i == 0 {
			sb.WriteString("Error:    " + line)
			continue
		}
		sb.WriteString("\n" + indent + line)
	}
	p.printBox(ansiRed, "❌ CAMPAIGN PIPELINE HALTED", sb.String())
}

// wrap breaks s into lines of at most width runes, splitting at spaces where
// possible. Words longer than width are split across lines.
func wrap(s string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(w) > width {
			lines = append(lines, string(cur))
			cur = nil
		}
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// PrintArtifacts outputs the stored outputs of a run as a table
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintArtifacts(artifacts []db.ArtifactSummary) {
	if len(artifacts) == 0 {
		fmt.Fprintln(p.out, "No artifacts stored.")
		return
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"Artifact", "Category", "Kind", "Stored"})
	for _, a := range artifacts {
		kind := "json"
		switch {
		case a.HasJSON && a.HasText:
			kind = "json+text"
		case a.HasText:
			kind = "text"
		}
		tw.AppendRow(table.Row{a.Step, a.Category, kind, a.CreatedAt.Format(time.RFC3339)})
	}
	fmt.Fprintln(p.out, tw.Render())
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// PrintRuns outputs a table of runs, newest first
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRuns(runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, "No runs recorded.")
		return
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"Run", "Status", "Phase", "Source", "Created"})
	for _, r := range runs {
		tw.AppendRow(table.Row{r.ID.String(), r.Status, r.Phase, r.Source, r.CreatedAt.Format(time.RFC3339)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: columnWidth},
	})
	fmt.Fprintln(p.out, tw.Render())
}

// PrintRun outputs the header box for a stored run
func (p *Printer) PrintRun(run *db.Run) {
	if run == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", run.Source))
	sb.WriteString(fmt.Sprintf("Model:    %s\n", run.Model))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", run.Status))
	sb.WriteString(fmt.Sprintf("Phase:    %s", run.Phase))
	if run.ErrorMessage != nil {
		for i, line := range wrap(*run.ErrorMessage, boxWidth-14) {
			if i == 0 {
				sb.WriteString("\nError:    " + line)
				continue
			}
			sb.WriteString("\n          " + line)
		}
	}
	p.printBox(ansiBlue, "CAMPAIGN RUN", sb.String())
}
