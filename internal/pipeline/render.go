package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/authorscope/internal/model"
)

var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorDim    = lipgloss.Color("#6272a4")
	colorBorder = lipgloss.Color("#44475a")
)

type summaryStyles struct {
	box    lipgloss.Style
	title  lipgloss.Style
	key    lipgloss.Style
	dim    lipgloss.Style
	human  lipgloss.Style
	unsure lipgloss.Style
	ai     lipgloss.Style
}

func newSummaryStyles(color bool) summaryStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return summaryStyles{
			box:    plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			title:  plain,
			key:    plain.Width(16),
			dim:    plain,
			human:  plain,
			unsure: plain,
			ai:     plain,
		}
	}
	return summaryStyles{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		title:  lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		key:    lipgloss.NewStyle().Foreground(colorDim).Width(16),
		dim:    lipgloss.NewStyle().Foreground(colorDim),
		human:  lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		unsure: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		ai:     lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	}
}

// Renderer writes reports as JSON, Markdown and a terminal summary
type Renderer struct {
	includeFooter bool
	styles        summaryStyles
}

// NewRenderer creates a renderer for the given output settings
func NewRenderer(cfg model.OutputConfig) *Renderer {
	return &Renderer{
		includeFooter: cfg.IncludeFooter,
		styles:        newSummaryStyles(cfg.Color),
	}
}

// JSON encodes a report with indentation
func (r *Renderer) JSON(report *model.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// RenderJSON writes the report to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders a report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	res := report.Result
	var b strings.Builder

	fmt.Fprintf(&b, "# AI Text Analysis: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **AI probability:** %s\n", res.Percent())
	fmt.Fprintf(&b, "- **Classification:** %s\n", res.Classification)
	fmt.Fprintf(&b, "- **Engine:** %s\n", res.Engine)
	fmt.Fprintf(&b, "- **Words:** %d (%d characters)\n", report.WordCount, report.ContentLength)
	fmt.Fprintf(&b, "- **Source:** %s\n", sourceLine(report.Source))
	fmt.Fprintf(&b, "- **Analyzed:** %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	if report.Cached {
		b.WriteString("- **Cached:** yes\n")
	}
	b.WriteString("\n")

	switch res.Engine {
	case model.EngineRemote:
		writeRemoteMarkdown(&b, &res)
	default:
		writeHeuristicMarkdown(&b, &res)
	}

	if report.Excerpt != "" {
		b.WriteString("## Excerpt\n\n")
		fmt.Fprintf(&b, "> %s\n\n", report.Excerpt)
	}

	if meta := report.Source.FetchMeta; meta != nil {
		b.WriteString("## Fetch\n\n")
		fmt.Fprintf(&b, "- Status: %d\n", meta.StatusCode)
		if meta.ContentType != "" {
			fmt.Fprintf(&b, "- Content-Type: %s\n", meta.ContentType)
		}
		if meta.LastModified != "" {
			fmt.Fprintf(&b, "- Last-Modified: %s\n", meta.LastModified)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "_%s_\n", report.Notice)
	}

	return b.String()
}

func writeHeuristicMarkdown(b *strings.Builder, res *model.AnalysisResult) {
	if len(res.Signals) == 0 {
		return
	}
	b.WriteString("## Signals\n\n")
	b.WriteString("| Signal | Severity | Value | Weight |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, s := range res.Signals {
		value := s.Data["normalized"]
		if value == nil {
			value = s.Data["score"]
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", s.Type, s.Severity, formatNumber(value), formatNumber(s.Data["weight"]))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "Base probability %.3f, AI phrasing %.3f, style %.3f, context %.3f.\n\n",
		res.Float("base_probability"), res.Float("common_ai_patterns"),
		res.Float("writing_style_score"), res.Float("context_score"))
}

func writeRemoteMarkdown(b *strings.Builder, res *model.AnalysisResult) {
	fmt.Fprintf(b, "## Model verdict\n\n")
	fmt.Fprintf(b, "Category %.0f of 5, confidence %.0f%% (%s, %s).\n\n",
		res.Float("category"), res.Float("confidence_score"), res.String("provider"), res.String("model"))
	if j := res.String("detailed_justification"); j != "" {
		fmt.Fprintf(b, "### Justification\n\n%s\n\n", j)
	}
	if ind := res.String("top_indicators"); ind != "" {
		fmt.Fprintf(b, "### Indicators\n\n%s\n\n", ind)
	}
}

func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.3f", n)
	case nil:
		return "-"
	default:
		return fmt.Sprint(n)
	}
}

func sourceLine(src model.Source) string {
	if src.Location == "" {
		return string(src.Kind)
	}
	return fmt.Sprintf("%s (%s)", src.Location, src.Kind)
}

// Summary renders the short terminal view of a report
func (r *Renderer) Summary(report *model.Report) string {
	st := r.styles
	res := report.Result

	verdict := st.unsure
	switch {
	case res.AIProbability <= 0.25:
		verdict = st.human
	case res.AIProbability > 0.65:
		verdict = st.ai
	}

	row := func(key, value string) string {
		return st.key.Render(key) + " " + value
	}

	lines := []string{
		st.title.Render(report.Subject),
		"",
		row("AI probability", verdict.Render(res.Percent())),
		row("Classification", verdict.Render(res.Classification)),
		row("Engine", res.Engine),
		row("Words", fmt.Sprintf("%d", report.WordCount)),
		row("Source", sourceLine(report.Source)),
	}
	if report.Cached {
		lines = append(lines, row("Cached", "yes"))
	}
	if res.Engine == model.EngineRemote {
		if ind := res.String("top_indicators"); ind != "" {
			lines = append(lines, "", st.dim.Render(ind))
		}
	}

	out := st.box.Render(strings.Join(lines, "\n"))
	if r.includeFooter {
		out += "\n" + st.dim.Render(report.Notice)
	}
	return out + "\n"
}

// RenderSummary prints the terminal view to w
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	_, _ = io.WriteString(w, r.Summary(report))
}
