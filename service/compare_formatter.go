package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ludo-technologies/codesim/domain"
)

// CompareOutputFormatterImpl implements the domain.CompareOutputFormatter interface
type CompareOutputFormatterImpl struct {
	utils *FormatUtils
}

// NewCompareOutputFormatter creates a new formatter. color enables ANSI codes in text output.
func NewCompareOutputFormatter(color bool) *CompareOutputFormatterImpl {
	return &CompareOutputFormatterImpl{utils: NewFormatUtils(color)}
}

// FormatCompare formats a single comparison according to the specified format
func (f *CompareOutputFormatterImpl) FormatCompare(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil || response.Result == nil {
		return domain.NewOutputError("no comparison result to format", nil)
	}

	switch format {
	case domain.OutputFormatText:
		return f.compareAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.compareAsCSV(response, writer)
	case domain.OutputFormatHTML:
		return f.compareAsHTML(response, writer)
	case domain.OutputFormatDOT:
		return f.compareAsDOT(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatBatch formats a batch response according to the specified format
func (f *CompareOutputFormatterImpl) FormatBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("no batch result to format", nil)
	}

	switch format {
	case domain.OutputFormatText:
		return f.batchAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.batchAsCSV(response, writer)
	case domain.OutputFormatHTML:
		return f.batchAsHTML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *CompareOutputFormatterImpl) compareAsText(response *domain.CompareResponse, writer io.Writer) error {
	result := response.Result
	var b strings.Builder

	b.WriteString(f.utils.FormatMainHeader("Code Similarity Report"))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Language", result.Language))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "First", result.First.Name))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Second", result.Second.Name))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Threshold", strconv.FormatFloat(result.Threshold, 'f', -1, 64)))
	b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Duration", f.utils.FormatDuration(response.Duration)))
	b.WriteString("\n")

	b.WriteString(f.utils.FormatSectionHeader("Similarity Metrics"))
	if _, err := io.WriteString(writer, b.String()); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Metric", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, s := range result.Scores {
		table.Append([]string{s.Metric.Label(), f.utils.FormatPercentage(s.Value)})
	}
	table.Render()

	if _, err := io.WriteString(writer, "\n"+f.utils.FormatSectionHeader("Clone Types")); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	verdicts := tablewriter.NewWriter(writer)
	verdicts.SetHeader([]string{"Clone Type", "Detected"})
	verdicts.SetBorder(false)
	verdicts.SetCenterSeparator("")
	verdicts.SetAutoFormatHeaders(true)
	verdicts.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
	for _, v := range result.Verdicts {
		verdicts.Append([]string{v.Type.Label(), f.utils.FormatVerdict(v.Detected)})
	}
	verdicts.Render()

	b.Reset()
	b.WriteString("\n")
	b.WriteString(f.utils.FormatSectionHeader("Inputs"))
	for _, u := range []domain.UnitStats{result.First, result.Second} {
		b.WriteString(fmt.Sprintf("  %s: %d lines, %d tokens, %d nodes, %d identifiers",
			u.Name, u.Lines, u.Tokens, u.Nodes, u.Identifiers))
		if u.ErrorNodes > 0 {
			b.WriteString(fmt.Sprintf(", %d syntax error nodes", u.ErrorNodes))
		}
		b.WriteString("\n")
	}
	if _, err := io.WriteString(writer, b.String()); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

func (f *CompareOutputFormatterImpl) compareAsCSV(response *domain.CompareResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"kind", "name", "value"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, s := range response.Result.Scores {
		if err := w.Write([]string{"score", string(s.Metric), strconv.FormatFloat(s.Value, 'f', 6, 64)}); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	for _, v := range response.Result.Verdicts {
		if err := w.Write([]string{"clone_type", string(v.Type), strconv.FormatBool(v.Detected)}); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}

func (f *CompareOutputFormatterImpl) compareAsHTML(response *domain.CompareResponse, writer io.Writer) error {
	result := response.Result
	combined, _ := result.Score(domain.MetricCombined)

	report := &htmlReport{
		Title:       "Code Similarity Report",
		Subtitle:    fmt.Sprintf("%s vs %s (%s)", result.First.Name, result.Second.Name, result.Language),
		GeneratedAt: response.GeneratedAt,
		Version:     response.Version,
		Duration:    response.Duration,
		Cards: []metricCard{
			{Value: f.utils.FormatPercentage(combined), Label: "Combined Similarity"},
			{Value: strconv.Itoa(len(result.DetectedTypes())), Label: "Clone Types Detected"},
			{Value: strconv.FormatFloat(result.Threshold, 'f', -1, 64), Label: "Threshold"},
		},
		Units: []domain.UnitStats{result.First, result.Second},
	}
	for _, s := range result.Scores {
		report.Bars = append(report.Bars, newScoreBar(s.Metric.Label(), s.Value, result.Threshold))
	}
	for _, v := range result.Verdicts {
		report.Verdicts = append(report.Verdicts, verdictRow{Label: v.Type.Label(), Detected: v.Detected})
	}
	return report.render(writer)
}

func (f *CompareOutputFormatterImpl) compareAsDOT(response *domain.CompareResponse, writer io.Writer) error {
	if len(response.Graphs) == 0 {
		return domain.NewOutputError("no structural graphs in the response; request the dot format when comparing", nil)
	}
	for _, g := range response.Graphs {
		if _, err := io.WriteString(writer, g.DOT); err != nil {
			return domain.NewOutputError("failed to write DOT graph", err)
		}
	}
	return nil
}

func (f *CompareOutputFormatterImpl) batchAsText(response *domain.BatchResponse, writer io.Writer) error {
	var b strings.Builder
	b.WriteString(f.utils.FormatMainHeader("Batch Similarity Report"))

	if stats := response.Statistics; stats != nil {
		b.WriteString(f.utils.FormatSectionHeader("Summary"))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Files analyzed", stats.FilesAnalyzed))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Files skipped", stats.FilesSkipped))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Pairs compared", stats.PairsCompared))
		if stats.PairsPruned > 0 {
			b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Pairs pruned", stats.PairsPruned))
		}
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Pairs reported", stats.PairsReported))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Clone pairs", stats.ClonePairs))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Average combined", f.utils.FormatPercentage(stats.AverageCombined)))
		b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding, "Duration", f.utils.FormatDuration(response.Duration)))
		b.WriteString("\n")

		if len(stats.ClonesByType) > 0 {
			b.WriteString(f.utils.FormatSectionHeader("Clone Types"))
			for _, name := range sortedKeys(stats.ClonesByType) {
				b.WriteString(f.utils.FormatLabelWithIndent(SectionPadding,
					domain.CloneTypeName(name).Label(), fmt.Sprintf("%d pairs", stats.ClonesByType[name])))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(f.utils.FormatWarningsSection("Skipped Files", response.Skipped))

	if len(response.Pairs) == 0 {
		b.WriteString("No pairs to report.\n")
		if _, err := io.WriteString(writer, b.String()); err != nil {
			return domain.NewOutputError("failed to write report", err)
		}
		return nil
	}

	b.WriteString(f.utils.FormatSectionHeader("Pairs"))
	if _, err := io.WriteString(writer, b.String()); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"First", "Second", "Combined", "Clone Types"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	for _, p := range response.Pairs {
		combined, _ := p.Result.Score(domain.MetricCombined)
		table.Append([]string{p.FirstPath, p.SecondPath, f.utils.FormatPercentage(combined), joinTypes(p.Result.DetectedTypes())})
	}
	table.Render()
	return nil
}

func (f *CompareOutputFormatterImpl) batchAsCSV(response *domain.BatchResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{"first", "second", "language"}
	for _, m := range domain.AllMetrics() {
		header = append(header, string(m))
	}
	header = append(header, "clone_types")
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, p := range response.Pairs {
		record := []string{p.FirstPath, p.SecondPath, string(p.Result.Language)}
		for _, m := range domain.AllMetrics() {
			v, _ := p.Result.Score(m)
			record = append(record, strconv.FormatFloat(v, 'f', 6, 64))
		}
		record = append(record, joinTypes(p.Result.DetectedTypes()))
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}

func (f *CompareOutputFormatterImpl) batchAsHTML(response *domain.BatchResponse, writer io.Writer) error {
	report := &htmlReport{
		Title:       "Batch Similarity Report",
		Subtitle:    "Run " + response.RunID,
		GeneratedAt: response.GeneratedAt,
		Version:     response.Version,
		Duration:    response.Duration,
		Skipped:     response.Skipped,
	}
	if stats := response.Statistics; stats != nil {
		report.Cards = []metricCard{
			{Value: strconv.Itoa(stats.FilesAnalyzed), Label: "Files Analyzed"},
			{Value: strconv.Itoa(stats.PairsCompared), Label: "Pairs Compared"},
			{Value: strconv.Itoa(stats.ClonePairs), Label: "Clone Pairs"},
			{Value: f.utils.FormatPercentage(stats.AverageCombined), Label: "Average Combined"},
		}
		if stats.PairsPruned > 0 {
			report.Cards = append(report.Cards, metricCard{Value: strconv.Itoa(stats.PairsPruned), Label: "Pairs Pruned"})
		}
	}
	for _, p := range response.Pairs {
		combined, _ := p.Result.Score(domain.MetricCombined)
		report.Pairs = append(report.Pairs, pairRow{
			First:    p.FirstPath,
			Second:   p.SecondPath,
			Combined: f.utils.FormatPercentage(combined),
			Types:    joinTypes(p.Result.DetectedTypes()),
		})
	}
	return report.render(writer)
}

func joinTypes(types []domain.CloneTypeName) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
