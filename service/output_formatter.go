package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/courseguard/crosscheck/domain"
)

// CheckFormatterImpl formats single-check results.
type CheckFormatterImpl struct{}

// NewCheckFormatter creates a new check output formatter
func NewCheckFormatter() *CheckFormatterImpl {
	return &CheckFormatterImpl{}
}

// Write writes the formatted check response to the writer
func (f *CheckFormatterImpl) Write(response *domain.CheckResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return writeString(writer, f.formatText(response))
	case domain.OutputFormatJSON:
		return writeJSON(writer, response)
	case domain.OutputFormatYAML:
		return writeYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *CheckFormatterImpl) formatText(response *domain.CheckResponse) string {
	var builder strings.Builder

	builder.WriteString("Similarity Check Report\n")
	builder.WriteString(strings.Repeat("=", 50) + "\n\n")
	builder.WriteString(fmt.Sprintf("Submission:         %s\n", response.SubmissionID))
	builder.WriteString(fmt.Sprintf("Checked at:         %s\n", response.CheckedAt.Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("History size:       %d\n", response.HistorySize))
	builder.WriteString(fmt.Sprintf("Overall similarity: %.1f%%\n", response.OverallSimilarity*100))
	builder.WriteString(fmt.Sprintf("Level:              %s\n", response.Level))
	builder.WriteString(fmt.Sprintf("Flagged:            %v\n\n", response.Flagged))

	for _, result := range response.Comparisons {
		writeComparisonText(&builder, result)
	}

	builder.WriteString(response.Summary + "\n")
	return builder.String()
}

func (f *CheckFormatterImpl) formatCSV(response *domain.CheckResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"submission_a", "submission_b", "combined", "transformations"}); err != nil {
		return domain.NewOutputError("failed to write CSV", err)
	}
	for _, result := range response.Comparisons {
		record := []string{
			result.SubmissionA,
			result.SubmissionB,
			strconv.FormatFloat(result.Scores.Combined, 'f', 4, 64),
			joinLabels(result.Transformations),
		}
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV", err)
		}
	}
	w.Flush()
	return w.Error()
}

// BatchFormatterImpl formats batch analysis results.
type BatchFormatterImpl struct{}

// NewBatchFormatter creates a new batch output formatter
func NewBatchFormatter() *BatchFormatterImpl {
	return &BatchFormatterImpl{}
}

// Write writes the formatted batch response to the writer
func (f *BatchFormatterImpl) Write(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return writeString(writer, f.formatText(response))
	case domain.OutputFormatJSON:
		return writeJSON(writer, response)
	case domain.OutputFormatYAML:
		return writeYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *BatchFormatterImpl) formatText(response *domain.BatchResponse) string {
	var builder strings.Builder

	builder.WriteString("Cohort Similarity Report\n")
	builder.WriteString(strings.Repeat("=", 50) + "\n\n")
	builder.WriteString(fmt.Sprintf("Run:               %s\n", response.RunID))
	builder.WriteString(fmt.Sprintf("Submissions:       %d\n", response.Statistics.TotalSubmissions))
	builder.WriteString(fmt.Sprintf("Comparisons:       %d\n", response.Statistics.TotalComparisons))
	builder.WriteString(fmt.Sprintf("Flagged pairs:     %d\n", response.Statistics.FlaggedCount))
	builder.WriteString(fmt.Sprintf("Avg similarity:    %.1f%%\n", response.Statistics.AverageSimilarity*100))
	builder.WriteString(fmt.Sprintf("Max similarity:    %.1f%%\n\n", response.Statistics.MaxSimilarity*100))

	for _, warning := range response.Warnings {
		builder.WriteString("Warning: " + warning + "\n")
	}
	if len(response.Warnings) > 0 {
		builder.WriteString("\n")
	}

	if len(response.Flagged) > 0 {
		builder.WriteString("FLAGGED PAIRS\n")
		builder.WriteString(strings.Repeat("-", 50) + "\n")
		for _, result := range response.Flagged {
			writeComparisonText(&builder, result)
		}
	}

	for _, report := range response.Reports {
		builder.WriteString(fmt.Sprintf("Originality %s: %.0f%% (risk %s)\n",
			report.SubmissionID, report.OriginalityScore, report.RiskLevel))
		for _, suggestion := range report.Suggestions {
			builder.WriteString("  - " + suggestion + "\n")
		}
	}

	return builder.String()
}

// formatCSV emits the similarity matrix as CSV rows with an ID header column.
func (f *BatchFormatterImpl) formatCSV(response *domain.BatchResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := append([]string{"submission"}, response.Matrix.SubmissionIDs...)
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV", err)
	}

	for i, id := range response.Matrix.SubmissionIDs {
		record := make([]string, 0, len(header))
		record = append(record, id)
		for j := range response.Matrix.SubmissionIDs {
			record = append(record, strconv.FormatFloat(response.Matrix.At(i, j), 'f', 4, 64))
		}
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeComparisonText(builder *strings.Builder, result *domain.ComparisonResult) {
	builder.WriteString(fmt.Sprintf("%s (author %s) <-> %s (author %s)\n",
		result.SubmissionA, result.AuthorA, result.SubmissionB, result.AuthorB))
	builder.WriteString("  " + result.Scores.String() + "\n")

	if len(result.Transformations) > 0 {
		builder.WriteString("  possible transformations: " + joinLabels(result.Transformations) + "\n")
	}
	for _, evidence := range result.Evidence {
		builder.WriteString(fmt.Sprintf("  match lines %d-%d <-> %d-%d (%.0f%%)\n",
			evidence.StartLineA, evidence.EndLineA,
			evidence.StartLineB, evidence.EndLineB,
			evidence.Similarity*100))
	}
	for _, note := range result.Notes {
		builder.WriteString("  note: " + note + "\n")
	}
	builder.WriteString("\n")
}

func joinLabels(labels []domain.TransformationLabel) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = string(label)
	}
	return strings.Join(parts, ", ")
}

func writeString(writer io.Writer, content string) error {
	if _, err := writer.Write([]byte(content)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func writeJSON(writer io.Writer, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return writeString(writer, string(data)+"\n")
}

func writeYAML(writer io.Writer, value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return writeString(writer, string(data))
}
