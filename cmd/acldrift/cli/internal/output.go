package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/acldrift/acldrift/audit"
	"github.com/acldrift/acldrift/internal/bus"
)

// Output handles the different report formats for audit results
type Output struct{}

// NewOutput creates a new Output instance
func NewOutput() *Output {
	return &Output{}
}

// OutputJSON outputs the result as JSON, to stdout when outputFile is empty
func (o *Output) OutputJSON(result *audit.RunResponse, outputFile string) error {
	var writer = os.Stdout

	if outputFile != "" {
		// #nosec G304 - outputFile is controlled by user via CLI flag
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", err)
			}
		}()
		writer = file
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// OutputCSV writes the deviation report as CSV: one row per reconciled rule,
// in report order, with the observed owner of the rule's folder.
func (o *Output) OutputCSV(result *audit.RunResponse, outputFile string) error {
	// #nosec G304 - outputFile is controlled by user via CLI flag
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", outputFile, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close CSV file: %v\n", err)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Compliance", "Folder", "Owner", "IdentityReference", "FileSystemRights", "AccessControlType"}); err != nil {
		return err
	}
	for _, target := range result.Run.Targets {
		for _, finding := range target.Findings {
			row := []string{
				complianceLabel(finding),
				target.Resource,
				target.Owner.Observed,
				finding.Identity,
				finding.Rights,
				string(finding.Effect),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// complianceLabel maps a finding to the report sink's Compliance values.
func complianceLabel(finding audit.Finding) string {
	if finding.Ignored {
		return "Ignored"
	}
	switch finding.Classification {
	case audit.Compliant:
		return "Ok"
	case audit.BaselineOnly:
		return "BaselineOnly"
	case audit.LiveOnly:
		return "LiveOnly"
	}
	return string(finding.Classification)
}

// OutputTable renders the result as per-folder tables plus a run summary and
// delivers it through the bus as a single report
func (o *Output) OutputTable(result *audit.RunResponse) error {
	var sb strings.Builder
	for _, target := range result.Run.Targets {
		o.renderTargetTable(&sb, target)
		fmt.Fprintln(&sb)
	}
	o.renderRunSummary(&sb, result)
	bus.Report(sb.String())
	return nil
}

func (o *Output) renderTargetTable(w io.Writer, target audit.TargetResult) {
	fmt.Fprintf(w, "Folder: %s\n", target.Resource)
	fmt.Fprintf(w, "Status: %s\n", formatStatus(target.Status))
	if target.Status == audit.StatusError {
		fmt.Fprintf(w, "Reason: %s\n", target.Reason)
		return
	}

	if target.Owner.Deviation {
		fmt.Fprintf(w, "Owner:  %s expected %q, observed %q\n",
			color.Yellow.Sprint("MISMATCH"), target.Owner.Expected, target.Owner.Observed)
	} else if target.Owner.Observed != "" {
		fmt.Fprintf(w, "Owner:  %s\n", target.Owner.Observed)
	}

	deviations := make([]audit.Finding, 0)
	for _, finding := range target.Findings {
		if finding.Classification != audit.Compliant {
			deviations = append(deviations, finding)
		}
	}

	fmt.Fprintf(w, "Rules:  %d compliant, %d baseline-only, %d live-only, %d ignored\n",
		target.Summary.Compliant, target.Summary.BaselineOnly, target.Summary.LiveOnly, target.Summary.Ignored)

	if len(deviations) == 0 {
		return
	}

	fmt.Fprintln(w)
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.Style().Options.SeparateHeader = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateFooter = false
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{"COMPLIANCE", "IDENTITY", "RIGHTS", "TYPE"})
	for _, finding := range deviations {
		t.AppendRow(table.Row{
			formatClassification(finding),
			finding.Identity,
			finding.Rights,
			string(finding.Effect),
		})
	}
	t.Render()
}

func (o *Output) renderRunSummary(w io.Writer, result *audit.RunResponse) {
	s := result.Run.Summary
	fmt.Fprintln(w, "Audit Summary:")
	fmt.Fprintf(w, "  Folders audited:   %d\n", s.Resources)
	fmt.Fprintf(w, "  Compliant:         %d\n", s.Compliant)
	if s.Drift > 0 {
		fmt.Fprintf(w, "  Drifted:           %d\n", s.Drift)
	}
	if s.Errors > 0 {
		fmt.Fprintf(w, "  Errors:            %d\n", s.Errors)
	}
	if s.SkippedRows > 0 {
		fmt.Fprintf(w, "  Skipped rows:      %d\n", s.SkippedRows)
	}
	fmt.Fprintf(w, "  Owner mismatches:  %d\n", s.OwnerDeviations)
	fmt.Fprintf(w, "  Baseline-only:     %d\n", s.BaselineOnly)
	fmt.Fprintf(w, "  Live-only:         %d\n", s.LiveOnly)
	if s.Ignored > 0 {
		fmt.Fprintf(w, "  Ignored:           %d\n", s.Ignored)
	}
}

// OutputSummaryOnly reports just the summary information
func (o *Output) OutputSummaryOnly(result *audit.RunResponse) error {
	var sb strings.Builder
	o.renderRunSummary(&sb, result)

	if result.IsFailed() {
		fmt.Fprintln(&sb, "\nNon-compliant folders:")
		for _, target := range result.Run.Targets {
			if target.Status != audit.StatusCompliant {
				fmt.Fprintf(&sb, "  - %s: %s\n", target.Resource, target.Status)
			}
		}
	}
	bus.Report(sb.String())
	return nil
}

// OutputQuiet reports only the count of non-compliant folders, if any
func (o *Output) OutputQuiet(result *audit.RunResponse) error {
	nonCompliant := 0
	for _, target := range result.Run.Targets {
		if target.Status != audit.StatusCompliant {
			nonCompliant++
		}
	}
	if nonCompliant > 0 {
		bus.Report(fmt.Sprintf("%d\n", nonCompliant))
	}
	return nil
}

func formatStatus(status string) string {
	switch status {
	case audit.StatusCompliant:
		return color.Green.Sprint("✓ COMPLIANT")
	case audit.StatusDrift:
		return color.Red.Sprint("✗ DRIFT")
	case audit.StatusError:
		return color.Red.Sprint("✗ ERROR")
	default:
		return strings.ToUpper(status)
	}
}

func formatClassification(finding audit.Finding) string {
	if finding.Ignored {
		return color.Gray.Sprint("Ignored")
	}
	switch finding.Classification {
	case audit.BaselineOnly:
		return color.Red.Sprint("BaselineOnly")
	case audit.LiveOnly:
		return color.Yellow.Sprint("LiveOnly")
	default:
		return string(finding.Classification)
	}
}
