package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acldrift/acldrift/audit"
	"github.com/acldrift/acldrift/cmd/acldrift/cli/internal"
	"github.com/acldrift/acldrift/internal/input"
)

// Audit creates the audit command
func Audit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit BASELINE",
		Short: "Reconcile a permission baseline against a live descriptor snapshot",
		Long: `Audit reads a CSV permission baseline and reconciles each folder it references
against the live security descriptor snapshot, classifying every access rule
as compliant, baseline-only (declared but absent), or live-only (present but
undeclared), and flagging owner mismatches.

The baseline is a CSV with columns Folder, Owner, IdentityReference,
FileSystemRights, AccessControlType ("-" reads it from stdin). Rights may be
symbolic ("ReadAndExecute", "ReadData, Synchronize") or a raw numeric
generic-rights mask as exported by platform tooling.

Exit codes:
- 0: every audited folder is compliant
- 1: drift was found or a folder could not be audited`,
		Args: cobra.ExactArgs(1),
		RunE: runAudit,
	}

	cmd.Flags().StringP("snapshot", "s", "", "path to the live descriptor snapshot JSON (required unless set in config)")
	cmd.Flags().String("csv-file", "", "also export the deviation report as CSV to this path")
	cmd.Flags().Bool("summary-only", false, "show only summary information")
	cmd.Flags().Bool("fail-on-error", true, "exit nonzero when a folder cannot be audited, not only on drift")

	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)

	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	csvFile, _ := cmd.Flags().GetString("csv-file")
	summaryOnly, _ := cmd.Flags().GetBool("summary-only")
	failOnError, _ := cmd.Flags().GetBool("fail-on-error")

	policy, fileConfig, err := LoadPolicyFromConfig(globalConfig)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return err
	}
	if snapshotPath == "" {
		snapshotPath = fileConfig.Snapshot
	}
	if csvFile == "" {
		csvFile = fileConfig.CSVFile
	}
	if snapshotPath == "" {
		err := fmt.Errorf("no snapshot provided (use --snapshot or the config file)")
		HandleError(err, globalConfig.Quiet)
		return err
	}

	if args[0] == "-" {
		piped, err := input.IsStdinPipeOrRedirect()
		if err != nil || !piped {
			err = fmt.Errorf("no baseline piped to stdin")
			HandleError(err, globalConfig.Quiet)
			return err
		}
	}

	records, err := audit.ReadBaselineFile(args[0])
	if err != nil {
		HandleError(fmt.Errorf("failed to read baseline: %w", err), globalConfig.Quiet)
		return err
	}

	provider, err := audit.NewSnapshotProvider(snapshotPath)
	if err != nil {
		HandleError(fmt.Errorf("failed to load snapshot: %w", err), globalConfig.Quiet)
		return err
	}

	orchestrator, err := audit.NewOrchestrator(policy, provider)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return err
	}

	argv := []string{"acldrift", "audit", args[0], "-s", snapshotPath}
	if globalConfig.ConfigFile != "" {
		argv = append(argv, "-c", globalConfig.ConfigFile)
	}

	result := orchestrator.Audit(argv, records)

	output := internal.NewOutput()

	if csvFile != "" {
		if err := output.OutputCSV(result, csvFile); err != nil {
			HandleError(fmt.Errorf("failed to write CSV report: %w", err), globalConfig.Quiet)
			return err
		}
	}
	if globalConfig.OutputFile != "" {
		if err := output.OutputJSON(result, globalConfig.OutputFile); err != nil {
			HandleError(fmt.Errorf("failed to write JSON report: %w", err), globalConfig.Quiet)
			return err
		}
	}

	switch {
	case globalConfig.Quiet:
		if err := output.OutputQuiet(result); err != nil {
			return err
		}
	case summaryOnly:
		if err := output.OutputSummaryOnly(result); err != nil {
			return err
		}
	case globalConfig.OutputFormat == formatJSON:
		if err := output.OutputJSON(result, ""); err != nil {
			return err
		}
	case globalConfig.OutputFormat == formatTable:
		if err := output.OutputTable(result); err != nil {
			return err
		}
	default:
		err := fmt.Errorf("unsupported output format: %s", globalConfig.OutputFormat)
		HandleError(err, globalConfig.Quiet)
		return err
	}

	failed := false
	for _, target := range result.Run.Targets {
		switch target.Status {
		case audit.StatusDrift:
			failed = true
		case audit.StatusError:
			failed = failed || failOnError
		}
	}
	// queued report and warning events must land before the process exits
	TeardownBus()

	if failed {
		os.Exit(1)
	}
	return nil
}
