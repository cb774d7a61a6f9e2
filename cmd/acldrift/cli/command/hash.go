package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acldrift/acldrift/internal/checksum"
)

// Hash creates the hash command
func Hash() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash FILE...",
		Short: "Compute file digests in checksum-file format",
		Long: `Hash prints one "<digest>  <path>" line per file, compatible with the
conventional checksum-file format. Files that cannot be read are reported and
skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runHash,
	}

	cmd.Flags().StringP("algorithm", "a", string(checksum.SHA256), "digest algorithm (sha256, blake3)")

	return cmd
}

func runHash(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)
	algorithmName, _ := cmd.Flags().GetString("algorithm")

	algorithm, err := checksum.ParseAlgorithm(algorithmName)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return err
	}

	results, errs := checksum.Files(algorithm, args)
	for _, hashErr := range errs {
		HandleError(hashErr, globalConfig.Quiet)
	}
	for _, result := range results {
		fmt.Println(result.String())
	}
	if !globalConfig.Quiet {
		fmt.Fprintln(os.Stderr, checksum.Summarize(results))
	}

	if len(errs) > 0 {
		TeardownBus()
		os.Exit(1)
	}
	return nil
}
