package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watzon/quando/internal/config"
	"github.com/watzon/quando/internal/cronexpr"
)

var validateJobsPath string

var validateCmd = &cobra.Command{
	Use:   "validate [expression]",
	Short: "Validate a cron expression or a jobs file",
	Long: `Validate a single cron expression, or every definition in a jobs
file when --jobs is given. Exits non-zero on the first invalid input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateJobsPath, "jobs", "", "Path to a jobs file to validate")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateJobsPath != "" {
		file, err := config.LoadJobsFile(validateJobsPath)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d job(s) valid\n", validateJobsPath, len(file.Jobs))
		return nil
	}

	if len(args) != 1 {
		return errors.New("provide an expression or --jobs <file>")
	}

	schedule, err := cronexpr.Parse(args[0])
	if err != nil {
		return err
	}

	granularity := "minute"
	if schedule.HasSecond() {
		granularity = "second"
	}
	fmt.Printf("%s: valid (%s granularity)\n", args[0], granularity)
	return nil
}
