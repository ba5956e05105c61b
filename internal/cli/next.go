package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/watzon/quando/internal/cronexpr"
)

var (
	nextCount int
	nextFrom  string
)

var nextCmd = &cobra.Command{
	Use:   "next <expression>",
	Short: "Print upcoming occurrences of a cron expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runNext,
}

func init() {
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 3, "Number of occurrences to print")
	nextCmd.Flags().StringVar(&nextFrom, "from", "", "Search from this RFC3339 instant (default: now)")

	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	schedule, err := cronexpr.Parse(args[0])
	if err != nil {
		return err
	}

	from := time.Now()
	if nextFrom != "" {
		from, err = time.Parse(time.RFC3339, nextFrom)
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
	}

	// Advance past each result so successive occurrences are distinct.
	stride := time.Minute
	if schedule.HasSecond() {
		stride = time.Second
	}

	for i := 0; i < nextCount; i++ {
		next, ok := schedule.Next(from)
		if !ok {
			fmt.Println("no occurrence within the next 366 days")
			break
		}
		fmt.Println(next.Format(time.RFC3339))
		from = next.Add(stride)
	}
	return nil
}
