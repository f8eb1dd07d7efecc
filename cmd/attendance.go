package cmd

import (
	"fmt"
	"os"
	"sync/atomic"
	"text/tabwriter"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Show and manage attendance records",
	RunE:  runAttendanceToday,
}

var attendanceTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's attendance records",
	RunE:  runAttendanceToday,
}

var attendanceAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Show the full attendance history",
	RunE:  runAttendanceAll,
}

var attendanceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove attendance records for one person",
	Long: `Remove attendance records for one person. By default today's record
is removed; --date removes the record for another day and --all removes
the person's entire history.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttendanceDelete,
}

var attendanceClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all of today's attendance records",
	RunE:  runAttendanceClear,
}

func init() {
	rootCmd.AddCommand(attendanceCmd)
	attendanceCmd.AddCommand(attendanceTodayCmd)
	attendanceCmd.AddCommand(attendanceAllCmd)
	attendanceCmd.AddCommand(attendanceDeleteCmd)
	attendanceCmd.AddCommand(attendanceClearCmd)

	attendanceDeleteCmd.Flags().String("date", "", "Remove the record for this date (YYYY-MM-DD) instead of today")
	attendanceDeleteCmd.Flags().Bool("all", false, "Remove the person's entire attendance history")
	attendanceDeleteCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	attendanceClearCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func printAttendance(records []faceapi.AttendanceRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDATE\tTIME\tCONFIDENCE")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			faceapi.DisplayName(rec.Username), rec.Date, rec.Timestamp, formatConfidence(rec.Confidence))
	}
	w.Flush()
}

func runAttendanceToday(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	records, err := client.TodayAttendance(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch today's attendance: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No attendance marked today.")
		return nil
	}
	printAttendance(records)
	fmt.Printf("\n%d records today\n", len(records))
	return nil
}

func runAttendanceAll(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	records, err := client.AllAttendance(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch attendance history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No attendance recorded.")
		return nil
	}
	printAttendance(records)
	fmt.Printf("\n%d records\n", len(records))
	return nil
}

func runAttendanceDelete(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	name := faceapi.NormalizeUsername(args[0])
	date := mustGetString(cmd, "date")
	wholeHistory := mustGetBool(cmd, "all")
	if wholeHistory && date != "" {
		return fmt.Errorf("--all and --date are mutually exclusive")
	}

	if !mustGetBool(cmd, "yes") {
		what := "today's attendance"
		if date != "" {
			what = "the attendance for " + date
		}
		if wholeHistory {
			what = "the entire attendance history"
		}
		if !confirmAction(fmt.Sprintf("Remove %s for %s? [y/N]: ", what, faceapi.DisplayName(name))) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	var result *faceapi.DeleteResult
	if wholeHistory {
		result, err = client.DeleteAllAttendance(cmd.Context(), name)
	} else {
		result, err = client.DeleteAttendance(cmd.Context(), name, date)
	}
	if err != nil {
		return fmt.Errorf("failed to remove attendance: %w", err)
	}
	if !result.Removed {
		if result.Message != "" {
			return fmt.Errorf("nothing removed: %s", result.Message)
		}
		return fmt.Errorf("nothing removed")
	}

	if result.RemovedCount > 1 {
		fmt.Printf("Removed %d records for %s\n", result.RemovedCount, faceapi.DisplayName(name))
	} else {
		fmt.Printf("Removed attendance for %s\n", faceapi.DisplayName(name))
	}
	return nil
}

func runAttendanceClear(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	records, err := client.TodayAttendance(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch today's attendance: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No attendance marked today.")
		return nil
	}

	if !mustGetBool(cmd, "yes") {
		prompt := fmt.Sprintf("%s [y/N]: ", cfg.Guidance.Message("clear_all_prompt", len(records)))
		if !confirmAction(prompt) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription("Removing records"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	var succeeded atomic.Int64
	var g errgroup.Group
	for _, record := range records {
		record := record
		g.Go(func() error {
			result, err := client.DeleteTodayAttendance(cmd.Context(), record.Username)
			if err == nil && result.Removed {
				succeeded.Add(1)
			}
			bar.Add(1)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return errors
	fmt.Println()

	fmt.Println(cfg.Guidance.Message("clear_all_summary", int(succeeded.Load()), len(records)))
	if int(succeeded.Load()) < len(records) {
		return fmt.Errorf("%d records could not be removed", len(records)-int(succeeded.Load()))
	}
	return nil
}
