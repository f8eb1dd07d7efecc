package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage registered people",
	RunE:  runUsersList,
}

var usersShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one person's detail and recent attendance",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersShow,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a person, their attendance history and face data",
	Long: `Delete a registered person. Their attendance history and face data
are removed with them and the model is retrained without them.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersDelete,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersShowCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersDeleteCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	users, err := client.Users(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}
	if len(users) == 0 {
		fmt.Println("No users registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREGISTERED\tDAYS\tRECORDS\tLAST SEEN")
	for _, u := range users {
		lastSeen := "-"
		if u.LatestAttendance != nil {
			lastSeen = *u.LatestAttendance
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			faceapi.DisplayName(u.Username), u.RegisteredDate,
			u.TotalAttendanceDays, u.TotalAttendanceRecords, lastSeen)
	}
	w.Flush()
	fmt.Printf("\n%d users\n", len(users))
	return nil
}

func runUsersShow(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	detail, err := client.User(cmd.Context(), args[0])
	if err != nil {
		if faceapi.IsNotFound(err) {
			return fmt.Errorf("user %q not found", args[0])
		}
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	fmt.Printf("Name:       %s\n", faceapi.DisplayName(detail.Username))
	if detail.Email != "" {
		fmt.Printf("Email:      %s\n", detail.Email)
	}
	if detail.Department != "" {
		fmt.Printf("Department: %s\n", detail.Department)
	}
	if detail.Role != "" {
		fmt.Printf("Role:       %s\n", detail.Role)
	}
	fmt.Printf("Registered: %s\n", detail.RegisteredDate)
	fmt.Printf("Attendance: %d records over %d days\n", detail.TotalAttendanceRecords, detail.TotalAttendanceDays)

	if len(detail.AttendanceRecords) > 0 {
		fmt.Println("\nRecent attendance:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tTIME\tCONFIDENCE")
		for _, rec := range detail.AttendanceRecords {
			fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Date, rec.Timestamp, formatConfidence(rec.Confidence))
		}
		w.Flush()
	}
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	name := faceapi.NormalizeUsername(args[0])
	if !mustGetBool(cmd, "yes") {
		prompt := fmt.Sprintf("%s [y/N]: ", cfg.Guidance.Message("delete_user_consequences", faceapi.DisplayName(name)))
		if !confirmAction(prompt) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	result, err := client.DeleteUser(cmd.Context(), name)
	if err != nil {
		if faceapi.IsNotFound(err) {
			return fmt.Errorf("user %q not found", args[0])
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("Deleted %s (%d attendance records removed, %d users remain)\n",
		faceapi.DisplayName(name), result.RemovedAttendanceRecords, result.RemainingUsers)
	if result.RetrainingStarted {
		fmt.Println("Model retraining started")
	}
	return nil
}
