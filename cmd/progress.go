package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhihang-app/zhihang/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress <user-id> <update.json>",
	Short: "Submit a progress update from a JSON file",
	Long: `Submit the student's full completion history (courses, research,
competitions) from a JSON file. Scores and requirement gaps are
recomputed from the submitted history, so the file must always carry
everything completed so far, not just the delta.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read update file: %w", err)
		}
		var upd progress.Update
		if err := json.Unmarshal(raw, &upd); err != nil {
			return fmt.Errorf("parse update file: %w", err)
		}
		if err := upd.Validate(); err != nil {
			return err
		}

		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		catalogs, users, closeStore, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		svc := progress.NewService(users, catalogs, log)
		if err := svc.Apply(cmd.Context(), args[0], upd); err != nil {
			return err
		}
		fmt.Println("Progress updated for", args[0])
		return nil
	},
}
