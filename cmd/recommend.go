package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhihang-app/zhihang/internal/advisor"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user-id> <demand>",
	Short: "Ask the AI advisor for a development plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		provider, err := newProvider(cmd.Context(), log)
		if err != nil {
			return err
		}

		planner := advisor.NewPlanner(users, catalogs, provider, advisor.NewSessionStore(), log)
		answer, err := planner.Recommend(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}
