package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhihang-app/zhihang/internal/advisor"
)

var matchCmd = &cobra.Command{
	Use:   "match <user-id>",
	Short: "Find peers with a similar development path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		_, users, closeStore, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		provider, err := newProvider(cmd.Context(), log)
		if err != nil {
			return err
		}

		matcher := advisor.NewMatcher(users, provider, log)
		matches, err := matcher.MatchPeers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("No similar peers found.")
			return nil
		}
		for _, id := range matches {
			rec, err := users.Get(cmd.Context(), id)
			if err != nil {
				fmt.Println(id)
				continue
			}
			fmt.Printf("%s  %s (%s / %s)\n", id, rec.Profile.Name, rec.Profile.School, rec.Profile.Major)
		}
		return nil
	},
}
