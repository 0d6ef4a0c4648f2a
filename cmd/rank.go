package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhihang-app/zhihang/internal/review"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "List public path reviews ordered by likes",
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

		svc := review.NewService(users, log)
		entries, err := svc.RankList(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No public reviews yet.")
			return nil
		}

		fmt.Printf("%-4s  %-15s  %-20s  %5s\n", "Rank", "User", "Name", "Likes")
		for _, e := range entries {
			fmt.Printf("%-4d  %-15s  %-20s  %5d\n", e.CurrentRank, e.UserID, e.UserName, e.LikeCount)
		}
		return nil
	},
}
