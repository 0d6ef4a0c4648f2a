package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/advisor"
	"github.com/zhihang-app/zhihang/internal/progress"
	"github.com/zhihang-app/zhihang/internal/review"
	"github.com/zhihang-app/zhihang/internal/server"
	"github.com/zhihang-app/zhihang/internal/user"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

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

		userSvc := user.NewService(users, catalogs, log)
		progressSvc := progress.NewService(users, catalogs, log)
		reviewSvc := review.NewService(users, log)

		advisorHandler := &server.AdvisorHandler{Log: log}
		provider, err := newProvider(cmd.Context(), log)
		if err != nil {
			// The dashboard works without an LLM; advisor routes will 503.
			log.Warn("advisor disabled", zap.Error(err))
		} else {
			sessions := advisor.NewSessionStore()
			advisorHandler.Planner = advisor.NewPlanner(users, catalogs, provider, sessions, log)
			advisorHandler.Matcher = advisor.NewMatcher(users, provider, log)
		}

		router := server.NewRouter(server.RouterConfig{
			UserHandler:     &server.UserHandler{Users: userSvc, Log: log},
			ProgressHandler: &server.ProgressHandler{Progress: progressSvc, Users: userSvc, Log: log},
			ReviewHandler:   &server.ReviewHandler{Reviews: reviewSvc, Log: log},
			AdvisorHandler:  advisorHandler,
			Log:             log,
		})

		log.Info("listening", zap.String("addr", addr))
		return router.Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
