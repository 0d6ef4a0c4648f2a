package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhihang-app/zhihang/internal/progress"
	"github.com/zhihang-app/zhihang/internal/user"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new student account",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := user.RegisterInput{}
		in.Name, _ = cmd.Flags().GetString("name")
		in.StudentID, _ = cmd.Flags().GetString("student-id")
		in.EnrollmentYear, _ = cmd.Flags().GetInt("year")
		in.School, _ = cmd.Flags().GetString("school")
		in.Major, _ = cmd.Flags().GetString("major")
		in.Target, _ = cmd.Flags().GetString("target")
		in.CurrentSemester = progress.CurrentSemester(in.EnrollmentYear, time.Now())

		if err := in.Validate(); err != nil {
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

		svc := user.NewService(users, catalogs, log)
		id, err := svc.Register(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Println("Registered", id)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "Student name")
	registerCmd.Flags().String("student-id", "", "Numeric student ID (up to 10 digits)")
	registerCmd.Flags().Int("year", 0, "Enrollment year")
	registerCmd.Flags().String("school", "", "School (college) name")
	registerCmd.Flags().String("major", "", "Major name")
	registerCmd.Flags().String("target", "", "Development target, e.g. postgraduate or employment")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("student-id")
	registerCmd.MarkFlagRequired("year")
	registerCmd.MarkFlagRequired("school")
	registerCmd.MarkFlagRequired("major")
}
