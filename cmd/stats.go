package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zhihang-app/zhihang/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show a student's progress dashboard",
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

		rec, err := users.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", rec.Profile.Name, args[0])
		fmt.Printf("%s / %s, enrolled %d, semester %d of %d\n",
			rec.Profile.School, rec.Profile.Major,
			rec.Profile.EnrollmentYear, rec.AcademicProgress.CurrentSemester, progress.MaxSemester)
		fmt.Printf("Credits: %.2f   GPA: %.2f\n", rec.TotalCredits, rec.AverageGrade)

		printDimensions("Knowledge", rec.Knowledge)
		printDimensions("Skills", rec.Skills)

		if len(rec.RemainingTasks.MustRequiredCourses) > 0 {
			fmt.Println("\nOutstanding required courses:")
			for _, c := range rec.RemainingTasks.MustRequiredCourses {
				fmt.Printf("  %-32s  semester %d\n", c.Name, c.Semester)
			}
		}
		if len(rec.RemainingTasks.CreditGaps) > 0 {
			fmt.Println("\nElective credit gaps:")
			for _, g := range rec.RemainingTasks.CreditGaps {
				fmt.Printf("  %-32s  %.1f of %.1f remaining\n",
					g.Category, g.RemainingCredits, g.RequiredCredits)
			}
		}
		return nil
	},
}

func printDimensions(label string, dims map[string]float64) {
	if len(dims) == 0 {
		return
	}
	names := make([]string, 0, len(dims))
	for name := range dims {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\n%s:\n", label)
	for _, name := range names {
		fmt.Printf("  %-32s  %.2f\n", name, dims[name])
	}
}
