package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lg/fittrack-go-api/internal/nutrition"
	"lg/fittrack-go-api/internal/tracker"
)

/* ─── Profile ─── */

// profileFlags binds the onboarding fields to cmd's flags.
type profileFlags struct {
	in       nutrition.ProfileInput
	gender   string
	activity string
	goal     string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.in.Name, "name", "", "display name (default \"User\")")
	fs.IntVar(&f.in.Age, "age", 0, "age in years")
	fs.Float64Var(&f.in.Weight, "weight", 0, "weight in kg")
	fs.Float64Var(&f.in.Height, "height", 0, "height in cm")
	fs.Float64Var(&f.in.Waist, "waist", 0, "waist circumference in cm")
	fs.Float64Var(&f.in.Hip, "hip", 0, "hip circumference in cm")
	fs.Float64Var(&f.in.Neck, "neck", 0, "neck circumference in cm")
	fs.StringVar(&f.gender, "gender", "", "male|female")
	fs.StringVar(&f.activity, "activity", string(nutrition.Moderate), "sedentary|light|moderate|active|very-active")
	fs.StringVar(&f.goal, "goal", string(nutrition.Maintain), "lose|maintain|gain")
	for _, name := range []string{"weight", "height", "waist", "hip", "neck", "gender"} {
		cmd.MarkFlagRequired(name)
	}
}

func (f *profileFlags) input() nutrition.ProfileInput {
	in := f.in
	in.Gender = nutrition.Gender(strings.ToLower(f.gender))
	in.ActivityLevel = nutrition.ActivityLevel(strings.ToLower(f.activity))
	in.Goal = nutrition.Goal(strings.ToLower(f.goal))
	return in
}

func printProfile(w io.Writer, p nutrition.UserProfile) {
	fmt.Fprintf(w, "Name:     %s\n", p.Name)
	fmt.Fprintf(w, "Calories: %d kcal\n", p.TargetCalories)
	fmt.Fprintf(w, "Protein:  %dg\n", p.TargetProtein)
	fmt.Fprintf(w, "Carbs:    %dg\n", p.TargetCarbs)
	fmt.Fprintf(w, "Fats:     %dg\n", p.TargetFats)
}

func newOnboardCommand(opts *rootOptions) *cobra.Command {
	flags := &profileFlags{}
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Save the profile and derive daily targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTracker(cmd.Context(), func(t *tracker.Tracker) error {
				p, err := t.SetProfile(cmd.Context(), flags.input())
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), p, func(w io.Writer) {
					fmt.Fprintf(w, "Profile saved (%s)\n", p.ID)
					printProfile(w, p)
				})
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newTargetsCommand(opts *rootOptions) *cobra.Command {
	flags := &profileFlags{}
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Preview daily targets without saving anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := nutrition.BuildProfile(flags.input())
			if err != nil {
				return err
			}
			energy, err := nutrition.ComputeEnergy(p)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), energy, func(w io.Writer) {
				fmt.Fprintf(w, "Body fat: %.1f%%\n", energy.BodyFatPercent)
				fmt.Fprintf(w, "BMR:      %.0f kcal\n", energy.BMR)
				printProfile(w, p)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove the profile and today's meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTracker(cmd.Context(), func(t *tracker.Tracker) error {
				if err := t.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Profile and today's meals removed.")
				return nil
			})
		},
	}
}

/* ─── Foods & meals ─── */

func printFoods(w io.Writer, foods []nutrition.FoodItem) {
	for _, f := range foods {
		fmt.Fprintf(w, "  %-8s %6.0f%s  %4d kcal  P %.1fg  C %.1fg  F %.1fg\n",
			f.Name, f.Quantity, f.Unit, f.Calories, f.Protein, f.Carbs, f.Fats)
	}
}

func printDay(w io.Writer, day nutrition.DayStats, progress *tracker.Progress) {
	fmt.Fprintf(w, "%s: %d kcal  P %.1fg  C %.1fg  F %.1fg\n",
		day.Date, day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFats)
	if progress != nil {
		fmt.Fprintf(w, "Remaining: %d kcal (%d%% of target)\n", progress.Calories.Remaining, progress.Calories.RawPercent)
	}
	for _, m := range day.Meals {
		fmt.Fprintf(w, "%s %-9s %4d kcal  [%s]\n", m.Time, m.Type, m.TotalCalories, m.ID)
		printFoods(w, m.Foods)
	}
}

func newParseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse food text such as \"200g rice, 1 apple\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foods := nutrition.NewTableParser(nil).Parse(strings.Join(args, " "))
			if len(foods) == 0 {
				return fmt.Errorf("couldn't parse your input: try something like '200g rice, 100g chicken, 1 apple'")
			}
			return opts.print(cmd.OutOrStdout(), foods, func(w io.Writer) { printFoods(w, foods) })
		},
	}
}

func newDayCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Show today's meals and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTracker(cmd.Context(), func(t *tracker.Tracker) error {
				day, err := t.Today(cmd.Context())
				if err != nil {
					return err
				}
				var progress *tracker.Progress
				p, ok, err := t.Profile(cmd.Context())
				if err != nil {
					return err
				}
				if ok {
					pr := tracker.ComputeProgress(p, day)
					progress = &pr
				}
				return opts.print(cmd.OutOrStdout(), day, func(w io.Writer) { printDay(w, day, progress) })
			})
		},
	}
}

func newAddMealCommand(opts *rootOptions) *cobra.Command {
	var mealType string
	cmd := &cobra.Command{
		Use:   "add-meal <text>",
		Short: "Parse food text and log it as a meal today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foods := nutrition.NewTableParser(nil).Parse(strings.Join(args, " "))
			if len(foods) == 0 {
				return fmt.Errorf("couldn't parse your input: try something like '200g rice, 100g chicken, 1 apple'")
			}
			return opts.withTracker(cmd.Context(), func(t *tracker.Tracker) error {
				meal, err := nutrition.NewMeal(nutrition.MealType(strings.ToLower(mealType)), foods, t.Now())
				if err != nil {
					return err
				}
				day, err := t.AddMeal(cmd.Context(), meal)
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), day, func(w io.Writer) {
					fmt.Fprintf(w, "Added %d food item(s) to your %s\n", len(foods), meal.Type)
					printDay(w, day, nil)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&mealType, "type", "t", string(nutrition.Snack), "breakfast|lunch|dinner|snack")
	return cmd
}

func newDeleteMealCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-meal <id>",
		Short: "Remove a meal logged today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTracker(cmd.Context(), func(t *tracker.Tracker) error {
				day, err := t.DeleteMeal(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return opts.print(cmd.OutOrStdout(), day, func(w io.Writer) { printDay(w, day, nil) })
			})
		},
	}
}
