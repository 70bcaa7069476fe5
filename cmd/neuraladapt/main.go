// Command neuraladapt runs the wellness analyzer and its supporting jobs.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"neuraladapt/internal/analyzer"
	"neuraladapt/internal/classifier"
	"neuraladapt/internal/config"
	"neuraladapt/internal/planner"
	"neuraladapt/internal/scheduler"
	"neuraladapt/internal/seed"
	"neuraladapt/internal/store"
)

var debugMode bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "neuraladapt",
		Short:         "Personal wellness analyzer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	root.AddCommand(newInitCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newPlanCmd())
	return root
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

func newEnv() (*env, error) {
	cfg := config.LoadOrDefault()

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	st, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &env{cfg: cfg, logger: logger, store: st}, nil
}

func (e *env) close() {
	e.store.Close()
	e.logger.Sync() //nolint:errcheck
}

func (e *env) newAnalyzer() *analyzer.Analyzer {
	client := classifier.NewClient(e.cfg.Analysis.APIKey, e.cfg.Analysis.Model, e.cfg.Analysis.BaseURL)
	return analyzer.New(e.store, client, e.logger, e.cfg.Analysis)
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(); err == nil {
				path, _ := config.ConfigPath()
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.Default().Save(); err != nil {
				return err
			}
			path, _ := config.ConfigPath()
			fmt.Printf("Created default config at %s\n", path)
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the analyzer once for the demo user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := e.store.EnsureDemoUser()
			if err != nil {
				return err
			}

			summary, err := e.newAnalyzer().Run(cmd.Context(), user.ID)
			if err != nil {
				e.logger.Error("analyzer run failed", zap.Error(err))
				return err
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analyzer on its cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			sched, err := scheduler.New(e.cfg.Analyzer.Timezone, e.logger)
			if err != nil {
				return err
			}

			a := e.newAnalyzer()
			if err := sched.AddAnalyzerJob(e.cfg.Analyzer.Schedule, a.RunForAllOwners); err != nil {
				return err
			}

			sched.Start()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			<-sched.Stop().Done()
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the demo user and insert the sample dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := seed.Apply(e.store, e.cfg.Artifacts.Dir)
			if err != nil {
				return err
			}

			fmt.Printf("Seed complete for %s\n", user.Email)
			return nil
		},
	}
}

func newPlanCmd() *cobra.Command {
	var input planner.GenerationInput
	var squatMax, benchMax, deadliftMax string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a workout program for the demo user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := e.store.EnsureDemoUser()
			if err != nil {
				return err
			}

			if input.TrainingFocus == "Powerlifting" {
				input.PowerliftingStats = &planner.PowerliftingStats{
					SquatMax:    squatMax,
					BenchMax:    benchMax,
					DeadliftMax: deadliftMax,
				}
			}

			client := classifier.NewClient(e.cfg.Analysis.APIKey, e.cfg.Analysis.Model, e.cfg.Analysis.BaseURL)
			p := planner.New(e.store, client, e.logger, e.cfg.Artifacts.Dir)

			result, err := p.Generate(cmd.Context(), user.ID, input)
			if err != nil {
				e.logger.Error("plan generation failed", zap.Error(err))
				return err
			}

			fmt.Printf("Generated %q (%d days)\nArtifact: %s\n",
				result.Plan.ProgramName, len(result.Plan.Days), result.ArtifactPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.ProgramName, "name", "", "program name")
	cmd.Flags().StringVar(&input.TrainingFocus, "focus", "General Fitness", "training focus (Powerlifting|Bodybuilding|General Fitness)")
	cmd.Flags().StringVar(&input.ProgramType, "type", "Mesocycle", "program type (Microcycle|Mesocycle|Macrocycle|Block)")
	cmd.Flags().IntVar(&input.SessionLengthMinutes, "session-length", 60, "session length in minutes")
	cmd.Flags().StringVar(&input.ExperienceLevel, "experience", "Intermediate", "experience level")
	cmd.Flags().StringVar(&input.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.Goals, "goals", "", "training goals")
	cmd.Flags().StringVar(&input.Injuries, "injuries", "", "injuries to work around")
	cmd.Flags().StringVar(&input.Equipment, "equipment", "", "available equipment")
	cmd.Flags().IntVar(&input.TrainingFrequency, "frequency", 3, "sessions per week")
	cmd.Flags().StringVar(&squatMax, "squat-max", "", "squat one-rep max")
	cmd.Flags().StringVar(&benchMax, "bench-max", "", "bench one-rep max")
	cmd.Flags().StringVar(&deadliftMax, "deadlift-max", "", "deadlift one-rep max")

	return cmd
}
