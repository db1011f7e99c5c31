package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pressroom/internal/bootstrap"
	"pressroom/internal/config"
	"pressroom/internal/domain/entity"
	"pressroom/internal/handler/http/pathutil"
	"pressroom/internal/handler/http/respond"
	harticle "pressroom/internal/handler/http/article"
	artUC "pressroom/internal/usecase/article"
	"pressroom/internal/usecase/seed"
)

type runFlags struct {
	only           []string
	count          int
	plan           string
	linkReferences bool
	references     string
	randomSeed     uint64
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Seed the pressroom database with fake data",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(logger), newListCmd(), newShowCmd(logger))
	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Truncate and reseed entity tables",
		Long: "Truncate and reseed people, articles and comments in dependency order.\n" +
			"Each table is emptied and its id sequence restarted before new rows are inserted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ParseSeedConfig()
			if err != nil {
				return err
			}
			plan, err := f.apply(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := bootstrap.OpenStorage(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("open storage: %s", respond.SanitizeError(err))
			}
			defer st.Close()

			seeder := bootstrap.NewSeeder(cfg, st.Seeds, logger)

			stats, err := seeder.Run(ctx, plan)
			printStats(cmd, stats)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&f.only, "only", nil, "seed only these entity types (comma separated)")
	cmd.Flags().IntVar(&f.count, "count", seed.DefaultCount, "rows per entity type")
	cmd.Flags().StringVar(&f.plan, "plan", "", "YAML plan file")
	cmd.Flags().BoolVar(&f.linkReferences, "link-references", false, "draw foreign keys from ids inserted in this run")
	cmd.Flags().StringVar(&f.references, "references", "", "reference policy: random or linked")
	cmd.Flags().Uint64Var(&f.randomSeed, "seed", 0, "random seed for reproducible data (0 = random)")
	cmd.MarkFlagsMutuallyExclusive("only", "plan")
	cmd.MarkFlagsMutuallyExclusive("count", "plan")
	cmd.MarkFlagsMutuallyExclusive("link-references", "references")
	return cmd
}

// apply lets explicitly set flags override the unvalidated env config,
// validates the result once and returns the plan to run.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.SeedConfig) (seed.Plan, error) {
	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = f.count
	}
	if flags.Changed("plan") {
		cfg.PlanFile = f.plan
	}
	if flags.Changed("link-references") {
		cfg.LinkReferences = f.linkReferences
	}
	if flags.Changed("references") {
		mode, err := seed.ParseReferenceMode(f.references)
		if err != nil {
			return seed.Plan{}, err
		}
		cfg.LinkReferences = mode == seed.ReferencesLinked
	}
	if flags.Changed("seed") {
		cfg.RandomSeed = f.randomSeed
	}
	if err := cfg.Validate(); err != nil {
		return seed.Plan{}, fmt.Errorf("invalid seed configuration: %w", err)
	}

	if len(f.only) == 0 {
		return cfg.Plan()
	}
	types := make([]entity.Type, 0, len(f.only))
	for _, name := range f.only {
		t, err := entity.ParseType(name)
		if err != nil {
			return seed.Plan{}, err
		}
		types = append(types, t)
	}
	plan := seed.UniformPlan(cfg.Count, types...)
	return plan, plan.Validate()
}

func printStats(cmd *cobra.Command, stats seed.RunStats) {
	if len(stats.Steps) == 0 {
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tREQUESTED\tINSERTED\tDURATION")
	for _, r := range stats.Steps {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Type, r.Requested, r.Inserted, r.Duration.Round(time.Millisecond))
	}
	_ = w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d rows in %s\n", stats.Inserted(), stats.Duration.Round(time.Millisecond))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List seedable entity types in dependency order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ENTITY\tDEFAULT COUNT\tREFERENCES")
			for _, step := range seed.DefaultPlan().Ordered() {
				refs := make([]string, 0, 2)
				for _, t := range seed.ReferencedTypes(step.Type) {
					refs = append(refs, t.String())
				}
				ref := "-"
				if len(refs) > 0 {
					ref = strings.Join(refs, ",")
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", step.Type, step.Count, ref)
			}
			return w.Flush()
		},
	}
}

func newShowCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "show <article-id>",
		Short: "Print the JSON resource of one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := pathutil.ParseID(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.LoadSeedConfig()
			if err != nil {
				return err
			}
			return show(cmd.Context(), cmd, cfg, logger, id)
		},
	}
}

func show(ctx context.Context, cmd *cobra.Command, cfg *config.SeedConfig, logger *slog.Logger, id int64) error {
	st, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %s", respond.SanitizeError(err))
	}
	defer st.Close()

	a, err := (&artUC.Service{Repo: st.Articles}).Get(ctx, id)
	if err != nil {
		return err
	}
	body, err := harticle.Marshal(*a)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return err
}
