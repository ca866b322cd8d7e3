package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kzmarket/productseed/internal/cli"
	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/config"
	"github.com/kzmarket/productseed/internal/seeder"
	"github.com/spf13/cobra"
)

// errDryRunUnsupported is returned by commands that read back a real collection
var errDryRunUnsupported = errors.New("dry_run only applies to seed")

var (
	configPath string
	count      int
	force      bool
)

var rootCmd = &cobra.Command{
	Use:   "productseed",
	Short: "Seed a Firestore collection with synthetic products",
	Long: `productseed fills a Firestore collection with generated product documents
for demos and testing:
- documents are keyed barcode_1..barcode_N, so re-running overwrites instead of duplicating
- quantity, prices and unit are random, names and suppliers follow the index
- writes are sequential and the run stops at the first failed write`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to productseed.yaml config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("project", "", "Firestore project ID (detected from credentials when empty)")
	rootCmd.PersistentFlags().String("credentials", "", "Path to a service account JSON file")
	rootCmd.PersistentFlags().String("collection", "products", "Target collection")

	for _, cmd := range []*cobra.Command{seedCmd, verifyCmd, cleanCmd} {
		cmd.Flags().IntVar(&count, "count", 0, "Number of products (alternative to the positional argument)")
	}
	seedCmd.Flags().Bool("dry-run", false, "Use an in-memory collection instead of Firestore")
	seedCmd.Flags().Int64("seed", 0, "Random seed for generated values (0 picks one from the clock)")
	seedCmd.Flags().Float64("rate", 0, "Maximum writes per second (0 = unlimited)")
	seedCmd.Flags().Int("progress-every", seeder.DefaultProgressEvery, "Writes between progress notices")

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(cleanCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create productseed.yaml",
	Long: `Create a productseed.yaml with default settings in the current directory,
or at the path given by --config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cli.InitializeProjectService().InitConfig(configPath, force)
		return err
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [count]",
	Short: "Insert generated products",
	Long: `Insert count generated products into the collection, one write at a time.
The count comes from the argument, --count, or an interactive prompt.
Progress is printed every 100 products.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *cli.Container) error {
			n, err := resolveCount(ctx, cmd, args, c.UI, "How many products to insert?")
			if err != nil {
				return err
			}
			_, err = c.Seed.Seed(ctx, n)
			return err
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify [count]",
	Short: "Check that seeded products exist and are valid",
	Long: `Read back barcode_1..barcode_N and report documents that are missing
or break the generation rules.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *cli.Container) error {
			if c.Config.DryRun {
				return errDryRunUnsupported
			}
			n, err := resolveCount(ctx, cmd, args, c.UI, "How many products to verify?")
			if err != nil {
				return err
			}

			report, err := c.Verify.Verify(ctx, n)
			if err != nil {
				return err
			}
			c.Verify.ShowReport(report)

			if !report.OK() {
				return fmt.Errorf("verification failed: %d missing, %d invalid", len(report.Missing), len(report.Invalid))
			}
			return nil
		})
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [count]",
	Short: "Delete seeded products",
	Long:  `Delete barcode_1..barcode_N from the collection. Other documents are left untouched.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *cli.Container) error {
			if c.Config.DryRun {
				return errDryRunUnsupported
			}
			n, err := resolveCount(ctx, cmd, args, c.UI, "How many products to delete?")
			if err != nil {
				return err
			}

			deleted, skipped, err := c.Clean.Clean(ctx, n)
			if len(deleted) > 0 {
				c.UI.Printf("● Deleted %d products\n", len(deleted))
			}
			if len(skipped) > 0 {
				c.UI.Printf("• Skipped %d products (not found)\n", len(skipped))
			}
			return err
		})
	},
}

// withContainer loads the config, wires the services and runs fn with a
// context that is cancelled on SIGINT or SIGTERM
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *cli.Container) error) error {
	cfg, err := config.LoadConfig(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, cleanup, err := cli.InitializeContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, container)
}

// resolveCount takes the count from the positional argument, then --count,
// then asks question. The prompt gives up when ctx is cancelled.
func resolveCount(ctx context.Context, cmd *cobra.Command, args []string, uiService ui.Service, question string) (int, error) {
	if len(args) > 0 {
		return ui.ParseCount(args[0])
	}
	if cmd.Flags().Changed("count") {
		if count <= 0 {
			return 0, fmt.Errorf("%w, got %d", seeder.ErrInvalidCount, count)
		}
		return count, nil
	}
	return uiService.PromptForCount(ctx, question)
}
