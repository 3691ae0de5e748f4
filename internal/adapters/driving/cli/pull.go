package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskpull-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/taskpull-cli/internal/adapters/driven/storage/sqlite"
	ghapi "github.com/custodia-labs/taskpull-cli/internal/connectors/github"
	"github.com/custodia-labs/taskpull-cli/internal/core/ports/driven"
	"github.com/custodia-labs/taskpull-cli/internal/core/services"
	"github.com/custodia-labs/taskpull-cli/internal/logger"
	ghrecord "github.com/custodia-labs/taskpull-cli/internal/normalisers/github"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch, filter and import issues into the record store",
	Long: `Runs the full import pipeline: fetches issues from the configured
sources (search query, owned repositories, directly-assigned issues),
deduplicates and filters them, and upserts one record per surviving item.`,
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, _ []string) error {
	// Cancelling the context releases the export goroutine when the import
	// loop bails out early.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log := logger.New(verbose)

	aggregator, cfg, err := buildPipeline(log)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	log.Info("importing from %s", cfg.KeyringService())

	imported, err := importRecords(ctx, aggregator, store, log)
	if err != nil {
		return err
	}

	cmd.Printf("Imported %d records.\n", imported)
	return nil
}

// importRecords drains the export stream into the store and returns the
// number of records upserted before the stream ended or failed.
func importRecords(ctx context.Context, aggregator *services.Aggregator, store driven.RecordStore, log *logger.Logger) (int, error) {
	records, errs := aggregator.Export(ctx)

	imported := 0
	for rec := range records {
		if err := store.Upsert(ctx, &rec); err != nil {
			return imported, fmt.Errorf("store record %s: %w", rec.URL, err)
		}
		log.Debug("imported %s record %s#%d", rec.Type, rec.Repo, rec.Number)
		imported++
	}
	if err := <-errs; err != nil {
		return imported, fmt.Errorf("pull failed after %d records: %w", imported, err)
	}
	return imported, nil
}

// buildPipeline loads and validates the configuration and assembles the
// aggregator. Validation failures surface here, before any network activity.
func buildPipeline(log *logger.Logger) (*services.Aggregator, *file.Config, error) {
	cfg, err := file.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := ghapi.NewClient(cfg.Host, cfg.Credentials(), log)
	if err != nil {
		return nil, nil, err
	}

	normalizer, err := ghrecord.NewNormalizer(cfg.DefaultPriority, cfg.ImportLabelsAsTags, cfg.LabelTemplate)
	if err != nil {
		return nil, nil, err
	}

	aggregator := services.NewAggregator(client, newFilter(cfg), normalizer, log, services.AggregatorOptions{
		Query:             cfg.EffectiveQuery(),
		Username:          cfg.Username,
		IncludeUserRepos:  cfg.IncludeUserRepos,
		IncludeUserIssues: cfg.IncludeUserIssues,
		ImportAnnotations: cfg.AnnotationComments,
	})

	return aggregator, cfg, nil
}

// newFilter maps the config onto the filter chain. The base policy admits
// open items only; filter_pull_requests decides whether pull requests are
// subject to it too.
func newFilter(cfg *file.Config) *services.Filter {
	return &services.Filter{
		Username:           cfg.Username,
		ExcludeRepos:       cfg.ExcludeRepos,
		IncludeRepos:       cfg.IncludeRepos,
		FilterPullRequests: cfg.FilterPullRequests,
		BaseInclude:        services.IncludeOpen,
	}
}
