package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskpull-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/taskpull-cli/internal/core/ports/driven"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List the records currently in the local store",
	RunE:  runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	return listRecords(ctx, store, cmd.OutOrStdout())
}

// listRecords renders the store contents as a table.
func listRecords(ctx context.Context, store driven.RecordStore, out io.Writer) error {
	records, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No records. Run `taskpull pull` first.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tTYPE\tNUMBER\tPRIORITY\tDESCRIPTION")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			rec.Project, rec.Type, rec.Number, rec.Priority, rec.Description)
	}
	return w.Flush()
}
