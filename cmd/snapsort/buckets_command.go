package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"snapsort/internal/bucket"
)

type bucketRow struct {
	bucket bucket.Bucket
	files  int
}

func newBucketsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "List bucket directories under the destination root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rows, err := scanBuckets(cfg.Paths.DestDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No buckets under %s\n", cfg.Paths.DestDir)
				return nil
			}

			tableRows := make([][]string, 0, len(rows))
			total := 0
			for _, row := range rows {
				tableRows = append(tableRows, []string{
					row.bucket.Label,
					strconv.Itoa(row.bucket.Days()),
					strconv.Itoa(row.files),
				})
				total += row.files
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Bucket", "Days", "Files"},
				tableRows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
				colorizeOutput(out),
			))
			fmt.Fprintf(out, "%d bucket(s), %d file(s)\n", len(rows), total)
			return nil
		},
	}
}

// scanBuckets reads the immediate children of destRoot and keeps the
// directories whose names parse as bucket labels, counting the regular files
// inside each. Anything else under the destination root is ignored.
func scanBuckets(destRoot string) ([]bucketRow, error) {
	entries, err := os.ReadDir(destRoot)
	if err != nil {
		return nil, fmt.Errorf("read destination root: %w", err)
	}

	rows := make([]bucketRow, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, ok := bucket.ParseLabel(entry.Name())
		if !ok {
			continue
		}
		count, err := countFiles(filepath.Join(destRoot, entry.Name()))
		if err != nil {
			return nil, err
		}
		rows = append(rows, bucketRow{bucket: b, files: count})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].bucket.Start.Before(rows[j].bucket.Start)
	})
	return rows, nil
}

func countFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read bucket %s: %w", dir, err)
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return count, nil
}
