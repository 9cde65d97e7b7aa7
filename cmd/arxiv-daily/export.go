// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-daily/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all persisted tables to YAML or JSON",
	Long: `Export writes a full snapshot of the persisted tables (papers, author
links, category links, enrichments, and the run ledger) to export.yaml or
export.json in the data directory.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg := pipelineConfig(cmd)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.Export(context.Background())
	if err != nil {
		return err
	}

	var data []byte
	var name string
	switch format {
	case "yaml", "":
		name = "export.yaml"
		if data, err = yaml.Marshal(snap); err != nil {
			return fmt.Errorf("marshaling export: %w", err)
		}
	case "json":
		name = "export.json"
		if data, err = json.MarshalIndent(snap, "", "  "); err != nil {
			return fmt.Errorf("marshaling export: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	path := filepath.Join(cfg.Store.DataDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("Exported %d papers to %s\n", len(snap.Papers), path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(exportCmd)
}
