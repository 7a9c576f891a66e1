package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Bulk import comics from a JSON array file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if !json.Valid(body) {
			return fmt.Errorf("%s is not valid JSON", args[0])
		}
		resp, err := newClient().ImportComics(body)
		if err != nil {
			return fmt.Errorf("failed to import comics: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d comics.\n", resp.Inserted)
		return nil
	},
}

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the whole collection as JSON or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if exportOut != "" {
			dir = filepath.Dir(exportOut)
		}
		tmp, err := os.CreateTemp(dir, ".comicvault-export-*")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())

		name, err := newClient().ExportComics(exportFormat, tmp)
		if closeErr := tmp.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("failed to export comics: %w", err)
		}

		target := exportOut
		if target == "" {
			target = name
		}
		if target == "" {
			target = "comics-export." + exportFormat
		}
		if err := os.Rename(tmp.Name(), target); err != nil {
			return fmt.Errorf("save export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved export to %s\n", target)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (defaults to the server-provided filename)")

	rootCmd.AddCommand(importCmd, exportCmd)
}
