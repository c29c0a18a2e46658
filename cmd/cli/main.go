package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cleansheet/adapters/cleaning"
	"cleansheet/adapters/excel"
	"cleansheet/adapters/render"
	"cleansheet/app"
	"cleansheet/internal/config"
)

func main() {
	// Load .env if present; env vars still win.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "cleansheet",
		Short: "Clean a tabular dataset and report its quality",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAnalyzeCmd builds the analyze command: read, optionally clean,
// analyze, and export
func newAnalyzeCmd() *cobra.Command {
	var (
		filePath string
		noClean  bool
		outDir   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a CSV or XLSX file and export the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if filePath == "" {
				filePath = cfg.Data.FilePath
			}
			if filePath == "" {
				return fmt.Errorf("no input file: pass --file or set DATA_FILE")
			}
			if outDir == "" {
				outDir = cfg.Data.ExportDir
			}

			pipelineConfig := cleaning.DefaultConfig()
			pipelineConfig.Workers = cfg.Data.Workers
			service := app.NewAnalysisService(pipelineConfig)

			t, err := excel.NewDataReader(filePath).ReadTable()
			if err != nil {
				return err
			}

			ctx := context.Background()
			clean := !noClean
			bundle, err := service.Analyze(ctx, t, clean)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(bundle)
			}

			fmt.Fprint(cmd.OutOrStdout(), render.Markdown(bundle))

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				active, err := service.ActiveTable(ctx, t, clean)
				if err != nil {
					return err
				}
				base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
				csvPath := filepath.Join(outDir, base+"_cleaned.csv")
				xlsxPath := filepath.Join(outDir, base+"_analysis.xlsx")

				exporter := excel.NewExporter()
				if err := exporter.WriteCSV(active, csvPath); err != nil {
					return err
				}
				if err := exporter.WriteWorkbook(active, bundle, xlsxPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nExported %s and %s\n", csvPath, xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "input .csv or .xlsx file")
	cmd.Flags().BoolVar(&noClean, "no-clean", false, "analyze the raw table without cleaning")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "export directory (empty disables export)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis bundle as JSON")
	return cmd
}

// newReportCmd prints the markdown report for a file without exporting
func newReportCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the data-quality report for a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("no input file: pass --file")
			}
			service := app.NewAnalysisService(cleaning.DefaultConfig())
			t, err := excel.NewDataReader(filePath).ReadTable()
			if err != nil {
				return err
			}
			bundle, err := service.Analyze(context.Background(), t, true)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Markdown(bundle))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "input .csv or .xlsx file")
	return cmd
}
