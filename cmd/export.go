package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/utils"
	"github.com/spf13/cobra"
)

const defaultExportName = "dados_filtrados.csv"

var (
	expColumns []string
	expSheet   int
	expOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the selected columns as CSV (dados_filtrados.csv)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lopt, err := loaderOptions(effectiveConfig(), expSheet)
		if err != nil {
			return err
		}
		t, err := loadFile(args[0], lopt)
		if err != nil {
			return err
		}
		view, err := selectColumns(t, splitColumns(expColumns))
		if err != nil {
			return err
		}
		b, err := view.CSV()
		if err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		out := expOutput
		if out == "" {
			out = defaultExportName
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := utils.EnsureDir(dir); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := utils.SafeWriteFile(out, b); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows x %d columns to %s\n", view.NumRows(), len(view.Columns), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringArrayVarP(&expColumns, "columns", "c", nil, "columns to keep, comma-separated or repeated (default: all)")
	exportCmd.Flags().IntVar(&expSheet, "sheet", 0, "1-based sheet index for spreadsheets (overrides config)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path (default dados_filtrados.csv)")
}
