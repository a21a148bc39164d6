package cmd

import (
	"fmt"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/analysis"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/utils"
	"github.com/spf13/cobra"
)

var (
	insColumns    []string
	insSampleRows int
	insSheet      int
	insOutliers   bool
	insOutlierThr float64
	insOutput     string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Load a CSV/Excel file and print the selected columns, row count and column summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lopt, err := loaderOptions(effectiveConfig(), insSheet)
		if err != nil {
			return err
		}
		t, err := loadFile(args[0], lopt)
		if err != nil {
			return err
		}
		view, err := selectColumns(t, splitColumns(insColumns))
		if err != nil {
			return err
		}

		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("rows") {
			opt.SampleRows = insSampleRows
		}
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = insOutliers
		}
		if insOutlierThr > 0 {
			opt.OutlierThreshold = insOutlierThr
		}
		md := analysis.Profile(view, opt).Markdown()

		if insOutput != "" {
			if err := utils.SafeWriteFile(insOutput, []byte(md)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote summary to %s\n", insOutput)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringArrayVarP(&insColumns, "columns", "c", nil, "columns to keep, comma-separated or repeated (default: all)")
	inspectCmd.Flags().IntVar(&insSampleRows, "rows", 5, "number of leading rows to print")
	inspectCmd.Flags().IntVar(&insSheet, "sheet", 0, "1-based sheet index for spreadsheets (overrides config)")
	inspectCmd.Flags().BoolVar(&insOutliers, "outliers", true, "count numeric outliers with a robust z-score")
	inspectCmd.Flags().Float64Var(&insOutlierThr, "outlier-threshold", 0, "robust z-score threshold (default 3.5)")
	inspectCmd.Flags().StringVarP(&insOutput, "output", "o", "", "write the summary to a file instead of stdout")
}
