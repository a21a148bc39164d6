package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/charts"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/utils"
	"github.com/spf13/cobra"
)

var (
	chKind   string
	chColumn string
	chX      string
	chY      string
	chSheet  int
	chWidth  int
	chHeight int
	chBins   int
	chOutput string
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Render a bar, line, pie, histogram or scatter chart as PNG",
	Long: `Render one chart over a column of the file.

Kinds: Barras, Linhas, Pizza (one column via --column), histogram (--column)
and scatter (--x and --y, which may be the same column).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		kind, err := charts.ParseKind(chKind)
		if err != nil {
			return fmt.Errorf("%w (use %s)", err, kindList())
		}
		req := charts.Request{Kind: kind, Column: chColumn, X: chX, Y: chY}
		if kind == charts.Scatter {
			if chX == "" || chY == "" {
				return fmt.Errorf("scatter needs --x and --y")
			}
		} else if chColumn == "" {
			return fmt.Errorf("%s needs --column", kind)
		}

		lopt, err := loaderOptions(c, chSheet)
		if err != nil {
			return err
		}
		t, err := loadFile(args[0], lopt)
		if err != nil {
			return err
		}

		opt := chartOptions(c)
		if chWidth > 0 {
			opt.Width = chWidth
		}
		if chHeight > 0 {
			opt.Height = chHeight
		}
		if chBins > 0 {
			opt.Bins = chBins
		}
		var buf bytes.Buffer
		if err := charts.RenderPNG(&buf, t, req, opt); err != nil {
			return err
		}
		out := chOutput
		if out == "" {
			out = "grafico.png"
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s chart to %s\n", kind, out)
		return nil
	},
}

func kindList() string {
	kinds := append(append([]charts.Kind(nil), charts.SimpleKinds...), charts.Histogram, charts.Scatter)
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chKind, "kind", "k", string(charts.Bar), "chart kind: "+kindList())
	chartCmd.Flags().StringVar(&chColumn, "column", "", "column for Barras, Linhas, Pizza and histogram")
	chartCmd.Flags().StringVar(&chX, "x", "", "X column for scatter")
	chartCmd.Flags().StringVar(&chY, "y", "", "Y column for scatter")
	chartCmd.Flags().IntVar(&chSheet, "sheet", 0, "1-based sheet index for spreadsheets (overrides config)")
	chartCmd.Flags().IntVar(&chWidth, "width", 0, "image width in pixels (overrides config)")
	chartCmd.Flags().IntVar(&chHeight, "height", 0, "image height in pixels (overrides config)")
	chartCmd.Flags().IntVar(&chBins, "bins", 0, "histogram bins (default: Sturges' rule)")
	chartCmd.Flags().StringVarP(&chOutput, "output", "o", "", "output PNG path (default grafico.png)")
}
