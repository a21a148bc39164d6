package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/dashboard"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/loader"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		lopt, err := loaderOptions(c, 0)
		if err != nil {
			return err
		}
		cache := loader.NewCache(lopt, c.CacheEntries)
		srv, err := dashboard.New(cache, dashboardOptions(c))
		if err != nil {
			return err
		}
		addr := c.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Printf("✓ Dashboard running at http://%s\n", displayAddr(addr))
		return srv.ListenAndServe(ctx, addr)
	},
}

// displayAddr turns ":8501" into "localhost:8501" for the startup line.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config addr)")
}
