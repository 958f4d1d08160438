package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/schooladmin/internal/app/gateway"
	"github.com/yigit/schooladmin/internal/app/routes"
	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/server"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "schooladmin",
		Short: "In-memory school administration API",
		Long: `schooladmin serves the school administration endpoints (students, faculty,
programs, courses, sections, announcements and the undoable activity log)
from process memory.`,
		RunE: runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE:  runServe,
	}

	routesCmd = &cobra.Command{
		Use:   "routes",
		Short: "Print every API endpoint and the operation it runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		filepath.Join("configs", "config.yaml"), "path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(context.Background(), configPath)
	if err != nil {
		return err
	}
	if err := srv.Run(); err != nil {
		return err
	}
	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func printRoutes(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tOPERATION")
	for _, r := range gateway.Routes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, routes.GinPath(r.Pattern), r.Op)
	}
	fmt.Fprintf(w, "GET\t%s/admin/activity-log/stream\tactivity_log.stream\n", routes.APIPrefix)
	fmt.Fprintf(w, "GET\t%s/health\thealth\n", routes.APIPrefix)
	fmt.Fprintln(w, "GET\t/metrics\tmetrics")
	return w.Flush()
}
