package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/takedown/internal/app"
	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/catalog"
	"github.com/five82/takedown/internal/config"
	"github.com/five82/takedown/internal/logging"
	"github.com/five82/takedown/internal/logtail"
	"github.com/five82/takedown/internal/server"
	"github.com/five82/takedown/internal/viewstate"
)

func newRootCmd() *cobra.Command {
	var opts app.Options
	root := &cobra.Command{
		Use:           "takedown",
		Short:         "Athlete profile admin tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/takedown/config.toml)")
	pf.StringVar(&opts.Source, "source", "", "catalog source: fixture, file or remote")
	pf.StringVar(&opts.CatalogPath, "catalog", "", "catalog YAML file (implies --source file)")
	pf.StringVar(&opts.RemoteURL, "remote", "", "takedown API address (implies --source remote)")

	f := root.Flags()
	f.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/takedown/prefs.toml)")
	f.StringVar(&opts.Layout, "layout", "", "tab layout: admin or review")
	f.BoolVar(&opts.OpenProfile, "open", false, "start on the primary profile")
	f.IntVar(&opts.PollEvery, "poll", 0, "refresh interval in seconds")

	root.AddCommand(
		searchCmd(&opts),
		showCmd(&opts),
		serveCmd(&opts),
		exportCatalogCmd(),
		logsCmd(&opts),
	)
	return root
}

// loadCatalog resolves the configured source and fetches its catalog once.
func loadCatalog(cmd *cobra.Command, opts *app.Options) (*athlete.Catalog, error) {
	cfg, err := app.ResolveConfig(*opts)
	if err != nil {
		return nil, err
	}
	src, _, err := app.BuildSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog source: %w", err)
	}
	cat, err := src.FetchCatalog(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return cat, nil
}

func searchCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search profiles by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, opts)
			if err != nil {
				return err
			}
			res := viewstate.Search(cat.Searchable(), args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Label())
			for _, p := range res.Matches {
				fmt.Fprintf(out, "  %s  %s\n    %s\n", p.ID, p.Name, p.Summary())
			}
			return nil
		},
	}
}

// showOutput is the --json shape of the show command.
type showOutput struct {
	Mode        viewstate.ViewMode     `json:"mode"`
	Profile     viewstate.Card         `json:"profile"`
	Comparisons []viewstate.Comparison `json:"comparisons"`
}

func showCmd(opts *app.Options) *cobra.Command {
	var external, asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the primary profile and its merge comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd, opts)
			if err != nil {
				return err
			}
			mode := viewstate.ViewInternal
			if external {
				mode = viewstate.ViewExternal
			}
			result := showOutput{
				Mode:        mode,
				Profile:     viewstate.ProfileCard(cat.Primary, mode, ""),
				Comparisons: make([]viewstate.Comparison, 0, len(cat.Merged)),
			}
			for i, m := range cat.Merged {
				result.Comparisons = append(result.Comparisons, viewstate.Compare(cat.Primary, m, mode, viewstate.RowKey(i)))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printCard(out, result.Profile)
			for _, c := range result.Comparisons {
				fmt.Fprintln(out)
				printCard(out, c.Right)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&external, "external", false, "hide DOB and coordinates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printCard(w io.Writer, c viewstate.Card) {
	fmt.Fprintf(w, "%s: %s (%s)\n", strings.ToUpper(c.Title), c.Name, c.ID)
	for _, r := range c.Rows {
		fmt.Fprintf(w, "  %-14s%s\n", r.Label, r.Value)
	}
}

func serveCmd(opts *app.Options) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ResolveConfig(*opts)
			if err != nil {
				return err
			}
			logger, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel, Stderr: true})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			src, _, err := app.BuildSource(cfg)
			if err != nil {
				return fmt.Errorf("open catalog source: %w", err)
			}
			srv, err := server.New(server.Options{
				Source:      src,
				Logger:      logger,
				CORSOrigins: cfg.CORSOrigins,
				RateLimit:   cfg.RateLimit,
			})
			if err != nil {
				return err
			}
			addr := cfg.Listen
			if listen != "" {
				addr = listen
			}
			logger.Info("serving takedown API", zap.String("addr", addr), zap.String("source", app.SourceLabel(cfg)))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}

func exportCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-catalog <path>",
		Short: "Write the built-in catalog as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if err := catalog.Write(path, athlete.Fixture()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func logsCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ResolveConfig(*opts)
			if err != nil {
				return err
			}
			raw, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range logtail.FormatLines(raw) {
				fmt.Fprintln(out, l)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "number of lines (0 for all)")
	return cmd
}
