package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zen-systems/localmux/pkg/backend"
	"github.com/zen-systems/localmux/pkg/config"
	"github.com/zen-systems/localmux/pkg/discovery"
	"github.com/zen-systems/localmux/pkg/handler"
	"github.com/zen-systems/localmux/pkg/router"
	"github.com/zen-systems/localmux/pkg/server"
)

var (
	configFile string
	debugFlag  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "localmux",
		Short: "Capability-based router for locally-hosted model backends",
		Long: `Localmux routes coding and reasoning tasks across locally-hosted model
	backends (Ollama, LM Studio, llama.cpp server), selecting a backend by
	declared capability and attaching discovered file context to prompts.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(contextCmd())
	rootCmd.AddCommand(backendsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and wires the request handler.
func setup() (*config.Config, *handler.Handler, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	backends, err := config.NewFactory().BuildAll(cfg.Backends)
	if err != nil {
		return nil, nil, err
	}

	r := router.NewRouter(
		router.WithProbeCache(backend.NewProbeCache(probeTTL(cfg))),
		router.WithDebug(debugFlag),
	)
	d := discovery.NewDiscoverer(cfg.ScanConfig(), discovery.WithDebug(debugFlag))
	h := handler.New(r, d, backends,
		handler.WithAliases(cfg.Aliases),
		handler.WithDefaults(cfg.Defaults),
		handler.WithDebug(debugFlag),
	)
	return cfg, h, nil
}

func serveCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio (or HTTP with --http)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, h, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := server.NewService(h)
			if httpAddr != "" {
				fmt.Fprintf(os.Stderr, "localmux: serving MCP over HTTP on %s\n", httpAddr)
				return server.RunHTTP(ctx, svc, httpAddr)
			}
			return server.RunStdio(ctx, svc)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve over streamable HTTP on this address instead of stdio")
	return cmd
}

func askCmd() *cobra.Command {
	var (
		domain     string
		taskType   string
		language   string
		sourceFile string
		model      string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a one-shot prompt to the best-scoring backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, h, err := setup()
			if err != nil {
				return err
			}

			result, err := h.Generate(cmd.Context(), handler.Request{
				Prompt:     args[0],
				Domain:     domain,
				TaskType:   taskType,
				Language:   language,
				SourcePath: sourceFile,
				Model:      model,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			fmt.Println(result.Artifact.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "task domain (default from config)")
	cmd.Flags().StringVar(&taskType, "task", "", "task type (default from config)")
	cmd.Flags().StringVar(&language, "language", "", "programming language of the task")
	cmd.Flags().StringVar(&sourceFile, "file", "", "attach files related to this source file as context")
	cmd.Flags().StringVar(&model, "model", "", "model name or alias overriding the backend default")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the full result as JSON")
	return cmd
}

func routeCmd() *cobra.Command {
	var (
		domain   string
		taskType string
		language string
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Show the routing decision for a task without generating",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, h, err := setup()
			if err != nil {
				return err
			}

			decision := h.Route(cmd.Context(), handler.Request{
				Domain:   domain,
				TaskType: taskType,
				Language: language,
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tPROFILE\tDOMAIN\tTASK\tLANG\tSPEC\tPERF\tTOTAL")
			for _, s := range decision.Scores {
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.0f\t%.0f\t%.1f\t%.1f\n",
					s.Backend, s.Profile, s.DomainScore, s.TaskScore, s.LanguageScore,
					s.SpecializationScore, s.PerformanceScore, s.Total)
			}
			w.Flush()

			for _, name := range decision.Unreachable {
				fmt.Printf("unreachable: %s\n", name)
			}
			if decision.Selected == "" {
				fmt.Println("no capable backend")
			} else {
				fmt.Printf("selected: %s (score %.1f)\n", decision.Selected, decision.BestScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "code", "task domain")
	cmd.Flags().StringVar(&taskType, "task", "generation", "task type")
	cmd.Flags().StringVar(&language, "language", "", "programming language of the task")
	return cmd
}

func contextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context [file]",
		Short: "Show discovered context, test and documentation files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			d := discovery.NewDiscoverer(cfg.ScanConfig(), discovery.WithDebug(debugFlag))
			files, err := d.ContextFiles(args[0])
			if err != nil {
				return err
			}
			tests, _ := d.TestFiles(args[0])
			docs, _ := d.DocFiles(args[0])

			printSection := func(title string, paths []string) {
				fmt.Printf("%s:\n", title)
				if len(paths) == 0 {
					fmt.Println("  (none)")
					return
				}
				for _, p := range paths {
					fmt.Printf("  %s\n", p)
				}
			}
			printSection("context", files)
			printSection("tests", tests)
			printSection("docs", docs)
			return nil
		},
	}
	return cmd
}

func backendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List configured backends and their reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, h, err := setup()
			if err != nil {
				return err
			}

			backends := h.Backends()
			infos := make([]backend.Info, len(backends))

			g, gctx := errgroup.WithContext(cmd.Context())
			for i, b := range backends {
				g.Go(func() error {
					infos[i] = backend.Describe(gctx, b)
					return nil
				})
			}
			_ = g.Wait()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tURL\tMODEL\tREACHABLE\tPROFILES")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%d\n",
					info.Name, info.Kind, info.URL, info.Model, info.Reachable, len(info.Profiles))
			}
			return w.Flush()
		},
	}
	return cmd
}

func probeTTL(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Defaults.ProbeTTLSec) * time.Second
}
