package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"relief-dispatch-service/internal/adapters/geo"
	"relief-dispatch-service/internal/adapters/repositories"
	"relief-dispatch-service/internal/api/dto"
	"relief-dispatch-service/internal/app"
	"relief-dispatch-service/internal/config"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/logging"
	"relief-dispatch-service/internal/services"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Exit codes: 1 for failures, 2 when the plan left demand unserved.
const (
	exitFailure = 1
	exitPartial = 2
)

var formats = []string{"text", "json", "geojson", "frames"}

// exitError carries a process exit code out of cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.code == exitPartial {
			fmt.Fprintln(stderr, "warning:", ee.err)
		} else {
			fmt.Fprintln(stderr, "error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "error:", err)
	return exitFailure
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan relief deliveries from a scenario file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.Get("CONFIG_PATH", ""), "configuration file (yaml or json)")
	root.AddCommand(newRunCmd(&cfgPath))
	return root
}

func newRunCmd(cfgPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Dispatch the fleet over one scenario and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(formats, ", "))
			}
			return runScenario(cmd.Context(), *cfgPath, args[0], format, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: "+strings.Join(formats, "|"))
	return cmd
}

func runScenario(ctx context.Context, cfgPath, path, format string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.NewWithWriter(cfg.Log, "planner", stderr)
	ctx = log.WithContext(ctx)

	s, err := repositories.LoadScenarioFile(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	planner := app.NewPlanner(cfg.Planner, nil, nil)
	rec, planErr := planner.PlanScenario(ctx, name, s)

	var partial *domain.PartialCompletionError
	if planErr != nil && !(errors.As(planErr, &partial) && rec != nil) {
		return planErr
	}

	if err := render(stdout, rec, format); err != nil {
		return err
	}
	if partial != nil {
		return &exitError{code: exitPartial, err: partial}
	}
	return nil
}

func render(w io.Writer, rec *domain.PlanRecord, format string) error {
	summary := services.RenderSummary(rec.Report)
	switch format {
	case "json":
		return writeJSON(w, dto.NewPlanResponse(rec, summary))
	case "geojson":
		return writeJSON(w, geo.NetworkFeatures(rec.Report, rec.Input.Roads))
	case "frames":
		return writeJSON(w, geo.Frames(rec.Report))
	default:
		_, err := fmt.Fprintln(w, summary)
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func validFormat(f string) bool {
	for _, ok := range formats {
		if f == ok {
			return true
		}
	}
	return false
}
