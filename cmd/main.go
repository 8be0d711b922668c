package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	qaagent "github.com/jaidivyakl1002/QAAgent-Task-Jaidivya"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/exitcodes"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/flags"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/logging"
	"github.com/jaidivyakl1002/QAAgent-Task-Jaidivya/service"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "qaagent"
	app.Usage = "Browser test execution agent"
	app.Description = "qaagent discovers browser test files, runs them through Playwright, and produces execution reports"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if qaagent.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else {
				// Orchestration failures and anything unclassified exit 1.
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.OrchestrationErr))
			}
		}
	}

	// Telemetry export is configured from the environment; a collector is
	// optional.
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up telemetry: %v\n", err)
		os.Exit(exitcodes.RuntimeErr)
	}
	defer otelShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.OrchestrationErr)
	}
}

func run(cliCtx *cli.Context) error {
	log := logging.NewDefault(cliCtx.String(flags.LogLevel.Name))

	cfg, err := qaagent.NewConfig(cliCtx, log)
	if err != nil {
		return qaagent.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	ctx, cancel := context.WithCancelCause(cliCtx.Context)
	defer cancel(nil)

	agent, err := qaagent.New(ctx, cfg, Version, func(err error) {
		cancel(err)
	})
	if err != nil {
		return qaagent.NewRuntimeError(fmt.Errorf("failed to create agent: %w", err))
	}

	svc := service.New(log, agent)
	svc.Start(ctx)
	defer svc.Shutdown()

	if err := agent.Start(ctx); err != nil {
		return err
	}

	// Block until the run-once shutdown callback fires or a signal arrives.
	<-ctx.Done()

	if err := agent.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to stop agent cleanly")
	}
	if err := agent.WaitForShutdown(context.Background()); err != nil {
		log.Warn().Err(err).Msg("shutdown wait interrupted")
	}

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}
