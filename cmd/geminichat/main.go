// Command geminichat is a terminal chat with the Gemini API.
//
// # Running:
//
//	GEMINI_API_KEY=xxx geminichat
//	GEMINI_API_KEY=xxx geminichat serve --addr :8080
//
// The key may also be placed in a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/olusolaa/geminichat/chat"
	"github.com/olusolaa/geminichat/foundation/config"
	"github.com/olusolaa/geminichat/foundation/gemini"
	"github.com/olusolaa/geminichat/foundation/logging"
	"github.com/olusolaa/geminichat/foundation/session"
	"github.com/olusolaa/geminichat/server"
)

// sessionFactory builds the Session once the credential has been validated.
type sessionFactory func(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Generator, error)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, newGeminiSession))
}

func newGeminiSession(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Generator, error) {
	s, err := gemini.NewSession(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// execute runs the command line and returns the process exit status.
func execute(args []string, in io.Reader, out, errOut io.Writer, newSession sessionFactory) int {
	root := newRootCmd(in, out, newSession)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(context.Background()); err != nil {
		// The missing-credential diagnostic has already been printed.
		if !errors.Is(err, config.ErrMissingCredential) {
			_, _ = fmt.Fprintf(out, "%s %v\n", chat.ErrorLabel, err)
		}
		return 1
	}
	return 0
}

type app struct {
	cfg        config.Config
	in         io.Reader
	out        io.Writer
	newSession sessionFactory
}

func newRootCmd(in io.Reader, out io.Writer, newSession sessionFactory) *cobra.Command {
	a := &app{
		cfg:        config.DefaultConfig(),
		in:         in,
		out:        out,
		newSession: newSession,
	}
	a.cfg.Color = chat.IsTerminal(out)

	root := &cobra.Command{
		Use:           "geminichat",
		Short:         "Chat with Gemini from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Model, "model", a.cfg.Model, "Gemini model name")
	flags.StringVar(&a.cfg.SystemInstruction, "system", a.cfg.SystemInstruction, "System instruction sent with every prompt")
	flags.StringVar(&a.cfg.EnvFile, "env-file", a.cfg.EnvFile, "Dotenv file to read "+config.APIKeyEnv+" from (set empty to skip)")
	flags.BoolVar(&a.cfg.Verbose, "verbose", a.cfg.Verbose, "Write debug diagnostics to stderr")
	flags.BoolVar(&a.cfg.Color, "color", a.cfg.Color, "Colour the speaker labels (default: on when stdout is a terminal)")

	root.AddCommand(a.newServeCmd())
	return root
}

func (a *app) newServeCmd() *cobra.Command {
	addr := server.DefaultAddr
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat session over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address")
	return cmd
}

// setup validates the credential and builds the logger and Session. A missing
// credential is reported before anything else is constructed.
func (a *app) setup(ctx context.Context, ui *chat.TerminalUI) (config.Config, session.Generator, *zap.Logger, error) {
	cfg, err := config.Load(a.cfg)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			ui.DisplayMissingCredential(config.APIKeyEnv)
		}
		return cfg, nil, nil, err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return cfg, nil, nil, err
	}

	gen, err := a.newSession(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return cfg, nil, nil, err
	}
	return cfg, gen, logger, nil
}

func (a *app) runChat(ctx context.Context) error {
	ui := chat.NewTerminalUI(a.in, a.out, a.cfg.Color)

	cfg, gen, logger, err := a.setup(ctx, ui)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	loop, err := chat.NewLoop(gen, ui, cfg.Model, logger)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}

func (a *app) runServe(ctx context.Context, addr string) error {
	ui := chat.NewTerminalUI(a.in, a.out, a.cfg.Color)

	_, gen, logger, err := a.setup(ctx, ui)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(gen, logger, server.WithAddr(addr))
	if err != nil {
		return err
	}
	srv.Run()
	return nil
}
