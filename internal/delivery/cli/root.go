// Package cli is the scooterctl command line: one-shot commands for the public
// catalogue and sign-up, and an interactive console that runs a single
// workspace for the lifetime of the process.
package cli

import (
	"context"
	"io"
	"strings"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"
	"scooter/internal/usecase"

	"github.com/spf13/cobra"
)

// OpenFunc builds the workspace of a CLI profile. The returned close function
// releases the stores and publishers behind it.
type OpenFunc func(ctx context.Context, profile string) (*usecase.Workspace, func(), error)

// Options wires the CLI to its environment.
type Options struct {
	Open    OpenFunc
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Version string
}

const defaultProfile = "default"

type app struct {
	opts      Options
	profile   string
	colorMode string
	printer   *Printer
}

// NewRootCommand builds the scooterctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts, printer: NewPrinter(opts.Out, opts.Err, false)}

	root := &cobra.Command{
		Use:   "scooterctl",
		Short: "Scooter rental client",
		Long: `scooterctl talks to the scooter rental service from the terminal.

Example usage:
  scooterctl bikes --location Halifax     # Browse available bikes
  scooterctl register --email ana@example.com --name Ana \
      --question "What is your favourite food?=Pizza" ...
  scooterctl verify --email ana@example.com --code 123456
  scooterctl console                      # Sign in and manage bookings`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ParseColorMode(a.colorMode)
			if err != nil {
				return err
			}
			a.printer = NewPrinter(opts.Out, opts.Err, ResolveColors(mode))

			return nil
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&a.profile, "profile", defaultProfile, "client profile; each profile keeps its own profile snapshot")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "auto", "color output: auto, always, or never")

	root.AddCommand(
		a.bikesCommand(),
		a.feedbackCommand(),
		a.registerCommand(),
		a.verifyCommand(),
		a.consoleCommand(),
	)

	return root
}

// Execute runs the CLI and reports failures the way the console does.
// It returns the process exit code.
func Execute(ctx context.Context, opts Options, args []string) int {
	root := NewRootCommand(opts)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		NewPrinter(opts.Out, opts.Err, false).Error("%s", userMessage(err))

		return 1
	}

	return 0
}

// withWorkspace opens the profile's workspace for the duration of fn.
func (a *app) withWorkspace(cmd *cobra.Command, fn func(ctx context.Context, ws *usecase.Workspace) error) error {
	ctx := cmd.Context()

	ws, closeFn, err := a.opts.Open(ctx, a.profile)
	if err != nil {
		return errors.Wrap(err, "open workspace")
	}
	defer closeFn()

	return fn(ctx, ws)
}

func (a *app) bikesCommand() *cobra.Command {
	var filter entity.BikeFilter

	cmd := &cobra.Command{
		Use:   "bikes",
		Short: "List available bikes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ctx context.Context, ws *usecase.Workspace) error {
				catalog, err := ws.Catalog.Browse(ctx, filter)
				if err != nil {
					return err
				}

				return renderCatalog(a.printer, catalog)
			})
		},
	}
	cmd.Flags().StringVar(&filter.Location, "location", "", "only bikes at this location")
	cmd.Flags().StringVar(&filter.Model, "model", "", "only bikes of this model")

	return cmd
}

func (a *app) feedbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feedback BIKE_ID",
		Short: "Show the reviews of a bike",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ctx context.Context, ws *usecase.Workspace) error {
				feedback, err := ws.Feedback.ForBike(ctx, args[0])
				if err != nil {
					return err
				}

				return renderFeedback(a.printer, feedback)
			})
		},
	}
}

func (a *app) registerCommand() *cobra.Command {
	var (
		draft       entity.SignupDraft
		accountType string
		questions   []string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Three different security questions must be answered,
each given as --question "QUESTION=ANSWER". The password is read from stdin
when --password is omitted.

Security questions:
  ` + strings.Join(entity.SecurityQuestions, "\n  "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft.AccountType = entity.AccountTypeCustomer
			if strings.EqualFold(accountType, string(entity.AccountTypeFranchise)) {
				draft.AccountType = entity.AccountTypeFranchise
			}
			if draft.Password == "" {
				password, err := newLineReader(cmd.InOrStdin()).secret(a.printer, "Password: ")
				if err != nil {
					return err
				}
				draft.Password = password
			}

			answers, err := parseQuestions(questions)
			if err != nil {
				return err
			}

			return a.withWorkspace(cmd, func(ctx context.Context, ws *usecase.Workspace) error {
				next, err := ws.Registration.AdvanceToQuestions(draft)
				if err != nil {
					return err
				}
				next.Questions = answers

				result, err := ws.Registration.Submit(ctx, next)
				if err != nil {
					return err
				}

				a.printer.Success("%s", usecase.MsgRegistered)
				if result != nil && result.CodeDelivery != "" {
					a.printer.Info("Code sent to %s", result.CodeDelivery)
				}

				return nil
			})
		},
	}
	cmd.Flags().StringVar(&draft.Email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&draft.Name, "name", "", "display name")
	cmd.Flags().StringVar(&draft.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&accountType, "type", string(entity.AccountTypeCustomer), "account type: Customer or Franchise")
	cmd.Flags().StringArrayVar(&questions, "question", nil, `security question and answer as "QUESTION=ANSWER"`)

	return cmd
}

// parseQuestions fills the security question slots in order. Missing or
// incomplete slots are left for the registration checks to report.
func parseQuestions(raw []string) ([entity.SecurityQuestionSlots]entity.SecurityAnswer, error) {
	var answers [entity.SecurityQuestionSlots]entity.SecurityAnswer
	if len(raw) > entity.SecurityQuestionSlots {
		return answers, errors.WithStack(domainerrors.Validation("Please answer exactly three security questions."))
	}

	for i, item := range raw {
		question, answer, _ := strings.Cut(item, "=")
		answers[i] = entity.SecurityAnswer{
			Question: strings.TrimSpace(question),
			Answer:   strings.TrimSpace(answer),
		}
	}

	return answers, nil
}

func (a *app) verifyCommand() *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Confirm an account with the e-mailed code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ctx context.Context, ws *usecase.Workspace) error {
				if err := ws.Registration.Confirm(ctx, email, code); err != nil {
					return err
				}
				a.printer.Success("%s", usecase.MsgVerified)

				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&code, "code", "", "verification code")

	return cmd
}

func (a *app) consoleCommand() *cobra.Command {
	var zone string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Sign in with 'login'; type 'help' for the
commands available to your account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := loadZone(zone)
			if err != nil {
				return err
			}

			return a.withWorkspace(cmd, func(ctx context.Context, ws *usecase.Workspace) error {
				return NewConsole(ws, a.printer, cmd.InOrStdin(), loc).Run(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&zone, "tz", "", "time zone of booking times (default: local)")

	return cmd
}
