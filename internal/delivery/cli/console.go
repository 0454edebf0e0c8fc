package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"
	"scooter/internal/usecase"

	"golang.org/x/term"
)

// lineReader reads prompted input one line at a time.
type lineReader struct {
	in      io.Reader
	scanner *bufio.Scanner
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{in: in, scanner: bufio.NewScanner(in)}
}

// line returns the next trimmed line; ok is false at end of input.
func (r *lineReader) line(p *Printer, label string) (string, bool) {
	p.Prompt(label)
	if !r.scanner.Scan() {
		return "", false
	}

	return strings.TrimSpace(r.scanner.Text()), true
}

// secret reads a password without echo when the input is a terminal.
func (r *lineReader) secret(p *Printer, label string) (string, error) {
	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.Prompt(label)
		raw, err := term.ReadPassword(int(f.Fd()))
		p.Print("")
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}

		return string(raw), nil
	}

	value, ok := r.line(p, label)
	if !ok {
		return "", errors.WithStack(io.ErrUnexpectedEOF)
	}

	return value, nil
}

type consoleCommand struct {
	usage       string
	help        string
	requirement entity.Requirement
	minArgs     int
	run         func(ctx context.Context, args []string) error
}

// Console is an interactive session on one workspace. Every command is
// checked against the route guard before it runs.
type Console struct {
	ws       *usecase.Workspace
	p        *Printer
	input    *lineReader
	location *time.Location
	commands map[string]consoleCommand
}

// NewConsole creates a console reading commands from in. Booking times are
// interpreted in loc.
func NewConsole(ws *usecase.Workspace, p *Printer, in io.Reader, loc *time.Location) *Console {
	if loc == nil {
		loc = time.Local
	}

	c := &Console{
		ws:       ws,
		p:        p,
		input:    newLineReader(in),
		location: loc,
	}
	c.commands = c.commandTable()

	return c
}

func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.WithStack(domainerrors.Validation("Unknown time zone."))
	}

	return loc, nil
}

func (c *Console) commandTable() map[string]consoleCommand {
	return map[string]consoleCommand{
		"help":         {usage: "help", help: "list commands", requirement: entity.RequireNone, run: c.help},
		"whoami":       {usage: "whoami", help: "show who is signed in", requirement: entity.RequireNone, run: c.whoami},
		"login":        {usage: "login [EMAIL]", help: "sign in", requirement: entity.RequireNone, run: c.login},
		"logout":       {usage: "logout", help: "sign out", requirement: entity.RequireNone, run: c.logout},
		"bikes":        {usage: "bikes [LOCATION] [MODEL]", help: "list available bikes", requirement: entity.RequireNone, run: c.bikes},
		"feedback":     {usage: "feedback BIKE_ID", help: "show the reviews of a bike", requirement: entity.RequireNone, minArgs: 1, run: c.feedback},
		"review":       {usage: "review BIKE_ID RATING COMMENT", help: "review a bike", requirement: entity.RequireAuthenticated, minArgs: 3, run: c.review},
		"dashboard":    {usage: "dashboard", help: "show your profile and statistics", requirement: entity.RequirementFor(entity.ScreenDashboard), run: c.dashboard},
		"bookings":     {usage: "bookings", help: "list your bookings", requirement: entity.RequirementFor(entity.ScreenMyBookings), run: c.bookings},
		"book":         {usage: "book BIKE_ID START END", help: "request a booking (times as 2006-01-02T15:04)", requirement: entity.RequireCustomer, minArgs: 3, run: c.book},
		"reschedule":   {usage: "reschedule REF START END", help: "move a booking", requirement: entity.RequireCustomer, minArgs: 3, run: c.reschedule},
		"cancel":       {usage: "cancel REF", help: "cancel a booking", requirement: entity.RequireCustomer, minArgs: 1, run: c.cancel},
		"code":         {usage: "code REF", help: "show the access code of a booking", requirement: entity.RequireCustomer, minArgs: 1, run: c.code},
		"concerns":     {usage: "concerns REF", help: "list the concerns of a booking", requirement: entity.RequireCustomer, minArgs: 1, run: c.concerns},
		"raise":        {usage: "raise REF TEXT", help: "raise a concern about a booking", requirement: entity.RequireCustomer, minArgs: 2, run: c.raise},
		"fleet":        {usage: "fleet", help: "list all bikes", requirement: entity.RequirementFor(entity.ScreenAdminBikes), run: c.fleet},
		"all-bookings": {usage: "all-bookings", help: "list every booking", requirement: entity.RequirementFor(entity.ScreenAdminBookings), run: c.allBookings},
		"assigned":     {usage: "assigned", help: "list the concerns assigned to you", requirement: entity.RequirementFor(entity.ScreenUserConcerns), run: c.assigned},
		"resolve":      {usage: "resolve BOOKING_ID COMMENT", help: "resolve a concern", requirement: entity.RequireAdmin, minArgs: 2, run: c.resolve},
	}
}

// Run resolves the session and processes commands until exit or end of input.
func (c *Console) Run(ctx context.Context) error {
	c.p.Info("%s", describeSession(c.ws.Session.Resolve(ctx)))
	c.p.Print("Type 'help' for commands, 'exit' to quit.")

	for {
		line, ok := c.input.line(c.p, "scooter> ")
		if !ok {
			c.p.Print("")

			return errors.Wrap(c.input.scanner.Err(), "read command")
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		if name == "exit" || name == "quit" {
			return nil
		}

		if err := c.dispatch(ctx, name, fields[1:]); err != nil {
			c.p.Error("%s", userMessage(err))
		}

		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, name string, args []string) error {
	cmd, ok := c.commands[name]
	if !ok {
		return errors.WithStack(domainerrors.Validation("Unknown command '" + name + "'. Type 'help' for commands."))
	}

	decision := entity.Guard(c.ws.Session.Verify(ctx), cmd.requirement)
	switch decision.Kind {
	case entity.DecisionLoading:
		c.p.Info("%s", entity.LoadingPlaceholder)

		return nil
	case entity.DecisionRedirect:
		if decision.Location == entity.ScreenLogin {
			return errors.WithStack(domainerrors.ErrNotAuthenticated)
		}

		return errors.WithStack(domainerrors.ErrForbidden.WithMessage("'" + name + "' is not available for your account."))
	}

	if len(args) < cmd.minArgs {
		return errors.WithStack(domainerrors.Validation("Usage: " + cmd.usage))
	}

	return cmd.run(ctx, args)
}

func (c *Console) help(context.Context, []string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	session := c.ws.Session.Current()
	table := c.p.NewTable("COMMAND", "DESCRIPTION")
	for _, name := range names {
		cmd := c.commands[name]
		if entity.Guard(session, cmd.requirement).Kind != entity.DecisionRender {
			continue
		}
		table.AddRow(cmd.usage, cmd.help)
	}
	table.AddRow("exit", "leave the console")

	return table.Render()
}

func (c *Console) whoami(context.Context, []string) error {
	c.p.Info("%s", describeSession(c.ws.Session.Current()))

	return nil
}

// login runs the challenge relay until the provider signs the user in or the
// user gives up. A wrong answer keeps the same challenge pending.
func (c *Console) login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var ok bool
		if email, ok = c.input.line(c.p, "Email: "); !ok {
			return nil
		}
	}

	password, err := c.input.secret(c.p, "Password: ")
	if err != nil {
		return err
	}

	state, err := c.ws.Relay.SubmitCredentials(ctx, email, password)
	for {
		if signedIn, ok := state.(entity.RelaySignedIn); ok {
			c.p.Success("%s", describeSession(signedIn.Session))

			return nil
		}
		if err != nil {
			c.p.Error("%s", userMessage(err))
		}

		challenge, pending := entity.PendingChallenge(state)
		if !pending {
			return nil
		}

		renderChallenge(c.p, challenge)
		answer, ok := c.input.line(c.p, "Answer (or 'cancel'): ")
		if !ok || answer == "cancel" {
			c.ws.Relay.Abandon()
			c.p.Info("Sign-in cancelled.")

			return nil
		}

		state, err = c.ws.Relay.SubmitChallengeAnswer(ctx, answer)
	}
}

// logout always ends the local session; a provider failure is only reported.
func (c *Console) logout(ctx context.Context, _ []string) error {
	err := c.ws.Relay.SignOut(ctx)
	c.p.Info("%s", describeSession(c.ws.Session.Current()))

	return err
}

func (c *Console) bikes(ctx context.Context, args []string) error {
	var filter entity.BikeFilter
	if len(args) > 0 {
		filter.Location = args[0]
	}
	if len(args) > 1 {
		filter.Model = strings.Join(args[1:], " ")
	}

	catalog, err := c.ws.Catalog.Browse(ctx, filter)
	if err != nil {
		return err
	}

	return renderCatalog(c.p, catalog)
}

func (c *Console) feedback(ctx context.Context, args []string) error {
	feedback, err := c.ws.Feedback.ForBike(ctx, args[0])
	if err != nil {
		return err
	}

	return renderFeedback(c.p, feedback)
}

func (c *Console) review(ctx context.Context, args []string) error {
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.WithStack(domainerrors.ErrRatingOutOfRange)
	}

	feedback, err := c.ws.Feedback.Submit(ctx, entity.FeedbackInput{
		BikeID:  args[0],
		Rating:  rating,
		Comment: strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}

	c.p.Success("%s", usecase.MsgFeedbackSubmitted)

	return renderFeedback(c.p, feedback)
}

func (c *Console) dashboard(ctx context.Context, _ []string) error {
	dashboard, err := c.ws.Dashboard.Load(ctx)
	if err != nil {
		return err
	}
	if err := renderDashboard(c.p, dashboard); err != nil {
		return err
	}

	// customers land on the bike listing
	if dashboard.Redirect != "" {
		return c.bikes(ctx, nil)
	}

	return nil
}

func (c *Console) bookings(ctx context.Context, _ []string) error {
	bookings, err := c.ws.Bookings.MyBookings(ctx)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		c.p.Info("%s", usecase.MsgNoBookings)

		return nil
	}

	return renderBookings(c.p, bookings)
}

func (c *Console) window(start, end string) (entity.BookingWindow, error) {
	startAt, err := entity.ParseLocalDateTime(start, c.location)
	if err != nil {
		return entity.BookingWindow{}, errors.WithStack(domainerrors.Validation("Please enter a valid start date/time."))
	}
	endAt, err := entity.ParseLocalDateTime(end, c.location)
	if err != nil {
		return entity.BookingWindow{}, errors.WithStack(domainerrors.Validation("Please enter a valid end date/time."))
	}

	return entity.BookingWindow{Start: startAt, End: endAt}, nil
}

func (c *Console) book(ctx context.Context, args []string) error {
	window, err := c.window(args[1], args[2])
	if err != nil {
		return err
	}

	if err := c.ws.Bookings.Book(ctx, usecase.BookInput{BikeID: args[0], Window: window}); err != nil {
		return err
	}
	c.p.Success("%s", usecase.MsgBookingSubmitted)

	return nil
}

func (c *Console) reschedule(ctx context.Context, args []string) error {
	window, err := c.window(args[1], args[2])
	if err != nil {
		return err
	}

	if err := c.ws.Bookings.Reschedule(ctx, usecase.RescheduleInput{Reference: args[0], Window: window}); err != nil {
		return err
	}
	c.p.Success("%s", usecase.MsgBookingUpdated)

	return nil
}

func (c *Console) cancel(ctx context.Context, args []string) error {
	if err := c.ws.Bookings.Cancel(ctx, args[0]); err != nil {
		return err
	}
	c.p.Success("%s", usecase.MsgBookingCancelled)

	return nil
}

func (c *Console) code(ctx context.Context, args []string) error {
	code, err := c.ws.Bookings.AccessCode(ctx, args[0])
	if err != nil {
		return err
	}
	c.p.Print("Access code for %s: %s", code.BookingReferenceCode, c.p.Bold(code.Code))

	return nil
}

func (c *Console) concerns(ctx context.Context, args []string) error {
	concerns, err := c.ws.Concerns.ForBooking(ctx, args[0])
	if err != nil {
		return err
	}

	return renderConcerns(c.p, concerns)
}

func (c *Console) raise(ctx context.Context, args []string) error {
	concerns, err := c.ws.Concerns.Raise(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	c.p.Success("%s", usecase.MsgConcernRaised)

	return renderConcerns(c.p, concerns)
}

func (c *Console) fleet(ctx context.Context, _ []string) error {
	bikes, err := c.ws.Fleet.List(ctx)
	if err != nil {
		return err
	}

	return renderBikes(c.p, bikes)
}

func (c *Console) allBookings(ctx context.Context, _ []string) error {
	bookings, err := c.ws.Bookings.AllBookings(ctx)
	if err != nil {
		return err
	}

	return renderBookings(c.p, bookings)
}

func (c *Console) assigned(ctx context.Context, _ []string) error {
	concerns, err := c.ws.Concerns.Assigned(ctx)
	if err != nil {
		return err
	}

	return renderConcerns(c.p, concerns)
}

func (c *Console) resolve(ctx context.Context, args []string) error {
	concerns, err := c.ws.Concerns.Resolve(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	c.p.Success("%s", usecase.MsgConcernResolved)

	return renderConcerns(c.p, concerns)
}
