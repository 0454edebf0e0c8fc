package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/errors"
	"scooter/internal/util"
)

const commentWidth = 48

// userMessage is what the user sees for a failed action.
func userMessage(err error) string {
	if appErr, ok := errors.AsTarget[domainerrors.AppError](err); ok {
		return appErr.Message()
	}

	return err.Error()
}

func renderCatalog(p *Printer, catalog *entity.Catalog) error {
	if len(catalog.Bikes) == 0 {
		p.Info("No bikes match the filter.")

		return nil
	}

	table := p.NewTable("BIKE", "MODEL", "LOCATION", "RATE/H", "STATUS")
	for _, b := range catalog.Bikes {
		table.AddRow(p.Bold(b.BikeID), b.Model, b.Location, b.RatePerHour.Label(), p.StatusBadge(b.StatusLabel()))
	}
	if err := table.Render(); err != nil {
		return err
	}

	p.Print("%s %v", p.Dim("Locations:"), catalog.Locations)
	p.Print("%s %v", p.Dim("Models:"), catalog.Models)

	return nil
}

func renderBikes(p *Printer, bikes []entity.Bike) error {
	table := p.NewTable("BIKE", "MODEL", "LOCATION", "RATE/H", "STATUS", "DETAILS")
	for _, b := range bikes {
		pairs := entity.DetailsToPairs(b.Details)
		details := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			details = append(details, pair.Key+"="+pair.Value)
		}
		table.AddRow(p.Bold(b.BikeID), b.Model, b.Location, b.RatePerHour.Label(), p.StatusBadge(b.StatusLabel()),
			util.Ellipsis(strings.Join(details, ", "), commentWidth))
	}

	return table.Render()
}

func renderBookings(p *Printer, bookings []entity.BookingView) error {
	table := p.NewTable("REFERENCE", "BIKE", "START", "END", "DURATION", "COST", "STATUS")
	for _, b := range bookings {
		table.AddRow(p.Bold(b.BookingReferenceCode), b.BikeID, b.StartTime, b.EndTime,
			util.FormatDuration(b.Duration()), b.Cost, p.StatusBadge(b.StatusText))
	}

	return table.Render()
}

func renderConcerns(p *Printer, concerns []entity.Concern) error {
	if len(concerns) == 0 {
		p.Info("No concerns.")

		return nil
	}

	table := p.NewTable("BOOKING", "RAISED", "STATUS", "CONCERN", "RESOLUTION")
	for _, c := range concerns {
		table.AddRow(c.BookingID, c.Timestamp, c.Status,
			util.Ellipsis(c.Concern, commentWidth), util.Ellipsis(c.Resolution, commentWidth))
	}

	return table.Render()
}

func renderFeedback(p *Printer, feedback *entity.BikeFeedback) error {
	if len(feedback.Feedback) == 0 {
		p.Info("No feedback for this bike yet.")

		return nil
	}

	if feedback.MostPopularSentiment != "" {
		p.Print("Most popular sentiment: %s (%s%%)", p.Bold(feedback.MostPopularSentiment), feedback.PopularShare())
	}

	table := p.NewTable("AUTHOR", "RATING", "SENTIMENT", "COMMENT")
	for _, f := range feedback.Feedback {
		table.AddRow(f.Author(), strconv.Itoa(f.Rating), f.Sentiment, util.Ellipsis(f.Comment, commentWidth))
	}

	return table.Render()
}

func renderDashboard(p *Printer, dashboard *entity.Dashboard) error {
	p.Header("Profile")
	p.Print("Name:  %s", dashboard.Profile.Name)
	p.Print("Email: %s", dashboard.Profile.Email)
	p.Print("Role:  %s", dashboard.Session.Role)

	if dashboard.StatsError != "" {
		p.Warning("%s", dashboard.StatsError)

		return nil
	}
	if dashboard.Stats == nil {
		return nil
	}

	stats := dashboard.Stats
	p.Header("Statistics")
	table := p.NewTable("METRIC", "VALUE")
	table.AddRow("Users", strconv.Itoa(stats.TotalUsers))
	table.AddRow("Bikes", strconv.Itoa(stats.TotalBikes))
	table.AddRow("Available bikes", strconv.Itoa(stats.AvailableBikesCount))
	table.AddRow("Bikes in use", strconv.Itoa(stats.InUseBikesCount))
	table.AddRow("Bookings", strconv.Itoa(stats.TotalBookings))
	table.AddRow("Active bookings", strconv.Itoa(stats.ActiveBookingsCount))
	table.AddRow("Feedback entries", strconv.Itoa(stats.TotalFeedbackEntries))
	for _, status := range sortedKeys(stats.BookingsByStatus) {
		table.AddRow("Bookings "+entity.StatusLabel(status), strconv.Itoa(stats.BookingsByStatus[status]))
	}

	return table.Render()
}

func renderChallenge(p *Printer, challenge entity.ChallengeSession) {
	switch challenge.Kind {
	case entity.ChallengeSecurityQuestion:
		p.Info("Security question: %s", challenge.Question)
	default:
		p.Info("Decode the Caesar cipher (shift %d): %s", challenge.Shift, challenge.Clue)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func describeSession(s entity.Session) string {
	if !s.IsAuthenticated {
		return "Not signed in."
	}

	name := s.DisplayName
	if name == "" {
		name = s.Email
	}

	return fmt.Sprintf("Signed in as %s (%s)", name, s.Role)
}
