package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	mockusecase "scooter/internal/mocks/usecase"
	"scooter/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeSession is a session tracker whose state the relay mocks can change.
type fakeSession struct {
	mu      sync.Mutex
	session entity.Session
}

func (f *fakeSession) set(s entity.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = s
}

func (f *fakeSession) Resolve(context.Context) entity.Session { return f.Current() }

func (f *fakeSession) HandleAuthEvent(context.Context, entity.AuthEvent) {}

func (f *fakeSession) SignOut(context.Context) error {
	f.set(entity.GuestSession())

	return nil
}

func (f *fakeSession) Verify(context.Context) entity.Session { return f.Current() }

func (f *fakeSession) Current() entity.Session {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.session
}

type cliWorkspace struct {
	ws           *usecase.Workspace
	session      *fakeSession
	relay        *mockusecase.MockChallengeRelayUsecase
	registration *mockusecase.MockRegistrationUsecase
	catalog      *mockusecase.MockCatalogUsecase
	bookings     *mockusecase.MockBookingUsecase
	fleet        *mockusecase.MockFleetUsecase
	concerns     *mockusecase.MockConcernUsecase
	feedback     *mockusecase.MockFeedbackUsecase
	dashboard    *mockusecase.MockDashboardUsecase
}

func newCLIWorkspace(t *testing.T, session entity.Session) *cliWorkspace {
	cw := &cliWorkspace{
		session:      &fakeSession{session: session},
		relay:        mockusecase.NewMockChallengeRelayUsecase(t),
		registration: mockusecase.NewMockRegistrationUsecase(t),
		catalog:      mockusecase.NewMockCatalogUsecase(t),
		bookings:     mockusecase.NewMockBookingUsecase(t),
		fleet:        mockusecase.NewMockFleetUsecase(t),
		concerns:     mockusecase.NewMockConcernUsecase(t),
		feedback:     mockusecase.NewMockFeedbackUsecase(t),
		dashboard:    mockusecase.NewMockDashboardUsecase(t),
	}
	cw.ws = &usecase.Workspace{
		ID:           "cli-test",
		Session:      cw.session,
		Relay:        cw.relay,
		Registration: cw.registration,
		Catalog:      cw.catalog,
		Bookings:     cw.bookings,
		Fleet:        cw.fleet,
		Concerns:     cw.concerns,
		Feedback:     cw.feedback,
		Dashboard:    cw.dashboard,
	}

	return cw
}

var customer = entity.Session{
	IsAuthenticated: true,
	Role:            entity.RoleCustomer,
	UserID:          "u-1",
	Email:           "ana@example.com",
	DisplayName:     "Ana",
}

// runCLI executes scooterctl against cw and returns stdout and stderr.
func runCLI(t *testing.T, cw *cliWorkspace, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts := Options{
		Open: func(_ context.Context, profile string) (*usecase.Workspace, func(), error) {
			assert.Equal(t, defaultProfile, profile)

			return cw.ws, func() {}, nil
		},
		In:      strings.NewReader(stdin),
		Out:     &out,
		Err:     &errOut,
		Version: "test",
	}

	code := Execute(context.Background(), opts, append([]string{"--color", "never"}, args...))

	return code, out.String(), errOut.String()
}

func TestBikesCommand(t *testing.T) {
	cw := newCLIWorkspace(t, entity.GuestSession())
	cw.catalog.On("Browse", mock.Anything, entity.BikeFilter{Location: "Halifax"}).Return(&entity.Catalog{
		Bikes: []entity.Bike{
			{BikeID: "B-1", Model: "Gyroor", Location: "Halifax", RatePerHour: 4.5, Status: "available"},
		},
		Locations: []string{"Dartmouth", "Halifax"},
		Models:    []string{"Gyroor"},
	}, nil)

	code, out, errOut := runCLI(t, cw, "", "bikes", "--location", "Halifax")

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "B-1")
	assert.Contains(t, out, "4.50")
	assert.Contains(t, out, "AVAILABLE")
	assert.Contains(t, out, "Locations: [Dartmouth Halifax]")
}

func TestBikesCommand_Empty(t *testing.T) {
	cw := newCLIWorkspace(t, entity.GuestSession())
	cw.catalog.On("Browse", mock.Anything, entity.BikeFilter{}).Return(&entity.Catalog{}, nil)

	code, out, _ := runCLI(t, cw, "", "bikes")

	require.Equal(t, 0, code)
	assert.Contains(t, out, "No bikes match the filter.")
}

func TestFeedbackCommand_Failure(t *testing.T) {
	cw := newCLIWorkspace(t, entity.GuestSession())
	cw.feedback.On("ForBike", mock.Anything, "B-9").Return(nil, domainerrors.ErrFeedbackLoadFailed)

	code, _, errOut := runCLI(t, cw, "", "feedback", "B-9")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "[ERROR] "+domainerrors.ErrFeedbackLoadFailed.Message())
}

func TestRegisterCommand(t *testing.T) {
	cw := newCLIWorkspace(t, entity.GuestSession())

	basics := entity.SignupDraft{
		Email:       "ana@example.com",
		Name:        "Ana",
		Password:    "Secret123!",
		AccountType: entity.AccountTypeCustomer,
	}
	advanced := basics
	advanced.Step = entity.SignupStepQuestions

	cw.registration.On("AdvanceToQuestions", basics).Return(advanced, nil)
	cw.registration.On("Submit", mock.Anything, mock.MatchedBy(func(d entity.SignupDraft) bool {
		return d.Step == entity.SignupStepQuestions &&
			d.Questions[0] == entity.SecurityAnswer{Question: "What is your favourite food?", Answer: "Pizza"} &&
			d.Questions[2].Answer == "Blue"
	})).Return(&entity.SignupResult{CodeDelivery: "a***@example.com"}, nil)

	code, out, errOut := runCLI(t, cw, "Secret123!\n", "register",
		"--email", "ana@example.com", "--name", "Ana",
		"--question", "What is your favourite food?=Pizza",
		"--question", "What is your favourite place?=Halifax",
		"--question", "What is your favourite color?=Blue",
	)

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "[OK] "+usecase.MsgRegistered)
	assert.Contains(t, out, "Code sent to a***@example.com")
}

func TestRegisterCommand_TooManyQuestions(t *testing.T) {
	cw := newCLIWorkspace(t, entity.GuestSession())

	code, _, errOut := runCLI(t, cw, "", "register", "--password", "x",
		"--question", "a=1", "--question", "b=2", "--question", "c=3", "--question", "d=4")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Please answer exactly three security questions.")
}

func TestVerifyCommand(t *testing.T) {
	cw := newCLIWorkspace(t, entity.GuestSession())
	cw.registration.On("Confirm", mock.Anything, "ana@example.com", "123456").Return(nil)

	code, out, _ := runCLI(t, cw, "", "verify", "--email", "ana@example.com", "--code", "123456")

	require.Equal(t, 0, code)
	assert.Contains(t, out, usecase.MsgVerified)
}

func TestInvalidColorMode(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), Options{Out: &out, Err: &errOut, In: strings.NewReader("")},
		[]string{"--color", "sometimes", "bikes"})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), `invalid color mode "sometimes"`)
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "always", want: ColorAlways},
		{in: "never", want: ColorNever},
		{in: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuestions(t *testing.T) {
	answers, err := parseQuestions([]string{" Q1 = A1 ", "Q2=", "Q3"})
	require.NoError(t, err)

	assert.Equal(t, entity.SecurityAnswer{Question: "Q1", Answer: "A1"}, answers[0])
	assert.Equal(t, entity.SecurityAnswer{Question: "Q2"}, answers[1])
	assert.Equal(t, entity.SecurityAnswer{Question: "Q3"}, answers[2])

	_, err = parseQuestions([]string{"a=1", "b=2", "c=3", "d=4"})
	assert.Error(t, err)
}

func TestLoadZone(t *testing.T) {
	loc, err := loadZone("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = loadZone("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = loadZone("Mars/Olympus")
	assert.Error(t, err)
}

func TestDescribeSession(t *testing.T) {
	assert.Equal(t, "Not signed in.", describeSession(entity.GuestSession()))
	assert.Equal(t, "Signed in as Ana (customer)", describeSession(customer))
	assert.Equal(t, "Signed in as op@example.com (admin)",
		describeSession(entity.Session{IsAuthenticated: true, Role: entity.RoleAdmin, Email: "op@example.com"}))
}
