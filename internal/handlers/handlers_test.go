package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/internal/backend"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
	"github.com/saeid-a/KickoffCoachWeb/internal/session"
	"github.com/saeid-a/KickoffCoachWeb/internal/views"
)

type testEnv struct {
	app     *fiber.App
	manager *session.Manager
	store   *session.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	engine, err := views.New(false)
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	store := session.NewMemoryStore()
	manager, err := session.NewManager(store, "secret", time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	app := fiber.New(fiber.Config{Views: engine})
	app.Use(middleware.Sessions(manager, false, zerolog.Nop()))
	return &testEnv{app: app, manager: manager, store: store}
}

// signIn stores a logged-in session and returns its cookie.
func (e *testEnv) signIn(t *testing.T, user models.User) (*http.Cookie, *session.Session) {
	t.Helper()
	ctx := context.Background()
	s := e.manager.Create()
	if err := e.manager.Login(ctx, s, "backend-token", user); err != nil {
		t.Fatalf("login: %v", err)
	}
	value, err := e.manager.Save(ctx, s)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: value}, s
}

func (e *testEnv) stored(t *testing.T, id string) *session.Session {
	t.Helper()
	s, err := e.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get session %s: %v", id, err)
	}
	return s
}

func (e *testEnv) do(t *testing.T, req *http.Request, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

var completeUser = models.User{Name: "Jamie Doe", Email: "jamie@example.com", PhoneNumber: "5551234567"}

type stubBookingService struct {
	today        string
	slots        []services.Slot
	slotsErr     error
	createResult services.Result[*models.BookingSummary]
	lastInput    services.BookingInput
	lastToken    string

	buckets       services.SessionBuckets
	bucketsErr    error
	booking       *models.BookingSummary
	updateResult  services.Result[struct{}]
	deleteResult  services.Result[struct{}]
	lastEdit      services.EditBookingInput
	lastDeletedID int64
}

func (s *stubBookingService) Today() string { return s.today }

func (s *stubBookingService) ResolveDate(date string) (string, error) {
	if date == "" {
		return s.today, nil
	}
	if _, err := time.Parse(services.DateLayout, date); err != nil {
		return "", services.ErrInvalidDate
	}
	if date < s.today {
		return "", services.ErrPastDate
	}
	return date, nil
}

func (s *stubBookingService) ListSlots(_ context.Context, token, _ string) ([]services.Slot, error) {
	s.lastToken = token
	return s.slots, s.slotsErr
}

func (s *stubBookingService) FindSlot(_ context.Context, _ string, _ string, sessionID int64) (*services.Slot, error) {
	for i := range s.slots {
		if s.slots[i].ID == sessionID && !s.slots[i].Booked {
			return &s.slots[i], nil
		}
	}
	return nil, services.ErrSlotUnavailable
}

func (s *stubBookingService) Quote(locationID int64, childCount int) int {
	return services.ComputePrice(models.FindLocationByID(locationID), childCount)
}

func (s *stubBookingService) CreateBooking(_ context.Context, token string, input services.BookingInput) services.Result[*models.BookingSummary] {
	s.lastToken = token
	s.lastInput = input
	return s.createResult
}

func (s *stubBookingService) ListMySessions(_ context.Context, _ string) (services.SessionBuckets, error) {
	return s.buckets, s.bucketsErr
}

func (s *stubBookingService) GetBooking(_ context.Context, _ string, _ int64) (*models.BookingSummary, error) {
	if s.booking == nil {
		return nil, services.ErrBookingNotFound
	}
	return s.booking, nil
}

func (s *stubBookingService) UpdateBooking(_ context.Context, _ string, input services.EditBookingInput) services.Result[struct{}] {
	s.lastEdit = input
	return s.updateResult
}

func (s *stubBookingService) DeleteBooking(_ context.Context, _ string, bookingID int64, _ string) services.Result[struct{}] {
	s.lastDeletedID = bookingID
	return s.deleteResult
}

type stubChildrenService struct {
	children  []models.Child
	listErr   error
	result    services.Result[struct{}]
	lastChild models.Child
	lastID    int64
	deletedID int64
}

func (s *stubChildrenService) List(_ context.Context, _ string) ([]models.Child, error) {
	return s.children, s.listErr
}

func (s *stubChildrenService) Add(_ context.Context, _ string, child models.Child) services.Result[struct{}] {
	s.lastChild = child
	return s.result
}

func (s *stubChildrenService) Update(_ context.Context, _ string, childID int64, child models.Child) services.Result[struct{}] {
	s.lastID = childID
	s.lastChild = child
	return s.result
}

func (s *stubChildrenService) Delete(_ context.Context, _ string, childID int64) services.Result[struct{}] {
	s.deletedID = childID
	return s.result
}

type stubReviewService struct {
	public          []models.ReviewWithParent
	mine            []models.Review
	result          services.Result[struct{}]
	lastRating      int
	lastID          int64
	lastDescription string
	deletedID       int64
}

func (s *stubReviewService) ListPublic(_ context.Context) ([]models.ReviewWithParent, error) {
	return s.public, nil
}

func (s *stubReviewService) ListMine(_ context.Context, _ string) ([]models.Review, error) {
	return s.mine, nil
}

func (s *stubReviewService) Create(_ context.Context, _ string, rating int, _ string) services.Result[struct{}] {
	s.lastRating = rating
	return s.result
}

func (s *stubReviewService) Update(_ context.Context, _ string, reviewID int64, rating int, description string) services.Result[struct{}] {
	s.lastID = reviewID
	s.lastRating = rating
	s.lastDescription = description
	return s.result
}

func (s *stubReviewService) Delete(_ context.Context, _ string, reviewID int64) services.Result[struct{}] {
	s.deletedID = reviewID
	return s.result
}

type stubAccountService struct {
	user          *models.User
	authErr       error
	phoneResult   services.Result[string]
	profileResult services.Result[string]
	lastProfile   models.CompleteProfileInput
	loggedOut     bool
}

func (s *stubAccountService) LoginURL(redirectURI string) string {
	return "https://api.example.com/login?redirect_uri=" + url.QueryEscape(redirectURI)
}

func (s *stubAccountService) Authenticate(_ context.Context, _ string) (*models.User, error) {
	return s.user, s.authErr
}

func (s *stubAccountService) Logout(_ context.Context, _ string) error {
	s.loggedOut = true
	return nil
}

func (s *stubAccountService) UpdatePhone(_ context.Context, _ string, _ string) services.Result[string] {
	return s.phoneResult
}

func (s *stubAccountService) CompleteProfile(_ context.Context, _ string, input models.CompleteProfileInput) services.Result[string] {
	s.lastProfile = input
	return s.profileResult
}

var testSlots = []services.Slot{
	{Session: models.Session{ID: 7, Date: "2030-06-16", StartTime: "09:05", EndTime: "10:00"}, StartDisplay: "9:05 AM", EndDisplay: "10:00 AM"},
	{Session: models.Session{ID: 8, Date: "2030-06-16", StartTime: "14:00", EndTime: "15:00", Booked: true}, StartDisplay: "2:00 PM", EndDisplay: "3:00 PM"},
}

func mountBooking(env *testEnv, bookings *stubBookingService, children *stubChildrenService) {
	handler := NewBookingHandler(bookings, children)
	env.app.Get("/", handler.Index)
	env.app.Get("/book", handler.Index)
	env.app.Get("/book/:date", handler.Calendar)
	gate := []fiber.Handler{middleware.RequireLogin(), middleware.RequireCompleteProfile()}
	env.app.Get("/book/:date/:sessionID", append(gate, handler.FinishBookingForm)...)
	env.app.Post("/book/:date/:sessionID", append(gate, handler.CreateBooking)...)
	env.app.Get("/api/quote", handler.Quote)
}

func TestIndexRedirectsToToday(t *testing.T) {
	env := newTestEnv(t)
	mountBooking(env, &stubBookingService{today: "2030-06-15"}, &stubChildrenService{})

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assertRedirect(t, resp, "/book/2030-06-15")

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/book?date=2030-07-01", nil), nil)
	assertRedirect(t, resp, "/book/2030-07-01")
}

func TestCalendarRendersFormattedSlots(t *testing.T) {
	env := newTestEnv(t)
	mountBooking(env, &stubBookingService{today: "2030-06-15", slots: testSlots}, &stubChildrenService{})

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/book/2030-06-16", nil), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "9:05 AM") || !strings.Contains(body, "/book/2030-06-16/7") {
		t.Fatalf("expected open slot in body: %s", body)
	}
	if strings.Contains(body, "/book/2030-06-16/8") {
		t.Fatalf("booked slot must not be bookable")
	}
}

func TestCalendarRejectsPastDate(t *testing.T) {
	env := newTestEnv(t)
	mountBooking(env, &stubBookingService{today: "2030-06-15"}, &stubChildrenService{})

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/book/2030-06-01", nil), nil)
	assertRedirect(t, resp, "/book/2030-06-15")
}

func TestBookingGateForAnonymousAndIncompleteProfiles(t *testing.T) {
	env := newTestEnv(t)
	mountBooking(env, &stubBookingService{today: "2030-06-15", slots: testSlots}, &stubChildrenService{})

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/book/2030-06-16/7", nil), nil)
	assertRedirect(t, resp, middleware.LoginPath)

	cookie, s := env.signIn(t, models.User{Name: "Jamie Doe"})
	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/book/2030-06-16/7", nil), cookie)
	assertRedirect(t, resp, middleware.CompleteProfilePath)
	if got := env.stored(t, s.ID).ReturnPath; got != "/book/2030-06-16/7" {
		t.Fatalf("expected return path to be remembered, got %q", got)
	}
}

func TestFinishBookingFormListsChildren(t *testing.T) {
	env := newTestEnv(t)
	childID := int64(4)
	mountBooking(env,
		&stubBookingService{today: "2030-06-15", slots: testSlots},
		&stubChildrenService{children: []models.Child{{ID: &childID, FirstName: "Sam", LastName: "Doe", BirthYear: 2016, Experience: models.ExperienceNovice}}},
	)

	cookie, _ := env.signIn(t, completeUser)
	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/book/2030-06-16/7", nil), cookie)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"Sam Doe", "Novice", "Hannover Estates Park", "Total: $<span id=\"price\">40</span>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body: %s", want, body)
		}
	}
}

func TestCreateBookingSuccessRedirectsWithFlash(t *testing.T) {
	env := newTestEnv(t)
	bookings := &stubBookingService{
		today:        "2030-06-15",
		slots:        testSlots,
		createResult: services.Succeeded(&models.BookingSummary{ID: 1}, "Booking successful!"),
	}
	mountBooking(env, bookings, &stubChildrenService{})

	cookie, s := env.signIn(t, completeUser)
	form := url.Values{"location_id": {"2"}, "child_ids": {"4", "5"}, "description": {"first time"}}
	resp, _ := env.do(t, postForm("/book/2030-06-16/7", form), cookie)
	assertRedirect(t, resp, "/book/2030-06-16")

	if bookings.lastToken != "backend-token" {
		t.Fatalf("expected backend credential, got %q", bookings.lastToken)
	}
	if bookings.lastInput.SessionID != 7 || bookings.lastInput.LocationID != 2 || len(bookings.lastInput.ChildIDs) != 2 {
		t.Fatalf("unexpected input %+v", bookings.lastInput)
	}
	flashes := env.stored(t, s.ID).Flashes
	if len(flashes) != 1 || flashes[0].Variant != session.FlashSuccess {
		t.Fatalf("expected success flash, got %+v", flashes)
	}
}

func TestCreateBookingValidationRerendersForm(t *testing.T) {
	env := newTestEnv(t)
	bookings := &stubBookingService{
		today:        "2030-06-15",
		slots:        testSlots,
		createResult: services.Failed[*models.BookingSummary](models.ErrNoChildrenSelected, "Booking failed."),
	}
	mountBooking(env, bookings, &stubChildrenService{})

	cookie, _ := env.signIn(t, completeUser)
	resp, body := env.do(t, postForm("/book/2030-06-16/7", url.Values{"location_id": {"1"}}), cookie)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Please select at least one child.") {
		t.Fatalf("expected validation message: %s", body)
	}
}

func TestCreateBookingUnauthorizedLogsOut(t *testing.T) {
	env := newTestEnv(t)
	bookings := &stubBookingService{
		today:        "2030-06-15",
		slots:        testSlots,
		createResult: services.Failed[*models.BookingSummary](&backend.APIError{Status: 401}, "Booking failed."),
	}
	mountBooking(env, bookings, &stubChildrenService{})

	cookie, s := env.signIn(t, completeUser)
	resp, _ := env.do(t, postForm("/book/2030-06-16/7", url.Values{"location_id": {"1"}, "child_ids": {"1"}}), cookie)
	assertRedirect(t, resp, middleware.LoginPath)
	if env.stored(t, s.ID).LoggedIn() {
		t.Fatalf("expected session to be logged out")
	}
}

func TestQuoteReturnsPrice(t *testing.T) {
	env := newTestEnv(t)
	mountBooking(env, &stubBookingService{today: "2030-06-15"}, &stubChildrenService{})

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/quote?location_id=3&children=3", nil), nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if strings.TrimSpace(body) != `{"price":70}` {
		t.Fatalf("unexpected body %s", body)
	}

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/quote?children=-1", nil), nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	for _, count := range []string{"51", "1844674407370955161"} {
		resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/quote?location_id=3&children="+count, nil), nil)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("expected 400 for children=%s, got %d", count, resp.StatusCode)
		}
	}
}
