// Package ui models the client application: which view is showing, the
// registration form and its validation, and the dashboard's data.
//
// App is an explicit state machine over three pages. All transitions go
// through its methods; the only asynchronous one, the delayed move from
// the confirmation view to the dashboard, runs on an injected Scheduler
// so it can be cancelled and driven deterministically in tests.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/orgconnect/internal/types"
	"github.com/aanand-mishra/orgconnect/internal/validation"
)

// User-facing alert texts.
const (
	MsgSubmitFailed = "There was an error submitting your application. Please try again."
	MsgLoadFailed   = "Could not load applicant data."
)

// DefaultRedirectDelay is how long the confirmation view stays up.
const DefaultRedirectDelay = 3 * time.Second

var (
	// ErrInvalidForm is returned by Submit when local validation fails.
	// The per-field messages are in View().FieldErrors.
	ErrInvalidForm = errors.New("ui: form has errors")

	// ErrSubmitInProgress is returned by Submit while an earlier submit
	// from the same App is still waiting for the API.
	ErrSubmitInProgress = errors.New("ui: submit already in progress")

	// ErrAlreadySubmitted is returned by Submit while the confirmation is
	// showing. The form comes back only by navigating to it again.
	ErrAlreadySubmitted = errors.New("ui: application already submitted")
)

// API is the part of the applicants API the UI uses.
// *client.Client satisfies it.
type API interface {
	ListApplicants(ctx context.Context) ([]types.Applicant, error)
	CreateApplicant(ctx context.Context, input types.ApplicantInput) (types.Applicant, error)
}

// Options configure an App. Zero values pick the defaults.
type Options struct {
	RedirectDelay time.Duration
	CachePolicy   CachePolicy
	Scheduler     Scheduler
	Validator     *validator.Validate
}

// App is one user's client state.
type App struct {
	api       API
	delay     time.Duration
	policy    CachePolicy
	scheduler Scheduler
	validate  *validator.Validate

	mu sync.Mutex

	page Page
	// visit increments on every navigation. Work started during one
	// visit (a submit, a pending redirect) is dropped if it completes
	// during another.
	visit uint64

	form        Form
	fieldErrors FieldErrors
	submitting  bool
	submitted   bool
	pending     Timer

	applicants []types.Applicant
	loaded     bool
	loadFailed bool
	// fetched is set once the current visit has asked for the list.
	fetched bool

	alert string
}

// NewApp returns an App on the home page.
func NewApp(api API, opts Options) *App {
	if opts.RedirectDelay == 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.CachePolicy == "" {
		opts.CachePolicy = CacheOnce
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}

	return &App{
		api:         api,
		delay:       opts.RedirectDelay,
		policy:      opts.CachePolicy,
		scheduler:   opts.Scheduler,
		validate:    opts.Validator,
		page:        PageHome,
		form:        NewForm(),
		fieldErrors: FieldErrors{},
		applicants:  make([]types.Applicant, 0),
	}
}

// Navigate switches to p. Any pending redirect is cancelled and the
// registration form starts fresh when entered.
func (a *App) Navigate(p Page) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.navigateLocked(p)
}

func (a *App) navigateLocked(p Page) {
	a.cancelPendingLocked()
	a.visit++
	a.page = p
	a.loadFailed = false
	a.fetched = false

	if p == PageRegister {
		a.form = NewForm()
		a.fieldErrors = FieldErrors{}
		a.submitted = false
	}
}

func (a *App) cancelPendingLocked() {
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
}

// Page returns the current page.
func (a *App) Page() Page {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.page
}

// Submit validates f and, if it passes, creates the applicant through
// the API. On success the new record joins the local list, the form
// switches to its confirmation state and the dashboard is scheduled to
// appear after the redirect delay.
//
// A failed API call leaves the form filled in and raises an alert.
func (a *App) Submit(ctx context.Context, f Form) error {
	a.mu.Lock()

	if a.page != PageRegister {
		a.navigateLocked(PageRegister)
	}
	if a.submitting {
		a.mu.Unlock()
		return ErrSubmitInProgress
	}
	if a.submitted {
		a.mu.Unlock()
		return ErrAlreadySubmitted
	}

	a.form = f
	a.fieldErrors = f.Validate(a.validate)
	if len(a.fieldErrors) > 0 {
		a.mu.Unlock()
		return ErrInvalidForm
	}

	a.submitting = true
	visit := a.visit
	a.mu.Unlock()

	created, err := a.api.CreateApplicant(ctx, f.Input())

	a.mu.Lock()
	defer a.mu.Unlock()

	a.submitting = false

	if err != nil {
		slog.Error("failed to submit application", slog.String("error", err.Error()))
		if a.visit == visit {
			a.alert = MsgSubmitFailed
		}
		return err
	}

	a.applicants = append(a.applicants, created)

	if a.visit != visit {
		// The user left the form while the request was in flight.
		return nil
	}

	a.submitted = true
	a.cancelPendingLocked()
	a.pending = a.scheduler.AfterFunc(a.delay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		if a.visit != visit {
			return
		}
		a.pending = nil
		a.navigateLocked(PageAdmin)
	})

	return nil
}

// LoadDashboard fetches the applicant list for a dashboard visit. It asks
// the API at most once per visit, and under CacheOnce not at all once a
// list has been loaded.
//
// A failed fetch is not retried; the dashboard shows its error view
// until the next visit tries again.
func (a *App) LoadDashboard(ctx context.Context) error {
	a.mu.Lock()
	if a.fetched || (a.policy == CacheOnce && a.loaded) {
		a.mu.Unlock()
		return nil
	}
	a.fetched = true
	visit := a.visit
	a.mu.Unlock()

	list, err := a.api.ListApplicants(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		slog.Error("failed to fetch applicants", slog.String("error", err.Error()))
		if a.visit == visit {
			a.loadFailed = true
			a.alert = MsgLoadFailed
		}
		return err
	}

	a.applicants = list
	a.loaded = true
	a.loadFailed = false
	return nil
}

// DismissAlert clears the current alert, if any.
func (a *App) DismissAlert() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.alert = ""
}

// Close cancels any pending redirect. The App must not be used after.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelPendingLocked()
	a.visit++
}

// View is a read-only snapshot of App for rendering.
type View struct {
	Page  Page
	Pages []Page

	Form          Form
	Roles         []types.Role
	FieldErrors   FieldErrors
	Submitting    bool
	Submitted     bool
	RedirectDelay time.Duration

	LoadFailed bool
	Stats      Stats
	Rows       []types.Applicant

	Alert string
	Year  int
}

// View snapshots the current state. Rows are sorted newest first.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	fieldErrors := make(FieldErrors, len(a.fieldErrors))
	for k, v := range a.fieldErrors {
		fieldErrors[k] = v
	}

	return View{
		Page:          a.page,
		Pages:         Pages,
		Form:          a.form,
		Roles:         types.Roles,
		FieldErrors:   fieldErrors,
		Submitting:    a.submitting,
		Submitted:     a.submitted,
		RedirectDelay: a.delay,
		LoadFailed:    a.loadFailed,
		Stats:         ComputeStats(a.applicants),
		Rows:          SortByRecency(a.applicants),
		Alert:         a.alert,
		Year:          time.Now().Year(),
	}
}
