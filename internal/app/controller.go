// Package app coordinates the refresh cycle: fetch the roster, render it,
// bind the withdraw controls, and route enroll/withdraw requests and their
// feedback. It depends only on interfaces for the network and the
// interactive surface, so the whole loop runs under test with doubles.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mergington-hs/activities-client/internal/api"
	"github.com/mergington-hs/activities-client/internal/model"
	"github.com/mergington-hs/activities-client/internal/observability"
	"github.com/mergington-hs/activities-client/internal/view"
)

// Generic fallback texts when a mutation fails without a service detail.
const (
	enrollFailureText   = "Failed to sign up. Please try again."
	withdrawFailureText = "Failed to unregister. Please try again."
)

// RosterFetcher retrieves the current roster snapshot.
type RosterFetcher interface {
	FetchRoster(ctx context.Context) (*model.Roster, error)
}

// ActionGateway issues the two mutating calls.
type ActionGateway interface {
	Enroll(ctx context.Context, activity, email string) (string, error)
	Withdraw(ctx context.Context, activity, email string) (string, error)
}

// UserConfirmation asks the user to confirm a destructive action. A test
// double can auto-confirm or auto-decline.
type UserConfirmation interface {
	Confirm(prompt string) bool
}

// NotificationSink shows an immediate, blocking notice.
type NotificationSink interface {
	Notify(message string)
}

// State labels the controller's position in its cycle, for logs and
// introspection only; transitions carry no behavior of their own.
type State string

const (
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
	StateSubmitting State = "submitting"
)

// Controller owns the refresh cycle. On startup and after every successful
// mutation it runs fetch → render → bind. Render passes are serialized by a
// mutex; overlapping fetches are allowed and the last one to complete wins
// the render, whichever was issued first.
type Controller struct {
	fetcher  RosterFetcher
	gateway  ActionGateway
	surface  view.Surface
	renderer *view.Renderer
	banner   *FeedbackBanner
	confirm  UserConfirmation
	notify   NotificationSink
	logger   *log.Logger

	mu    sync.Mutex
	state State
}

// Deps bundles the controller's collaborators.
type Deps struct {
	Fetcher RosterFetcher
	Gateway ActionGateway
	Surface view.Surface
	Banner  *FeedbackBanner
	Confirm UserConfirmation
	Notify  NotificationSink
	Logger  *log.Logger
}

// NewController constructs a Controller in the Idle state. A nil logger
// falls back to log.Default().
func NewController(deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Controller{
		fetcher:  deps.Fetcher,
		gateway:  deps.Gateway,
		surface:  deps.Surface,
		renderer: view.NewRenderer(deps.Surface),
		banner:   deps.Banner,
		confirm:  deps.Confirm,
		notify:   deps.Notify,
		logger:   deps.Logger,
		state:    StateIdle,
	}
}

// State reports the current cycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Start runs the initial refresh cycle.
func (c *Controller) Start(ctx context.Context) {
	c.Refresh(ctx)
}

// Refresh runs one fetch → render → bind pass. A failed fetch renders the
// static unavailable message instead; no retry, no partial render. Multiple
// Refresh calls may overlap on the fetch; the render section is serialized
// and fully replaces the view, so the last completed response wins.
func (c *Controller) Refresh(ctx context.Context) {
	cycle := uuid.NewString()[:8]
	c.setState(StateRefreshing)
	defer c.setState(StateIdle)

	roster, err := c.fetcher.FetchRoster(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Printf("cycle %s: %v", cycle, err)
		c.renderer.RenderUnavailable()
		return
	}

	cards := c.renderer.Render(roster)
	BindWithdrawControls(cards, func(activity, email string) {
		c.requestWithdraw(ctx, activity, email)
	})

	observability.RecordRefresh(time.Now())
	c.logger.Printf("cycle %s: rendered %d activities", cycle, roster.Len())
}

// Enroll signs email up for activity. On success the signup form is
// cleared, the service's confirmation shows on the banner, and a full
// refresh follows. On failure the banner shows the service's detail when
// one was supplied, or a generic message otherwise; no refresh happens.
func (c *Controller) Enroll(ctx context.Context, activity, email string) {
	c.setState(StateSubmitting)

	msg, err := c.gateway.Enroll(ctx, activity, email)
	if err != nil {
		c.setState(StateIdle)
		c.banner.Show(failureText(err, enrollFailureText), view.BannerError)
		return
	}

	if msg == "" {
		msg = fmt.Sprintf("Signed up %s for %s", email, activity)
	}
	c.surface.ClearSignupForm()
	c.banner.Show(msg, view.BannerSuccess)
	c.Refresh(ctx)
}

// requestWithdraw is the handler the bind pass attaches to every withdraw
// control. Declining the confirmation issues no request and changes
// nothing.
//
// A confirmed withdraw removes the row from the surface immediately for
// responsiveness and then refreshes the whole roster. The refresh is
// authoritative: if the service has not yet committed the removal the row
// may briefly reappear, and the next cycle corrects it. That eventual
// consistency window is intended, not a bug.
func (c *Controller) requestWithdraw(ctx context.Context, activity, email string) {
	if !c.confirm.Confirm(fmt.Sprintf("Remove %s from %s?", email, activity)) {
		return
	}

	c.setState(StateSubmitting)

	if _, err := c.gateway.Withdraw(ctx, activity, email); err != nil {
		c.setState(StateIdle)
		c.notify.Notify(failureText(err, withdrawFailureText))
		return
	}

	c.surface.RemoveParticipantRow(activity, email)
	c.Refresh(ctx)
}

// failureText surfaces the service's detail when the failure is an
// application error that carried one, and falls back to generic otherwise
// (transport and format failures have no detail worth showing).
func failureText(err error, generic string) string {
	var st *api.StatusError
	if errors.As(err, &st) && st.Detail != "" {
		return st.Detail
	}
	return generic
}
