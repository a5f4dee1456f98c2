// Package view turns a roster snapshot into renderable cards and defines
// the Surface the client draws on. The package knows nothing about HTTP or
// about where the surface lives (terminal, test double); it only builds and
// replaces visual state.
package view

import (
	"fmt"

	"github.com/mergington-hs/activities-client/internal/model"
)

// UnavailableMessage is the static text shown in the list area when the
// roster cannot be fetched.
const UnavailableMessage = "Failed to load activities. Please try again later."

// PlaceholderText is the single row shown for an activity with no
// participants.
const PlaceholderText = "No participants yet"

// BannerKind selects success or error styling for the feedback banner.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Row is one line in an activity's participant list. Non-placeholder rows
// carry a withdraw control tagged with the participant's email and the
// owning activity's name, so a handler can recover both without re-querying
// the roster. OnWithdraw is nil until a bind pass attaches it.
type Row struct {
	Activity    string
	Email       string
	Placeholder bool
	OnWithdraw  func()
}

// Card is one rendered activity entry.
type Card struct {
	Name        string
	Description string
	Schedule    string
	SpotsLeft   int
	Rows        []*Row
}

// Surface is the visual area the client renders into: a list container, a
// selection control of activity names, a signup form, and a feedback
// banner. Replace methods clear before repopulating, so stale entries and
// duplicate options cannot accumulate across cycles.
type Surface interface {
	// ReplaceList discards the current list contents and shows cards.
	ReplaceList(cards []*Card)
	// ReplaceOptions discards the current options and shows one per name.
	ReplaceOptions(names []string)
	// ShowUnavailable replaces the list area with a static failure message.
	ShowUnavailable(message string)
	// RemoveParticipantRow removes a single row, identified by its tags.
	// Removing a row that is no longer present is a no-op.
	RemoveParticipantRow(activity, email string)
	// ClearSignupForm resets the signup form's fields.
	ClearSignupForm()
	// SetBanner shows the feedback banner with the given text and styling.
	SetBanner(text string, kind BannerKind)
	// HideBanner hides the feedback banner.
	HideBanner()
}

// Renderer rebuilds the surface from a roster snapshot. Every render is a
// full rebuild — no diffing against the previous snapshot. Roster sizes are
// small and refreshes infrequent, so correctness wins over incremental
// updates.
type Renderer struct {
	surface Surface
}

// NewRenderer constructs a Renderer drawing on surface.
func NewRenderer(surface Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Render replaces the list and the selection options from roster, in the
// roster's own order. It returns the built cards so a bind pass can attach
// handlers to the withdraw controls.
func (r *Renderer) Render(roster *model.Roster) []*Card {
	names := roster.Names()
	cards := make([]*Card, 0, len(names))

	for _, name := range names {
		activity, ok := roster.Get(name)
		if !ok {
			continue
		}
		cards = append(cards, buildCard(activity))
	}

	r.surface.ReplaceList(cards)
	r.surface.ReplaceOptions(names)
	return cards
}

// RenderUnavailable replaces the list area with the static failure message
// and touches nothing else — no partial render.
func (r *Renderer) RenderUnavailable() {
	r.surface.ShowUnavailable(UnavailableMessage)
}

func buildCard(a *model.Activity) *Card {
	card := &Card{
		Name:        a.Name,
		Description: a.Description,
		Schedule:    a.Schedule,
		SpotsLeft:   a.Remaining(),
	}

	if len(a.Participants) == 0 {
		card.Rows = []*Row{{Activity: a.Name, Placeholder: true}}
		return card
	}

	card.Rows = make([]*Row, 0, len(a.Participants))
	for _, email := range a.Participants {
		card.Rows = append(card.Rows, &Row{Activity: a.Name, Email: email})
	}
	return card
}

// Label returns the display text for a row.
func (row *Row) Label() string {
	if row.Placeholder {
		return PlaceholderText
	}
	return row.Email
}

// Headline returns the card's one-line summary.
func (c *Card) Headline() string {
	return fmt.Sprintf("%s — %s (%s) — %d spots left", c.Name, c.Description, c.Schedule, c.SpotsLeft)
}
