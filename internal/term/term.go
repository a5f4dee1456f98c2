// Package term implements the interactive surface on a line-oriented
// terminal: it draws the activity list, keeps a numbered selection of
// activity names, prompts for withdraw confirmations, and prints notices
// and the feedback banner.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mergington-hs/activities-client/internal/view"
)

// Controls is the subset of the controller the command loop drives.
type Controls interface {
	Refresh(ctx context.Context)
	Enroll(ctx context.Context, activity, email string)
}

// Terminal holds the visual state and implements view.Surface,
// app.UserConfirmation, and app.NotificationSink. All mutations go through
// one mutex so a redraw always prints a complete snapshot.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer

	mu          sync.Mutex
	cards       []*view.Card
	options     []string
	unavailable string
	banner      string
	bannerKind  view.BannerKind
	formEmail   string
}

// New constructs a Terminal reading commands from in and drawing to out.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// ── view.Surface ─────────────────────────────────────────────────────────

// ReplaceList swaps in a fresh set of cards and redraws.
func (t *Terminal) ReplaceList(cards []*view.Card) {
	t.mu.Lock()
	t.cards = cards
	t.unavailable = ""
	t.mu.Unlock()
	t.redraw()
}

// ReplaceOptions swaps the numbered activity selection wholesale.
func (t *Terminal) ReplaceOptions(names []string) {
	t.mu.Lock()
	t.options = names
	t.mu.Unlock()
}

// ShowUnavailable replaces the list area with a static failure message.
func (t *Terminal) ShowUnavailable(message string) {
	t.mu.Lock()
	t.cards = nil
	t.unavailable = message
	t.mu.Unlock()
	t.redraw()
}

// RemoveParticipantRow drops the row tagged (activity, email). When the
// last participant of a card goes, the placeholder row takes its place.
// Unknown tags are a no-op: the row may already be gone after a refresh.
func (t *Terminal) RemoveParticipantRow(activity, email string) {
	t.mu.Lock()
	for _, card := range t.cards {
		if card.Name != activity {
			continue
		}
		kept := card.Rows[:0]
		for _, row := range card.Rows {
			if !row.Placeholder && row.Email == email {
				continue
			}
			kept = append(kept, row)
		}
		if len(kept) == 0 {
			kept = append(kept, &view.Row{Activity: card.Name, Placeholder: true})
		}
		card.Rows = kept
	}
	t.mu.Unlock()
	t.redraw()
}

// ClearSignupForm resets the remembered signup email.
func (t *Terminal) ClearSignupForm() {
	t.mu.Lock()
	t.formEmail = ""
	t.mu.Unlock()
}

// SetBanner prints and remembers the feedback message.
func (t *Terminal) SetBanner(text string, kind view.BannerKind) {
	t.mu.Lock()
	t.banner = text
	t.bannerKind = kind
	t.mu.Unlock()
	if kind == view.BannerError {
		fmt.Fprintf(t.out, "\n[error] %s\n", text)
		return
	}
	fmt.Fprintf(t.out, "\n[ok] %s\n", text)
}

// HideBanner clears the feedback message.
func (t *Terminal) HideBanner() {
	t.mu.Lock()
	t.banner = ""
	t.mu.Unlock()
}

// ── app.UserConfirmation / app.NotificationSink ──────────────────────────

// Confirm prompts with a y/N question and reads one line. Anything but an
// explicit yes declines.
func (t *Terminal) Confirm(prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	if !t.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(t.in.Text()))
	return answer == "y" || answer == "yes"
}

// Notify prints a blocking notice and waits for acknowledgement.
func (t *Terminal) Notify(message string) {
	fmt.Fprintf(t.out, "\n!! %s\n(press Enter to continue) ", message)
	t.in.Scan()
}

// ── drawing ──────────────────────────────────────────────────────────────

func (t *Terminal) redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.out)
	if t.unavailable != "" {
		fmt.Fprintln(t.out, t.unavailable)
		return
	}

	fmt.Fprintln(t.out, "Activities:")
	for i, card := range t.cards {
		fmt.Fprintf(t.out, " [%d] %s\n", i+1, card.Headline())
		for j, row := range card.Rows {
			if row.Placeholder {
				fmt.Fprintf(t.out, "      - %s\n", row.Label())
				continue
			}
			fmt.Fprintf(t.out, "      %d. %s  [withdraw]\n", j+1, row.Label())
		}
	}
}

// ── command loop ─────────────────────────────────────────────────────────

const helpText = `commands:
  list                      refresh and show the roster
  signup <n> <email>        sign email up for activity number n
  withdraw <n> <m>          withdraw participant m of activity n
  help                      show this help
  quit                      exit`

// Run reads commands until EOF, "quit", or context cancellation. Commands
// execute sequentially on this goroutine; the refresh and mutation calls
// they trigger suspend the loop, never the surface.
func (t *Terminal) Run(ctx context.Context, ctrl Controls) {
	fmt.Fprintln(t.out, helpText)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(t.out, "> ")
		if !t.in.Scan() {
			return
		}

		fields := strings.Fields(t.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			fmt.Fprintln(t.out, helpText)
		case "list", "refresh":
			ctrl.Refresh(ctx)
		case "signup":
			t.runSignup(ctx, ctrl, fields[1:])
		case "withdraw":
			t.runWithdraw(fields[1:])
		default:
			fmt.Fprintf(t.out, "unknown command %q (try help)\n", fields[0])
		}
	}
}

func (t *Terminal) runSignup(ctx context.Context, ctrl Controls, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(t.out, "usage: signup <activity number> <email>")
		return
	}

	t.mu.Lock()
	options := t.options
	t.mu.Unlock()

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(options) {
		fmt.Fprintf(t.out, "no activity number %q\n", args[0])
		return
	}

	t.mu.Lock()
	t.formEmail = args[1]
	t.mu.Unlock()

	ctrl.Enroll(ctx, options[n-1], args[1])
}

func (t *Terminal) runWithdraw(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(t.out, "usage: withdraw <activity number> <participant number>")
		return
	}

	t.mu.Lock()
	cards := t.cards
	t.mu.Unlock()

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(cards) {
		fmt.Fprintf(t.out, "no activity number %q\n", args[0])
		return
	}
	card := cards[n-1]

	m, err := strconv.Atoi(args[1])
	if err != nil || m < 1 || m > len(card.Rows) {
		fmt.Fprintf(t.out, "no participant number %q\n", args[1])
		return
	}
	row := card.Rows[m-1]

	if row.Placeholder || row.OnWithdraw == nil {
		fmt.Fprintln(t.out, "nothing to withdraw there")
		return
	}
	row.OnWithdraw()
}
