package app

import "github.com/mergington-hs/activities-client/internal/view"

// WithdrawFunc handles an activated withdraw control, identified by the
// owning activity's name and the participant's email.
type WithdrawFunc func(activity, email string)

// BindWithdrawControls attaches handler to every withdraw control in cards.
// Placeholder rows carry no control and are skipped.
//
// The pass is stateless: it holds no registry and retains no references to
// rows from earlier renders, so re-binding after every rebuild cannot
// accumulate handlers.
func BindWithdrawControls(cards []*view.Card, handler WithdrawFunc) {
	for _, card := range cards {
		for _, row := range card.Rows {
			if row.Placeholder {
				continue
			}
			row.OnWithdraw = func() { handler(row.Activity, row.Email) }
		}
	}
}
