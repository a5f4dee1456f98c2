package app

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington-hs/activities-client/internal/api"
	"github.com/mergington-hs/activities-client/internal/stub"
	"github.com/mergington-hs/activities-client/internal/view"
)

// End-to-end over the wire: real client against the in-process stub
// service, with doubles standing in for the interactive surface.
func TestControllerAgainstStubService(t *testing.T) {
	srv := httptest.NewServer(stub.NewHandler(stub.NewStore(), log.New(quietWriter{t}, "", 0)).Routes())
	defer srv.Close()

	client := api.NewClient(srv.URL, srv.Client(), log.New(quietWriter{t}, "", 0))
	surface := &fakeSurface{}
	confirm := &confirmStub{answer: true}
	notify := &notifyStub{}
	ctrl := NewController(Deps{
		Fetcher: client,
		Gateway: client,
		Surface: surface,
		Banner:  NewFeedbackBanner(surface, time.Hour),
		Confirm: confirm,
		Notify:  notify,
		Logger:  log.New(quietWriter{t}, "", 0),
	})

	ctx := context.Background()

	// Initial cycle renders the seed roster.
	ctrl.Start(ctx)
	names := surface.optionNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "Chess Club", names[0], "document order survives the round trip")

	// Enroll a new student and watch the refreshed snapshot include them.
	ctrl.Enroll(ctx, "Art Studio", "kid@mergington.edu")
	assert.Contains(t, surface.bannerText, "kid@mergington.edu")
	assert.Equal(t, view.BannerSuccess, surface.bannerKind)
	assert.Equal(t, 1, surface.formClears)

	art := cardByName(t, surface, "Art Studio")
	require.Len(t, art.Rows, 1)
	assert.Equal(t, "kid@mergington.edu", art.Rows[0].Email)

	// Enrolling the same student again surfaces the service's detail.
	ctrl.Enroll(ctx, "Art Studio", "kid@mergington.edu")
	assert.Equal(t, "Student is already signed up", surface.bannerText)
	assert.Equal(t, view.BannerError, surface.bannerKind)

	// A confirmed withdraw removes the student from the next snapshot.
	row := art.Rows[0]
	require.NotNil(t, row.OnWithdraw)
	row.OnWithdraw()

	assert.Contains(t, confirm.prompts[len(confirm.prompts)-1], "kid@mergington.edu")
	art = cardByName(t, surface, "Art Studio")
	require.Len(t, art.Rows, 1)
	assert.True(t, art.Rows[0].Placeholder, "after the withdraw the activity is back to the placeholder")
	assert.Empty(t, notify.messages)

	// Withdrawing again fails server-side and lands on the blocking notice.
	status := withdrawDirect(t, client, "Art Studio", "kid@mergington.edu")
	assert.Equal(t, http.StatusBadRequest, status)
}

func cardByName(t *testing.T, surface *fakeSurface, name string) *view.Card {
	t.Helper()
	surface.mu.Lock()
	defer surface.mu.Unlock()
	for _, card := range surface.cards {
		if card.Name == name {
			return card
		}
	}
	t.Fatalf("no card named %q", name)
	return nil
}

func withdrawDirect(t *testing.T, client *api.Client, activity, email string) int {
	t.Helper()
	_, err := client.Withdraw(context.Background(), activity, email)
	require.Error(t, err)
	var st *api.StatusError
	require.ErrorAs(t, err, &st)
	return st.Status
}
