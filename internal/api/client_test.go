package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRosterSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/activities", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Chess Club": {"description": "d", "schedule": "s", "max_participants": 12, "participants": ["a@x.edu"]},
			"Art Club": {"description": "d2", "schedule": "s2", "max_participants": 10, "participants": []}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)
	roster, err := client.FetchRoster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess Club", "Art Club"}, roster.Names())
}

func TestFetchRosterFailuresCollapseIntoUnavailable(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.Client(), nil).FetchRoster(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Chess Club": "not an object"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, srv.Client(), nil).FetchRoster(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing is listening any more

		_, err := NewClient(srv.URL, http.DefaultClient, nil).FetchRoster(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestEnrollSuccessReturnsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/activities/Chess%20Club/signup", r.URL.EscapedPath())
		require.Equal(t, "kid@mergington.edu", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"message": "Signed up kid@mergington.edu for Chess Club"}`))
	}))
	defer srv.Close()

	msg, err := NewClient(srv.URL, srv.Client(), nil).Enroll(context.Background(), "Chess Club", "kid@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, "Signed up kid@mergington.edu for Chess Club", msg)
}

func TestEnrollFailureCarriesServiceDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Student is already signed up"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).Enroll(context.Background(), "Chess Club", "kid@mergington.edu")
	require.Error(t, err)

	var st *StatusError
	require.True(t, errors.As(err, &st))
	assert.Equal(t, http.StatusBadRequest, st.Status)
	assert.Equal(t, "Student is already signed up", st.Detail)
}

func TestWithdrawHitsUnregisterEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activities/Drama%20Club/unregister", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"message": "Unregistered kid@mergington.edu from Drama Club"}`))
	}))
	defer srv.Close()

	msg, err := NewClient(srv.URL, srv.Client(), nil).Withdraw(context.Background(), "Drama Club", "kid@mergington.edu")
	require.NoError(t, err)
	assert.Contains(t, msg, "Unregistered")
}

// Reserved URL characters in an activity name must reach the service as the
// literal original name, percent-encoded on the wire.
func TestEnrollPercentEncodesReservedCharacters(t *testing.T) {
	var gotPath, gotEmail string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotEmail = r.URL.Query().Get("email")
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).Enroll(context.Background(), "Arts/Crafts & Design", "kid+club@mergington.edu")
	require.NoError(t, err)

	assert.Equal(t, "/activities/Arts%2FCrafts%20&%20Design/signup", gotPath)
	assert.False(t, strings.Contains(strings.TrimPrefix(gotPath, "/activities/"), "/signup/"), "slash in the name must not split the path")
	assert.Equal(t, "kid+club@mergington.edu", gotEmail)
}

func TestWithdrawTransportFailureIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL, http.DefaultClient, nil).Withdraw(context.Background(), "Chess Club", "kid@mergington.edu")
	require.Error(t, err)

	var st *StatusError
	assert.False(t, errors.As(err, &st), "transport failures carry no service detail")
}
