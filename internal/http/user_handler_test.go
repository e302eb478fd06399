package http

import (
	"net/http"
	"testing"
)

func TestFollowThenUnfollowRestoresCounter(t *testing.T) {
	app := newTestApp(t, "secret", nil)
	id := app.signup(t, "Ann", "a@b.com", "Abcdef12")

	rec := app.do(t, http.MethodPost, "/users/follow/"+id, nil, nil)
	expectMessage(t, rec, http.StatusOK, "You have successfully followed user with ID "+id)
	if app.users.usersByID[id].Follow != 1 {
		t.Fatalf("expected follow 1, got %d", app.users.usersByID[id].Follow)
	}

	rec = app.do(t, http.MethodPost, "/users/unfollow/"+id, nil, nil)
	expectMessage(t, rec, http.StatusOK, "You have successfully Unfollowed user with ID "+id)
	if app.users.usersByID[id].Follow != 0 {
		t.Fatalf("expected follow 0, got %d", app.users.usersByID[id].Follow)
	}
}

func TestLegacyUnfollowRouteGoesNegative(t *testing.T) {
	app := newTestApp(t, "secret", nil)
	id := app.signup(t, "Ann", "a@b.com", "Abcdef12")

	rec := app.do(t, http.MethodPost, "/users/Unfollow/"+id, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if follow := decodeBody(t, rec)["follow"]; follow != float64(-1) {
		t.Fatalf("expected follow -1, got %v", follow)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	app := newTestApp(t, "secret", nil)

	for _, path := range []string{
		"/users/follow/11111111-2222-3333-4444-555555555555",
		"/users/follow/not-a-uuid",
		"/users/unfollow/11111111-2222-3333-4444-555555555555",
	} {
		rec := app.do(t, http.MethodPost, path, nil, nil)
		expectMessage(t, rec, http.StatusNotFound, "User not found")
	}
}

func TestUserProfile(t *testing.T) {
	app := newTestApp(t, "secret", nil)
	id := app.signup(t, "Ann", "a@b.com", "Abcdef12")
	app.do(t, http.MethodPost, "/users/follow/"+id, nil, nil)

	rec := app.do(t, http.MethodGet, "/users/"+id, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	details, _ := body["userDetails"].(map[string]any)
	if details["userName"] != "Ann" || details["id"] != id || body["follow"] != float64(1) {
		t.Fatalf("unexpected profile: %+v", body)
	}
	if _, leaked := details["email"]; leaked {
		t.Fatalf("profile must not expose email: %+v", details)
	}

	rec = app.do(t, http.MethodGet, "/users/11111111-2222-3333-4444-555555555555", nil, nil)
	expectMessage(t, rec, http.StatusNotFound, "User not found")
}
