package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func postJSON(t *testing.T, env *testEnv, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := env.ts.Client().Post(env.ts.URL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getWithToken(t *testing.T, env *testEnv, path, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := env.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func loginOperator(t *testing.T, env *testEnv) string {
	t.Helper()

	resp := postJSON(t, env, "/api/login", LoginRequest{Username: "admin", Password: testOperatorPassword})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", resp.StatusCode)
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if auth.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	return auth.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := startTestServer(t)

	resp := postJSON(t, env, "/api/login", LoginRequest{Username: "admin", Password: "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSubscribeFlow(t *testing.T) {
	env := startTestServer(t)

	// Newsletter not selected: email acknowledged but not stored.
	resp := postJSON(t, env, "/api/subscribe", SubscribeRequest{Email: "a@example.com", Newsletter: false})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = postJSON(t, env, "/api/subscribe", SubscribeRequest{Email: "a@example.com", Newsletter: true})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, env, "/api/subscribe", SubscribeRequest{Email: "a@example.com", Newsletter: true})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", resp.StatusCode)
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	env := startTestServer(t)

	resp := getWithToken(t, env, "/api/admin/rooms", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp = getWithToken(t, env, "/api/admin/rooms", "not-a-token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", resp.StatusCode)
	}
}

func TestAdminRoomsListsDistinctSenders(t *testing.T) {
	env := startTestServer(t)
	ctx := context.Background()

	for _, m := range []struct{ sender, receiver, text string }{
		{"bob", "admin", "one"},
		{"alice", "admin", "two"},
		{"alice", "admin", "three"},
		{"admin", "alice", "reply"},
	} {
		if _, err := env.store.Append(ctx, m.sender, m.receiver, m.text); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	token := loginOperator(t, env)
	resp := getWithToken(t, env, "/api/admin/rooms", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rooms status: %d", resp.StatusCode)
	}

	var rooms RoomsResponse
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}

	want := []string{"alice", "bob"}
	if len(rooms.Rooms) != len(want) {
		t.Fatalf("expected %v, got %v", want, rooms.Rooms)
	}
	for i, room := range rooms.Rooms {
		if room != want[i] {
			t.Fatalf("expected %v, got %v", want, rooms.Rooms)
		}
	}
}

func TestAdminMessagesNewestFirst(t *testing.T) {
	env := startTestServer(t)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := env.store.Append(ctx, "alice", "admin", text); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	token := loginOperator(t, env)
	resp := getWithToken(t, env, "/api/admin/messages?limit=2", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("messages status: %d", resp.StatusCode)
	}

	var messages MessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}

	if len(messages.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages.Messages))
	}
	if messages.Messages[0].Text != "third" || messages.Messages[1].Text != "second" {
		t.Fatalf("expected newest first, got %+v", messages.Messages)
	}
}
