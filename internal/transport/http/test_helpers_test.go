package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmarkelov/supportchat-server/internal/auth"
	"github.com/dmarkelov/supportchat-server/internal/config"
	"github.com/dmarkelov/supportchat-server/internal/core"
	"github.com/dmarkelov/supportchat-server/internal/store/sqlite"
)

const testOperatorPassword = "secret123"

type testEnv struct {
	ts    *httptest.Server
	store *sqlite.SQLiteStore
}

func startTestServer(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()

	st, err := sqlite.New(":memory:", "admin")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	hash, err := auth.HashPassword(testOperatorPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	op := core.NewOperator("admin")
	registry := core.NewRegistry()
	router := core.NewRouter(st, registry, op, "/static/uploads/", &logger)
	replayer := core.NewReplayer(st, op, "/static/uploads/", &logger)
	authService := auth.NewService(op.Name, hash, &auth.JWTConfig{
		Secret: []byte("test-secret-change-me"),
		Issuer: "test",
		TTL:    time.Hour,
	})

	server := NewServer(Deps{
		Registry:    registry,
		Router:      router,
		Replayer:    replayer,
		AuthService: authService,
		Store:       st,
		Operator:    op,
	}, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		HistoryLimit:      100,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, store: st}
}
