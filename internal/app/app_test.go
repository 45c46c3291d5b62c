package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/tournament-hub/internal/config"
	"github.com/riskibarqy/tournament-hub/internal/domain/standing"
	"github.com/riskibarqy/tournament-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-hub/internal/observability"
	"github.com/riskibarqy/tournament-hub/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "app-test-secret"

func testConfig() config.Config {
	return config.Config{
		AppEnv:                      config.EnvDev,
		HTTPAddr:                    "127.0.0.1:0",
		StoreBackend:                config.StoreMemory,
		CacheEnabled:                true,
		CacheTTL:                    time.Minute,
		CORSAllowedOrigins:          []string{"*"},
		AuthJWTSecret:               testSecret,
		AuthJWTAudience:             "authenticated",
		AuthBootstrapAdmins:         []string{"ops-admin"},
		QualificationDefaultAdvance: 2,
		QualificationTieBreak:       standing.TieBreakStats,
		RecomputeMaxRetries:         1,
		RecomputeWorkers:            2,
		StorageSignedURLTTL:         time.Hour,
	}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

type runningApp struct {
	app *App
}

func startApp(t *testing.T, cfg config.Config, metrics *observability.Metrics) *runningApp {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	a, err := New(ctx, cfg, logging.NewNop(), metrics)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		require.NoError(t, a.Shutdown(shutdownCtx))
	})

	select {
	case <-a.bus.Running():
	case <-time.After(5 * time.Second):
		t.Fatalf("event bus did not start")
	}
	return &runningApp{app: a}
}

func (r *runningApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.app.Handler().ServeHTTP(rec, req)
	return rec
}

type idEnvelope struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type listEnvelope struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type teamEnvelope struct {
	Data struct {
		Status    string `json:"status"`
		GroupName string `json:"group_name"`
	} `json:"data"`
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop(), nil)
	require.Error(t, err)
}

func TestApp_HealthAndMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	r := startApp(t, testConfig(), metrics)

	rec := r.do(t, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = r.do(t, http.MethodGet, "/v1/tournaments", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = r.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="GET /v1/tournaments"`)
}

func TestApp_StandingEventQualifiesTeams(t *testing.T) {
	r := startApp(t, testConfig(), observability.NewMetrics())
	admin := signToken(t, "ops-admin")

	rec := r.do(t, http.MethodPost, "/v1/admin/tournaments/"+memory.TournamentIDSpringCup+"/groups", admin, `{"num_groups":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var groups listEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups.Data, 1)
	groupID := groups.Data[0].ID

	standingByTeam := make(map[string]string)
	for _, teamID := range []string{"seed-team-a", "seed-team-b", "seed-team-c"} {
		rec = r.do(t, http.MethodPost, "/v1/admin/groups/"+groupID+"/teams", admin, `{"team_id":"`+teamID+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created idEnvelope
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &created))
		standingByTeam[teamID] = created.Data.ID
	}

	for teamID, points := range map[string]int{"seed-team-b": 6, "seed-team-c": 3} {
		rec = r.do(t, http.MethodPatch, "/v1/admin/standings/"+standingByTeam[teamID], admin, fmt.Sprintf(`{"points":%d,"wins":%d,"games_played":2}`, points, points/3))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	teamStatus := func(teamID string) teamEnvelope {
		rec := r.do(t, http.MethodGet, "/v1/teams/"+teamID, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var out teamEnvelope
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
		return out
	}

	require.Eventually(t, func() bool {
		return teamStatus("seed-team-b").Data.Status == "qualified" &&
			teamStatus("seed-team-c").Data.Status == "qualified"
	}, 5*time.Second, 20*time.Millisecond)

	a := teamStatus("seed-team-a")
	assert.Equal(t, "registered", a.Data.Status)
	assert.Equal(t, "Group A", a.Data.GroupName)
}

func TestApp_PlayerCannotReachAdminRoutes(t *testing.T) {
	r := startApp(t, testConfig(), nil)

	rec := r.do(t, http.MethodPost, "/v1/admin/tournaments/"+memory.TournamentIDSpringCup+"/groups", signToken(t, "someone"), `{"num_groups":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = r.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
