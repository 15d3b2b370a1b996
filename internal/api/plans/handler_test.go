package plans_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"companion-app/config"
	"companion-app/internal/api/plans"
	"companion-app/internal/app/http/middleware"
	"companion-app/internal/domain/trial"
	"companion-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(profiles users.ProfileStore, trials trial.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = testSecret

	r := gin.New()
	r.HandleMethodNotAllowed = true

	h := plans.NewHandler(profiles, trials)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.POST("/initialize-trial-plan", h.InitializeTrialPlan)
	return r
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   "user@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func initializePlan(t *testing.T, r *gin.Engine, bearer, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/initialize-trial-plan", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestInitializeTrialPlanAuth(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		profiles := users.NewMemoryProfileStore()
		profiles.Seed("user-1")
		r := newTestRouter(profiles, trial.NewMemoryStore())

		resp := initializePlan(t, r, "", `{"chosenPlan":"monthly_trial"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)

		// no profile mutation without a valid credential
		p, err := profiles.ByUserID("user-1")
		require.NoError(t, err)
		assert.Equal(t, users.PlanFreemium, p.CurrentPlan)
		assert.Nil(t, p.TrialEndDate)
	})

	t.Run("garbage token", func(t *testing.T) {
		r := newTestRouter(users.NewMemoryProfileStore(), trial.NewMemoryStore())

		resp := initializePlan(t, r, "not-a-jwt", `{"chosenPlan":"monthly_trial"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		r := newTestRouter(users.NewMemoryProfileStore(), trial.NewMemoryStore())

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		resp := initializePlan(t, r, signed, `{"chosenPlan":"monthly_trial"}`)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestInitializeTrialPlanValidation(t *testing.T) {
	profiles := users.NewMemoryProfileStore()
	profiles.Seed("user-1")
	r := newTestRouter(profiles, trial.NewMemoryStore())
	bearer := signToken(t, "user-1")

	for _, payload := range []string{
		`{}`,
		`{"chosenPlan":""}`,
		`{"chosenPlan":"freemium"}`,
		`{"chosenPlan":"monthly_paid"}`,
		`{"chosenPlan":"weekly_trial"}`,
		`not json`,
	} {
		resp := initializePlan(t, r, bearer, payload)
		assert.Equal(t, http.StatusBadRequest, resp.Code, payload)
	}
}

func TestInitializeTrialPlanWindow(t *testing.T) {
	profiles := users.NewMemoryProfileStore()
	profiles.Seed("user-1")
	r := newTestRouter(profiles, trial.NewMemoryStore())

	before := time.Now()
	resp := initializePlan(t, r, signToken(t, "user-1"), `{"chosenPlan":"monthly_trial"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body plans.InitializeTrialResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "monthly_trial", body.Plan)

	endDate, err := time.Parse(time.RFC3339, body.TrialEndDate)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(trial.Duration), endDate, 5*time.Second)

	p, err := profiles.ByUserID("user-1")
	require.NoError(t, err)
	assert.Equal(t, "monthly_trial", p.CurrentPlan)
	require.NotNil(t, p.TrialStartDate)
	require.NotNil(t, p.TrialEndDate)
	// the window is exactly 7 days, both dates set together
	assert.Equal(t, trial.Duration, p.TrialEndDate.Sub(*p.TrialStartDate))
}

func TestInitializeTrialPlanLinksDevice(t *testing.T) {
	t.Run("existing device record gets converted_to_user_id", func(t *testing.T) {
		profiles := users.NewMemoryProfileStore()
		profiles.Seed("user-1")
		trials := trial.NewMemoryStore()
		_, err := trials.GetOrCreate("abc123")
		require.NoError(t, err)

		r := newTestRouter(profiles, trials)
		resp := initializePlan(t, r, signToken(t, "user-1"),
			`{"chosenPlan":"yearly_trial","fingerprintId":"abc123"}`)
		require.Equal(t, http.StatusOK, resp.Code)

		rec, ok := trials.Get("abc123")
		require.True(t, ok)
		require.NotNil(t, rec.ConvertedToUserID)
		assert.Equal(t, "user-1", *rec.ConvertedToUserID)
	})

	t.Run("device record never existed", func(t *testing.T) {
		profiles := users.NewMemoryProfileStore()
		profiles.Seed("user-1")
		trials := trial.NewMemoryStore()

		r := newTestRouter(profiles, trials)
		resp := initializePlan(t, r, signToken(t, "user-1"),
			`{"chosenPlan":"yearly_trial","fingerprintId":"ghost"}`)

		// tolerated silently; the plan update is the primary effect
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("link failure does not fail the request", func(t *testing.T) {
		profiles := users.NewMemoryProfileStore()
		profiles.Seed("user-1")

		r := newTestRouter(profiles, brokenLinkStore{Store: trial.NewMemoryStore()})
		resp := initializePlan(t, r, signToken(t, "user-1"),
			`{"chosenPlan":"monthly_trial","fingerprintId":"abc123"}`)

		assert.Equal(t, http.StatusOK, resp.Code)

		p, err := profiles.ByUserID("user-1")
		require.NoError(t, err)
		assert.Equal(t, "monthly_trial", p.CurrentPlan)
	})
}

func TestInitializeTrialPlanUnknownProfile(t *testing.T) {
	r := newTestRouter(users.NewMemoryProfileStore(), trial.NewMemoryStore())

	resp := initializePlan(t, r, signToken(t, "nobody"), `{"chosenPlan":"monthly_trial"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

type brokenLinkStore struct {
	trial.Store
}

func (brokenLinkStore) LinkToUser(string, string) error {
	return assert.AnError
}
