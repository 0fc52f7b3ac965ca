package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedawell/backend/internal/models"
	"github.com/vedawell/backend/internal/recipeapi"
	"github.com/vedawell/backend/internal/testhelpers"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)

	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":"r1","name":"Kitchari","calories":500,"protein":12,"carbs":80,"fat":9}]}`)
	}))
	t.Cleanup(vendor.Close)

	engine := gin.New()
	RegisterRoutes(engine, db, nil, recipeapi.NewClient(vendor.URL, ""), "test-secret")
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, engine *gin.Engine, name, email, role string) string {
	t.Helper()

	w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name: name, Email: email, Password: "password123", Role: role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func submitIntake(t *testing.T, engine *gin.Engine, token string) {
	t.Helper()

	w := doRequest(t, engine, http.MethodPost, "/api/v1/intake", token, IntakeRequest{
		Age: 30, Gender: "female", Weight: 58, Height: 162,
		LifeStage: "pregnancy", Trimester: "second",
		Allergies:      []string{"dairy"},
		DietPreference: "vegetarian",
		BodyFrame:      "thin", SkinType: "dry", HairType: "dry",
		AppetitePattern: "variable", ActivityLevel: "moderate",
		EnergyLevel: 6, StressLevel: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	engine := setupTestRouter(t)

	w := doRequest(t, engine, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "disabled", body["cache"])
}

func TestAuthEndpoints(t *testing.T) {
	engine := setupTestRouter(t)

	token := registerUser(t, engine, "Asha", "asha@example.com", "")
	assert.NotEmpty(t, token)

	t.Run("duplicate registration", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
			Name: "Asha", Email: "asha@example.com", Password: "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
			Email: "asha@example.com", Password: "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
			Email: "asha@example.com", Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected routes reject missing tokens", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/intake/latest", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIntakeEndpoints(t *testing.T) {
	engine := setupTestRouter(t)
	token := registerUser(t, engine, "Asha", "asha@example.com", "")

	t.Run("no assessment yet", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/intake/latest", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("submit and read back", func(t *testing.T) {
		submitIntake(t, engine, token)

		w := doRequest(t, engine, http.MethodGet, "/api/v1/intake/latest", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var intake models.PatientIntake
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &intake))
		assert.Equal(t, "pregnancy", intake.LifeStage)
		assert.Equal(t, models.JSONStringArray{"dairy"}, intake.Allergies)

		w = doRequest(t, engine, http.MethodGet, "/api/v1/intake/history", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("validation failures", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/intake", token, map[string]any{
			"age": 30, "gender": "female",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDietChartEndpoints(t *testing.T) {
	engine := setupTestRouter(t)
	token := registerUser(t, engine, "Asha", "asha@example.com", "")

	t.Run("generation requires an assessment", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/charts/generate", token, GenerateChartRequest{NumDays: 2})
		assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	})

	submitIntake(t, engine, token)

	w := doRequest(t, engine, http.MethodPost, "/api/v1/charts/generate", token, GenerateChartRequest{NumDays: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var record models.DietChart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, 2, record.NumDays)
	assert.Equal(t, "Asha", record.PatientName)

	t.Run("fetch and list", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/charts/"+record.ID.String(), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, engine, http.MethodGet, "/api/v1/charts", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var charts []models.DietChart
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &charts))
		assert.Len(t, charts, 1)
	})

	t.Run("other patients cannot read the chart", func(t *testing.T) {
		other := registerUser(t, engine, "Eve", "eve@example.com", "")
		w := doRequest(t, engine, http.MethodGet, "/api/v1/charts/"+record.ID.String(), other, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("doctors can read any chart", func(t *testing.T) {
		doctor := registerUser(t, engine, "Dr. Rao", "rao@example.com", "doctor")
		w := doRequest(t, engine, http.MethodGet, "/api/v1/charts/"+record.ID.String(), doctor, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("edit and edit log", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/charts/"+record.ID.String()+"/edits", token, map[string]any{
			"action": "remove", "from_day": 1, "from_slot": "breakfast",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = doRequest(t, engine, http.MethodPost, "/api/v1/charts/"+record.ID.String()+"/edits", token, map[string]any{
			"action": "remove", "from_day": 1, "from_slot": "breakfast",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "slot already empty")

		w = doRequest(t, engine, http.MethodGet, "/api/v1/charts/"+record.ID.String()+"/edits", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var edits []models.DietChartEdit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edits))
		assert.Len(t, edits, 1)
	})

	t.Run("unknown chart id", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/charts/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestConsultationEndpoints(t *testing.T) {
	engine := setupTestRouter(t)
	patient := registerUser(t, engine, "Asha", "asha@example.com", "")
	doctor := registerUser(t, engine, "Dr. Rao", "rao@example.com", "doctor")

	w := doRequest(t, engine, http.MethodPost, "/api/v1/consultations", patient, CreateConsultationRequest{
		Subject: "Diet review", Message: "Please review my chart.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ConsultationRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created.Status)

	t.Run("patient sees own requests", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/consultations", patient, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var requests []models.ConsultationRequest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &requests))
		assert.Len(t, requests, 1)
	})

	t.Run("open queue is doctor only", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodGet, "/api/v1/consultations/open", patient, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(t, engine, http.MethodGet, "/api/v1/consultations/open", doctor, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("doctor updates status", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPut, "/api/v1/consultations/"+created.ID.String()+"/status", doctor, UpdateConsultationRequest{
			Status: "accepted", Notes: "Thursday works.",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated models.ConsultationRequest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "accepted", updated.Status)
		assert.Equal(t, "Thursday works.", updated.DoctorNotes)
	})

	t.Run("invalid status value", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPut, "/api/v1/consultations/"+created.ID.String()+"/status", doctor, map[string]any{
			"status": "escalated",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssistantEndpoint(t *testing.T) {
	engine := setupTestRouter(t)
	token := registerUser(t, engine, "Asha", "asha@example.com", "")

	t.Run("static tip intents work without an assessment", func(t *testing.T) {
		w := doRequest(t, engine, http.MethodPost, "/api/v1/assistant/chat", token, ChatRequest{
			Message: "How much water should I drink?",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var reply map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
		assert.Equal(t, "hydration", reply["intent"])
	})

	t.Run("calorie needs use the stored assessment", func(t *testing.T) {
		submitIntake(t, engine, token)

		w := doRequest(t, engine, http.MethodPost, "/api/v1/assistant/chat", token, ChatRequest{
			Message: "How many calories should I eat?",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var reply struct {
			Intent  string `json:"intent"`
			Targets *struct {
				DailyCalories float64 `json:"daily_calories"`
			} `json:"targets"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
		assert.Equal(t, "calorie_needs", reply.Intent)
		require.NotNil(t, reply.Targets)
		assert.Greater(t, reply.Targets.DailyCalories, 0.0)
	})
}
