package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/csu-scheduler/staffing-api-go/pkg/models"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/validate", h.ValidateInput)
	r.GET("/api/health", h.Health)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&Handler{Log: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestValidateInput(t *testing.T) {
	r := newTestRouter(&Handler{Log: zap.NewNop()})

	valid := models.ScheduleInput{
		Sessions: []models.Session{
			{ID: "s1", TimeBlock: models.BlockMorning, Course: "CS101", Section: "01", MinRequired: 2},
		},
		Staff: []models.Staff{
			{ID: "ann", Availability: []models.TimeBlock{models.BlockMorning}, Veteran: true},
		},
	}

	w := postJSON(t, r, "/api/validate", valid)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestValidateInputRejects(t *testing.T) {
	r := newTestRouter(&Handler{Log: zap.NewNop()})

	tests := []struct {
		name    string
		input   models.ScheduleInput
		wantErr string
	}{
		{
			name: "no staff",
			input: models.ScheduleInput{
				Sessions: []models.Session{{ID: "s1", TimeBlock: models.BlockMorning, MinRequired: 2}},
			},
			wantErr: "staff member",
		},
		{
			name: "no sessions",
			input: models.ScheduleInput{
				Staff: []models.Staff{{ID: "ann", Availability: []models.TimeBlock{models.BlockMorning}}},
			},
			wantErr: "session",
		},
		{
			name: "duplicate staff id",
			input: models.ScheduleInput{
				Sessions: []models.Session{{ID: "s1", TimeBlock: models.BlockMorning, MinRequired: 2}},
				Staff: []models.Staff{
					{ID: "ann", Availability: []models.TimeBlock{models.BlockMorning}},
					{ID: "ann", Availability: []models.TimeBlock{models.BlockMidday}},
				},
			},
			wantErr: "duplicate staff id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/validate", tt.input)
			assert.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Valid bool   `json:"valid"`
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Valid)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}
