package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		name       string
		production bool
		level      string
		debugOn    bool
		warnOn     bool
	}{
		{name: "development default", production: false, debugOn: true, warnOn: true},
		{name: "production default", production: true, debugOn: false, warnOn: true},
		{name: "override", production: false, level: "warn", debugOn: false, warnOn: true},
		{name: "bad override ignored", production: true, level: "loud", debugOn: false, warnOn: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := newLogger(tc.production, tc.level)
			require.NoError(t, err)
			assert.Equal(t, tc.debugOn, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tc.warnOn, logger.Core().Enabled(zap.WarnLevel))
		})
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("nil map") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, w.Body.String(), "nil map")
}

func TestJSONCodedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()

	r := gin.New()
	r.GET("/taken", func(c *gin.Context) {
		JSONCodedError(c, http.StatusConflict, "slot_unavailable", "this time is no longer available")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/taken", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"code":"slot_unavailable","message":"this time is no longer available"}`, w.Body.String())
}
