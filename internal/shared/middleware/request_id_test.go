package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	testCases := []struct {
		name   string
		header string
		keep   bool
	}{
		{"client id kept", "abc-123.xyz", true},
		{"missing id generated", "", false},
		{"unsafe id replaced", "evil\" level=ERROR", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, req)

			got := recorder.Header().Get(RequestIDHeader)
			assert.Equal(t, got, recorder.Body.String())
			if tc.keep {
				assert.Equal(t, tc.header, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}
