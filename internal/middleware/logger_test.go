package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/botjournal/internal/logger"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusBadRequest)
	})

	cases := []struct {
		method string
		path   string
		body   io.Reader
		want   int
	}{
		{http.MethodPost, "/echo", bytes.NewBufferString("hello"), http.StatusOK},
		{http.MethodGet, "/fail", nil, http.StatusBadRequest},
		{http.MethodGet, "/missing", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, tc.body))
		if w.Code != tc.want {
			t.Fatalf("%s %s: status %d, want %d", tc.method, tc.path, w.Code, tc.want)
		}
	}
}
