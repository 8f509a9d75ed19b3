package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/neonsnake/neonsnake-backend/internal/testutil"
)

type RecoverySuite struct {
	suite.Suite
}

func TestRecoverySuite(t *testing.T) {
	suite.Run(t, new(RecoverySuite))
}

func (s *RecoverySuite) panicking() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func (s *RecoverySuite) TestRecoversWithDefaultHandler() {
	handler := Recovery(testutil.NopLogger(), nil)(s.panicking())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "Internal Server Error")
}

func (s *RecoverySuite) TestRecoversWithCustomHandler() {
	called := false
	custom := func(w http.ResponseWriter, _ *http.Request, err any) {
		called = true
		s.Equal("boom", err)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	handler := Recovery(testutil.NopLogger(), custom)(s.panicking())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	s.True(called)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *RecoverySuite) TestPassesThroughWithoutPanic() {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Recovery(testutil.NopLogger(), nil)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusTeapot, rec.Code)
}
