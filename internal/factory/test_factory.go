package factory

import (
	"time"

	"github.com/neonsnake/neonsnake-backend/internal/dependencies/mocks"
	"github.com/neonsnake/neonsnake-backend/internal/services/auth"
	"github.com/neonsnake/neonsnake-backend/internal/storage/memory"
	"github.com/neonsnake/neonsnake-backend/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mock for test control of time
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.DefaultConfig()
	authCfg.TokenSecret = []byte("test-secret")

	app := newWithDependencies(store, mockClock, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
