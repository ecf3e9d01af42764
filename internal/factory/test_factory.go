package factory

import (
	"time"

	"github.com/mcoot/unogame/internal/dependencies/mocks"
	"github.com/mcoot/unogame/internal/dependencies/random"
	"github.com/mcoot/unogame/internal/model"
	"github.com/mcoot/unogame/internal/storage/memory"
	"github.com/mcoot/unogame/internal/testutil"
)

// TestSeed seeds the session seed source of a TestApp
const TestSeed = 1

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App configured for testing: in-memory storage, a
// mock clock and a fixed seed source so game ids and deals repeat run to run
func NewTestApp() *TestApp {
	return NewTestAppWithDefaults(model.DefaultSettings())
}

// NewTestAppWithDefaults is NewTestApp with custom default settings
func NewTestAppWithDefaults(defaults model.Settings) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, random.NewSeeded(TestSeed), defaults, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}
