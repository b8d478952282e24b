package app

import (
	"os"
	"sync"
	"sync/atomic"
)

// TestModeEnv disables server startup when set to "1".
const TestModeEnv = "DAILYMART_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

func readTestMode() {
	testMode.Store(os.Getenv(TestModeEnv) == "1")
}

// InTestMode reports whether the dashboard binary should skip listening and
// dialing Redis.
func InTestMode() bool {
	testModeOnce.Do(readTestMode)
	return testMode.Load()
}

// RefreshTestMode re-reads the environment flag.
func RefreshTestMode() {
	readTestMode()
}
