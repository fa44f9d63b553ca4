package integration

import (
	"os"
	"testing"
)

// TestIntegrationSuite runs all integration tests
func TestIntegrationSuite(t *testing.T) {
	setupTestEnvironment(t)

	t.Run("Basic_Integration", TestBasicIntegration)
	t.Run("Error_Handling", TestErrorHandling)
	t.Run("Performance", TestPerformance)
	t.Run("Data_Consistency", TestDataConsistency)
	t.Run("HTTP_API", TestHTTPAPIMatchesBatch)
	t.Run("Output", TestOutputGeneration)
}

// setupTestEnvironment quiets logging for the duration of the test
func setupTestEnvironment(t *testing.T) {
	t.Helper()
	previous, had := os.LookupEnv("LOG_LEVEL")
	os.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() {
		if had {
			os.Setenv("LOG_LEVEL", previous)
		} else {
			os.Unsetenv("LOG_LEVEL")
		}
	})
}
