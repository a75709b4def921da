// Package testing switches the console into test mode for any test package
// that blank-imports it.
package testing

import "os"

func init() {
	if os.Getenv("CONSOLE_TEST_MODE") == "" {
		_ = os.Setenv("CONSOLE_TEST_MODE", "1")
	}
	// Unreachable upstream so a test that forgets its fake fails fast.
	if os.Getenv("UPSTREAM_BASE_URL") == "" {
		_ = os.Setenv("UPSTREAM_BASE_URL", "http://127.0.0.1:0")
	}
}
