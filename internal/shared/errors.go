package shared

import "fmt"

var (
	// Launcher errors
	ErrNoPortAvailable     = fmt.Errorf("no port available")
	ErrServerStartup       = fmt.Errorf("server startup failed")
	ErrServerRuntime       = fmt.Errorf("server runtime failure")
	ErrBrowserLaunch       = fmt.Errorf("failed to open browser")
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
