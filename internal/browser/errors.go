package browser

import "fmt"

// LaunchError means the browser engine could not be started (missing binary,
// version mismatch, resource exhaustion). It is fatal for the whole run;
// there is no fallback engine.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("browser launch failed: %v", e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// LoginError means the authentication sequence failed (missing element,
// timeout). It is recoverable: the caller logs it and the run continues
// unauthenticated.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// NavigationError means a single target could not be fetched (network
// failure, timeout, browser crash). It is scoped to one target and must
// never abort the run.
type NavigationError struct {
	Target string
	Err    error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.Target, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}
