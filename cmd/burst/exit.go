package main

import (
	"errors"
	"fmt"
)

// exitError maps the result of the game loop to the process outcome. A
// regular quit, signalled by termination, is success; anything else is a
// failure that must end the process with a non-zero status.
func exitError(err, termination error) error {
	if err == nil || errors.Is(err, termination) {
		return nil
	}
	return fmt.Errorf("running burst: %w", err)
}
