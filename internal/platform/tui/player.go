package tui

import (
	"os"
	"os/user"
)

// LocalPlayer returns the login name of the local user, or "" when it
// cannot be determined.
func LocalPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
