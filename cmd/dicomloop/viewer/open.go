package viewer

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user leaves the directory prompt.
var ErrCancelled = errors.New("cancelled")

// validateDirectory accepts existing directories only.
func validateDirectory(s string) error {
	if s == "" {
		return fmt.Errorf("directory is required")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot open %s", s)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s)
	}
	return nil
}

// PromptDirectory asks for the series directory, starting from initial.
func PromptDirectory(initial string) (string, error) {
	dir := initial
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("directory").
				Title("Series directory").
				Description("Folder holding the <label>-<number>.dcm files").
				Value(&dir).
				Validate(validateDirectory),
		),
	).WithShowHelp(false).WithShowErrors(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("directory prompt: %w", err)
	}
	return dir, nil
}
