package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrCancelled is returned when the user aborts a prompt (Ctrl+C / Ctrl+D).
var ErrCancelled = errors.New("cancelled by user")

// Prompter asks line-based questions. PromptUI is the interactive
// implementation; tests script answers.
type Prompter interface {
	Confirm(label string) (bool, error)
	Input(label string, validate func(string) error) (string, error)
}

// PromptUI implements Prompter with promptui.
type PromptUI struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Confirm asks a yes/no confirmation question
func (p PromptUI) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.Stdin,
		Stdout:    p.Stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			// promptui reports "n" as an abort for confirm prompts
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return false, ErrCancelled
		}
		return false, err
	}

	return result == "y" || result == "Y", nil
}

// Input asks for text input with optional validation
func (p PromptUI) Input(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    p.Stdin,
		Stdout:   p.Stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("prompt: %w", err)
	}

	return result, nil
}

// ValidateNonEmpty validates that input is not empty
func ValidateNonEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("input cannot be empty")
	}
	return nil
}
