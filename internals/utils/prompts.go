package utils

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned if the user aborted a prompt
var ErrAborted = errors.New("aborted")

// SelectPrompt runs the prompt and returns the selected index
func SelectPrompt(prompt *promptui.Select) (int, error) {
	i, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return 0, ErrAborted
		}
		return 0, err
	}
	return i, nil
}
