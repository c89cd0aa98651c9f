package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/emberhatch/menagerie/internal/platform/errors"
)

// toolError shapes an engine failure into the message an MCP client sees.
// Coded errors surface their localized user message; anything else keeps the
// raw chain for operators.
func toolError(action, locale string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return fmt.Errorf("%s failed: %s", action, apperrors.UserMessage(err, locale))
	}
	return fmt.Errorf("%s failed: %w", action, err)
}
