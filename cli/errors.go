package cli

import (
	"errors"
	"fmt"

	"github.com/andkntr/youtube-comments-extract/client"
	"github.com/andkntr/youtube-comments-extract/model"
)

// userError maps pipeline errors to user-facing messages: bad input renders
// as "could not process input", upstream faults as a distinguishable
// service message. The original error stays wrapped for operator logs.
func userError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidInput) {
		return fmt.Errorf("could not process input: %w", err)
	}

	var ue *client.UpstreamError
	if errors.As(err, &ue) {
		return fmt.Errorf("service temporarily unavailable (%s): %w", ue.Op, err)
	}

	return err
}
