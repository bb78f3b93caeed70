package cmd

import (
	"context"
	"errors"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

const (
	ExitOK         = 0
	ExitSystem     = 1
	ExitUser       = 2
	ExitSourceRead = 3
	ExitMalformed  = 4
	ExitCanceled   = 130
)

// ExitCode maps a command error to a stable process exit code for automation.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if clierrors.IsMalformedRowError(err) {
		return ExitMalformed
	}
	if clierrors.IsSourceReadError(err) {
		return ExitSourceRead
	}
	if isUserFacing(err) {
		return ExitUser
	}
	return ExitSystem
}

func isUserFacing(err error) bool {
	return clierrors.IsValidationError(err) ||
		clierrors.IsUserError(err) ||
		clierrors.IsColumnNotFoundError(err) ||
		clierrors.IsAlignmentMismatchError(err) ||
		clierrors.IsTemplateError(err)
}
