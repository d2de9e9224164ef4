package cmd

import (
	"errors"

	"rainbow-disk/pkg/rainbow"
	"rainbow-disk/pkg/remap"
	"rainbow-disk/pkg/render"
	"rainbow-disk/pkg/utils/ps"
	"rainbow-disk/pkg/video"
)

const (
	ExitCodeUnknownError     = 1
	ExitCodeInvalidArguments = 2
	ExitCodeInvalidInput     = 3
	ExitCodeInvalidOutput    = 4
	ExitCodeTruncated        = 5
	ExitCodeRemapError       = 6
	ExitCodeResourceError    = 7
)

type ExitCodeError struct {
	originalError error
	exitCode      int
}

func (e *ExitCodeError) Error() string {
	return e.originalError.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.originalError
}

func (e *ExitCodeError) ExitCode() int {
	return e.exitCode
}

func newExitCodeError(err error, code int) *ExitCodeError {
	return &ExitCodeError{
		originalError: err,
		exitCode:      code,
	}
}

// withExitCode attaches the exit code matching err's class unless err
// already carries one.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	exitCodeError := &ExitCodeError{}
	if errors.As(err, &exitCodeError) {
		return err
	}

	return newExitCodeError(err, exitCodeFor(err))
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, rainbow.ErrTruncated):
		return ExitCodeTruncated
	case errors.Is(err, render.ErrInvalidOptions),
		errors.Is(err, remap.ErrInvalidParameters):
		return ExitCodeInvalidArguments
	case errors.Is(err, remap.ErrShapeMismatch):
		return ExitCodeRemapError
	case errors.Is(err, ps.ErrInsufficientMemory):
		return ExitCodeResourceError
	case errors.Is(err, video.ErrNotAVI),
		errors.Is(err, video.ErrNoStream),
		errors.Is(err, rainbow.ErrNoFrames),
		errors.Is(err, rainbow.ErrFrameSize):
		return ExitCodeInvalidInput
	}
	return ExitCodeUnknownError
}
