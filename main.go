package main

import (
	"errors"
	"os"

	"rainbow-disk/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		exitCodeError := &cmd.ExitCodeError{}
		if errors.As(err, &exitCodeError) {
			os.Exit(exitCodeError.ExitCode())
		} else {
			os.Exit(cmd.ExitCodeInvalidArguments)
		}
	}
}
