package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// HandleError prints a user-friendly error line and exits with status 1.
// With --verbose, the full technical error is printed instead.
func HandleError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// HandleFatalError handles unrecoverable errors that should terminate the
// application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", technicalErr)
	} else {
		fmt.Fprintf(os.Stderr, "[ERROR] %s\n", userMsg)
	}
}

// LogError logs an error to stderr only in verbose mode.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}
