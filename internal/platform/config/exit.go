package config

import (
	"fmt"
	"io"
	"os"
)

// stderr and exit are swapped in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf prints a formatted message to stderr and terminates with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}
