//go:build !windows

package utils

import "os"

// CommandLineArgs returns the arguments after the program name.
func CommandLineArgs() []string {
	return os.Args[1:]
}
