//go:build windows

package utils

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// CommandLineArgs returns the arguments after the program name, split from
// the raw Windows command line with CommandLineToArgv. Quoted paths with
// trailing backslashes survive intact. It falls back to os.Args.
func CommandLineArgs() []string {
	line := windows.GetCommandLine()
	if line == nil {
		return os.Args[1:]
	}
	var argc int32
	argv, err := windows.CommandLineToArgv(line, &argc)
	if err != nil || argv == nil || argc < 1 {
		return os.Args[1:]
	}
	defer windows.LocalFree(windows.Handle(uintptr(unsafe.Pointer(argv))))

	ptrs := unsafe.Slice((**uint16)(unsafe.Pointer(argv)), argc)
	args := make([]string, 0, argc-1)
	for _, p := range ptrs[1:] {
		if p != nil {
			args = append(args, windows.UTF16PtrToString(p))
		}
	}
	return args
}
