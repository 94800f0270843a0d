//go:build !windows

package installer

import "os/exec"

func hideConsoleWindow(*exec.Cmd) {}
