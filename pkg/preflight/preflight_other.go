//go:build !windows

package preflight

import "context"

func isElevated() bool { return false }

func collectFacts(context.Context) (Facts, error) {
	return Facts{}, ErrUnsupported
}
