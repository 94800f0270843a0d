//go:build !windows

package prompt

import (
	"context"

	"github.com/windowsadmins/wampdoctor/pkg/logging"
)

// Dialog asks with a native message box. Without one it answers no.
type Dialog struct{}

func (Dialog) Confirm(ctx context.Context, title, text string) bool {
	logging.Warn("No native dialog on this platform, confirmation declined", "question", text)
	return false
}

// Notify is a no-op without a native message box.
func Notify(title, text string) {}
