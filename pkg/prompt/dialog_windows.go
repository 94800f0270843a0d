//go:build windows

package prompt

import (
	"context"

	"github.com/gonutz/w32"

	"github.com/windowsadmins/wampdoctor/pkg/logging"
)

// Dialog asks with a native message box.
type Dialog struct{}

// Confirm shows a modal Yes/No box. It returns false when ctx ends first;
// the box itself stays until dismissed.
func (Dialog) Confirm(ctx context.Context, title, text string) bool {
	answer := make(chan bool, 1)
	go func() {
		answer <- w32.MessageBox(0, text, title, w32.MB_YESNO|w32.MB_ICONQUESTION) == w32.IDYES
	}()
	select {
	case <-ctx.Done():
		return false
	case ok := <-answer:
		logging.Info("Confirmation answered in dialog", "accepted", ok)
		return ok
	}
}

// Notify shows a modal warning box and waits for it to be dismissed.
func Notify(title, text string) {
	w32.MessageBox(0, text, title, w32.MB_OK|w32.MB_ICONWARNING)
}
