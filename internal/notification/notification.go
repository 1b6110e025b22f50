// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/parley-irc/parley/internal/logger"
)

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	// Use empty string for icon - beeep handles platform defaults
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: failed to send: %v", err)
	}
	return err
}

// Highlighted sends a notification that a message mentioned our nick.
func Highlighted(nick, target, text string) error {
	return Send(fmt.Sprintf("%s in %s", nick, target), text)
}
