package app

import (
	"github.com/parley-irc/parley/internal/logger"
	"github.com/parley-irc/parley/internal/notification"
)

func notifyMention(nick, target, text string) {
	if err := notification.Highlighted(nick, target, text); err != nil {
		logger.Warn("desktop notification failed: %v", err)
	}
}
