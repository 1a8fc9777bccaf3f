package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
// OwnerOnly commands are restricted to the configured operator account and
// never published in the command menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	OwnerOnly   bool
	Hidden      bool
}
