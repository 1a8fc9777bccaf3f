package telegram

import (
	"testing"

	"github.com/m3rciful/contentbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestRegistryListsVisibleCommands(t *testing.T) {
	noop := func(tele.Context) error { return nil }
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "start"})
	reg.RegisterCommand("/help", commands.Command{Handler: noop, Description: "help"})
	reg.RegisterCommand("/makeadmin", commands.Command{Handler: noop, Description: "promote", OwnerOnly: true})
	reg.RegisterCommand("/myid", commands.Command{Handler: noop, Description: "id", Hidden: true})
	reg.RegisterCommand("nope", commands.Command{Handler: noop, Description: "bad"})
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})

	if got := len(reg.Commands()); got != 4 {
		t.Fatalf("registered %d commands, want 4", got)
	}
	visible := reg.ListCommands(true)
	if len(visible) != 2 || visible[0].Text != "help" || visible[1].Text != "start" {
		t.Fatalf("visible = %+v", visible)
	}
	if _, cmd, ok := reg.LookupCommand("start"); !ok || cmd.Description != "start" {
		t.Fatalf("lookup start = %+v ok=%v", cmd, ok)
	}
	if len(reg.ListCommands(false)) != 4 {
		t.Fatalf("full list should include hidden commands")
	}
}
