// Package moderation provides the censorship keyword, punishment and warning
// management commands.
package moderation

import (
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

// RegisterModerationCommands registers the moderation commands.
func RegisterModerationCommands(client *discord.ExtendedClient, st *store.Store, sink telemetry.Sink) {
	client.CommandHandler.RegisterCommand(createCensorAddCommand(st))
	client.CommandHandler.RegisterCommand(createCensorRemoveCommand(st))
	client.CommandHandler.RegisterCommand(createCensorListCommand(st))
	client.CommandHandler.RegisterCommand(createPunishmentCommand(st))
	client.CommandHandler.RegisterCommand(createResetWarningsCommand(st, sink))
}
