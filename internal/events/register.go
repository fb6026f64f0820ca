// Package events wires gateway events to the bot's engines.
// Handlers are organized by category (guild, member, message, voice).
package events

import (
	"github.com/ParangStudios/ParangBotGo/pkg/censor"
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/voicetrack"
	"github.com/ParangStudios/ParangBotGo/pkg/welcome"
)

// Handlers bundles the engines the event layer dispatches into.
type Handlers struct {
	Censor  *censor.Engine
	Voice   *voicetrack.Tracker
	Welcome *welcome.Dispatcher
}

// RegisterAll registers all events with the Discord client.
func RegisterAll(client *discord.ExtendedClient, h *Handlers) {
	logger.System("📋 이벤트 핸들러를 등록합니다...", "Events")

	RegisterReadyEvent(client)
	RegisterGuildEvents(client)
	RegisterMemberEvents(client, h)
	RegisterMessageEvents(client, h)
	RegisterVoiceEvents(client, h)

	logger.Success("✅ 모든 이벤트 핸들러 등록 완료", "Events")
}
