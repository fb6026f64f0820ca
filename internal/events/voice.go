package events

import (
	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
	"github.com/ParangStudios/ParangBotGo/pkg/voicetrack"
)

// RegisterVoiceEvents registers voice-state handlers.
func RegisterVoiceEvents(client *discord.ExtendedClient, h *Handlers) {
	client.Session.AddHandler(func(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
		defer errors.RecoverMiddleware()()

		// Bots hold no sessions.
		if member := v.Member; member != nil && member.User != nil && member.User.Bot {
			return
		}

		before := ""
		if v.BeforeUpdate != nil {
			before = v.BeforeUpdate.ChannelID
		}

		h.Voice.HandleUpdate(voicetrack.Update{
			GuildID:         v.GuildID,
			UserID:          v.UserID,
			BeforeChannelID: before,
			AfterChannelID:  v.ChannelID,
		})
	})
}
