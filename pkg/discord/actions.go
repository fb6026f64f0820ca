package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// SessionActions adapts a discordgo session to the narrow action interfaces
// the engines depend on. Keeping the engines off the concrete session lets
// their tests run against fakes.
type SessionActions struct {
	Session *discordgo.Session
}

// NewSessionActions wraps a session.
func NewSessionActions(session *discordgo.Session) *SessionActions {
	return &SessionActions{Session: session}
}

// SendMessage sends a plain message to a channel.
func (a *SessionActions) SendMessage(channelID, content string) error {
	_, err := a.Session.ChannelMessageSend(channelID, content)
	return err
}

// SendEmbed sends an embed to a channel.
func (a *SessionActions) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := a.Session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// SendDM opens (or reuses) the DM channel with a user and sends a message.
func (a *SessionActions) SendDM(userID, content string) error {
	channel, err := a.Session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = a.Session.ChannelMessageSend(channel.ID, content)
	return err
}

// DeleteMessage removes a message from a channel.
func (a *SessionActions) DeleteMessage(channelID, messageID string) error {
	return a.Session.ChannelMessageDelete(channelID, messageID)
}

// TimeoutMember times a member out for the given duration.
func (a *SessionActions) TimeoutMember(guildID, userID string, duration time.Duration, reason string) error {
	until := time.Now().Add(duration)
	return a.Session.GuildMemberTimeout(guildID, userID, &until, discordgo.WithAuditLogReason(reason))
}

// KickMember removes a member from the guild.
func (a *SessionActions) KickMember(guildID, userID, reason string) error {
	return a.Session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// BanMember permanently bans a member from the guild.
func (a *SessionActions) BanMember(guildID, userID, reason string) error {
	return a.Session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}
