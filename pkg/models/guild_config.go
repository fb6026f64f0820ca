// Package models defines the persisted data structures of the bot.
package models

// Punishment types applied when a user's warning count reaches the threshold.
const (
	PunishmentNone    = "none"
	PunishmentTimeout = "timeout"
	PunishmentKick    = "kick"
	PunishmentBan     = "ban"
)

// Punishment describes the automatic punishment rule of a guild.
type Punishment struct {
	Type                   string `json:"type"`
	Threshold              int    `json:"threshold"`
	TimeoutDurationMinutes int    `json:"timeout_duration_minutes"`
}

// WelcomeMessage describes the new-member greeting of a guild.
type WelcomeMessage struct {
	Enabled   bool   `json:"enabled"`
	ChannelID string `json:"channel_id,omitempty"`
	Message   string `json:"message,omitempty"`
	UseEmbed  bool   `json:"use_embed"`
}

// GuildConfig holds every per-guild setting. All fields are optional; a guild
// that is absent from the document behaves exactly like one present with all
// fields at their zero value.
type GuildConfig struct {
	VoiceChannelID    string             `json:"voice_channel_id,omitempty"`
	TextChannelID     string             `json:"text_channel_id,omitempty"`
	CensoredKeywords  []string           `json:"censored_keywords,omitempty"`
	Punishment        *Punishment        `json:"punishment,omitempty"`
	WarningCounts     map[string]int     `json:"warning_counts,omitempty"`
	VoiceTimeTracking map[string]float64 `json:"voice_time_tracking,omitempty"`
	WelcomeMessage    *WelcomeMessage    `json:"welcome_message,omitempty"`
}

// PunishmentOrDefault returns the configured punishment rule, or a disabled
// rule when none has been set.
func (g *GuildConfig) PunishmentOrDefault() Punishment {
	if g == nil || g.Punishment == nil {
		return Punishment{Type: PunishmentNone}
	}
	return *g.Punishment
}

// WelcomeOrDefault returns the configured welcome message, or a disabled one
// when none has been set.
func (g *GuildConfig) WelcomeOrDefault() WelcomeMessage {
	if g == nil || g.WelcomeMessage == nil {
		return WelcomeMessage{}
	}
	return *g.WelcomeMessage
}
