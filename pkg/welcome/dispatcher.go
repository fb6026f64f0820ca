package welcome

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

const (
	colorGreen = 0x2ECC71
	colorBlue  = 0x3498DB
	colorRed   = 0xE74C3C
)

// Actions is the outbound surface the dispatcher needs.
type Actions interface {
	SendMessage(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

// Member describes a freshly joined member.
type Member struct {
	GuildID      string
	GuildName    string
	GuildIconURL string
	UserID       string
	UserName     string
	AvatarURL    string
	MemberCount  int
}

// Dispatcher sends welcome messages according to each guild's settings.
type Dispatcher struct {
	store     *store.Store
	actions   Actions
	telemetry telemetry.Sink
}

// New creates a dispatcher. sink may be nil.
func New(st *store.Store, actions Actions, sink telemetry.Sink) *Dispatcher {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &Dispatcher{store: st, actions: actions, telemetry: sink}
}

// Vars returns the placeholder set available to welcome templates.
func Vars(m Member) map[string]string {
	mention := fmt.Sprintf("<@%s>", m.UserID)
	return map[string]string{
		"user_mention": mention,
		"user_name":    m.UserName,
		"user_id":      m.UserID,
		"server_name":  m.GuildName,
		"server_id":    m.GuildID,
		"member_count": strconv.Itoa(m.MemberCount),
		// Short aliases.
		"user":   mention,
		"server": m.GuildName,
	}
}

// HandleJoin greets the member if the guild has the welcome message enabled.
// Without a channel and a stored template there is nothing to send.
func (d *Dispatcher) HandleJoin(m Member) {
	guildCfg := d.store.Guild(m.GuildID)
	cfg := guildCfg.WelcomeOrDefault()
	if !cfg.Enabled || cfg.ChannelID == "" || cfg.Message == "" {
		return
	}

	content := Substitute(cfg.Message, Vars(m))
	logChannel := guildCfg.TextChannelID

	var err error
	if cfg.UseEmbed {
		embed := &discordgo.MessageEmbed{
			Description: content,
			Color:       colorGreen,
			Timestamp:   time.Now().Format(time.RFC3339),
			Author: &discordgo.MessageEmbedAuthor{
				Name:    fmt.Sprintf("%s에 오신 것을 환영합니다!", m.GuildName),
				IconURL: m.GuildIconURL,
			},
			Thumbnail: &discordgo.MessageEmbedThumbnail{URL: m.AvatarURL},
		}
		err = d.actions.SendEmbed(cfg.ChannelID, embed)
	} else {
		err = d.actions.SendMessage(cfg.ChannelID, content)
	}
	if err != nil {
		reason := err.Error()
		if discord.IsPermissionError(err) {
			reason = "권한 부족"
			logger.Warn(fmt.Sprintf("환영 메시지 전송 권한이 없습니다: 채널 %s", cfg.ChannelID), "Welcome")
		} else {
			logger.Error(fmt.Sprintf("환영 메시지 전송 실패: %v", err), "Welcome")
		}
		if logChannel != "" {
			failEmbed := &discordgo.MessageEmbed{
				Title:       "⚠️ 환영 메시지 전송 실패",
				Description: fmt.Sprintf("**멤버:** <@%s>\n**사유:** %s", m.UserID, reason),
				Color:       colorRed,
				Timestamp:   time.Now().Format(time.RFC3339),
			}
			if err := d.actions.SendEmbed(logChannel, failEmbed); err != nil {
				logger.Debug(fmt.Sprintf("환영 실패 로그 전송 실패: %v", err), "Welcome")
			}
		}
		return
	}

	if logChannel != "" {
		logEmbed := &discordgo.MessageEmbed{
			Title:       "👋 환영 메시지 전송됨",
			Description: fmt.Sprintf("**멤버:** <@%s> (%s)\n**채널:** <#%s>", m.UserID, m.UserID, cfg.ChannelID),
			Color:       colorBlue,
			Timestamp:   time.Now().Format(time.RFC3339),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "전송된 메시지", Value: fmt.Sprintf("```%s```", truncate(content, 1000)), Inline: false},
			},
		}
		if err := d.actions.SendEmbed(logChannel, logEmbed); err != nil {
			logger.Debug(fmt.Sprintf("환영 로그 전송 실패: %v", err), "Welcome")
		}
	}

	d.telemetry.Publish(telemetry.NewEvent(telemetry.KindWelcomeSent, m.GuildID, m.UserID, map[string]any{
		"channel_id": cfg.ChannelID,
		"embed":      cfg.UseEmbed,
	}))
}

// truncate limits s to n characters for embed field bounds.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
