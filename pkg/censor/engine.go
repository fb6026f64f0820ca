// Package censor implements keyword censorship with escalating punishment.
// A matched message is deleted, logged, and counted against its author; when
// the warning count reaches the guild's threshold the configured punishment
// fires and the counter starts over.
package censor

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/models"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

const (
	colorGold    = 0xF1C40F
	colorDarkRed = 0x992D22
)

// Actions is the slice of the platform the engine needs. Every call can fail
// with a permission or not-found condition that the engine converts into a
// logged, non-fatal outcome.
type Actions interface {
	DeleteMessage(channelID, messageID string) error
	SendMessage(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	SendDM(userID, content string) error
	TimeoutMember(guildID, userID string, duration time.Duration, reason string) error
	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
}

// Message is the part of an incoming message the engine inspects.
type Message struct {
	GuildID   string
	GuildName string
	ChannelID string
	MessageID string
	AuthorID  string
	AuthorBot bool
	Content   string
}

// Engine scans messages against each guild's keyword list.
type Engine struct {
	store     *store.Store
	actions   Actions
	telemetry telemetry.Sink
}

// New creates a censorship engine. sink may be nil.
func New(st *store.Store, actions Actions, sink telemetry.Sink) *Engine {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &Engine{store: st, actions: actions, telemetry: sink}
}

// HandleMessage runs the full censorship pipeline for one message.
func (e *Engine) HandleMessage(msg Message) {
	if msg.AuthorBot || msg.GuildID == "" {
		return
	}

	cfg := e.store.Guild(msg.GuildID)
	keywords := cfg.CensoredKeywords
	if len(keywords) == 0 {
		return
	}

	// First stored keyword that is a literal substring wins; a message with
	// several matching keywords is counted once.
	var matched string
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(msg.Content, keyword) {
			matched = keyword
			break
		}
	}
	if matched == "" {
		return
	}

	logChannel := cfg.TextChannelID

	if err := e.actions.DeleteMessage(msg.ChannelID, msg.MessageID); err != nil {
		if discord.IsNotFoundError(err) {
			// Already gone, nothing to censor.
			return
		}
		if discord.IsPermissionError(err) {
			if logChannel != "" {
				_ = e.actions.SendMessage(logChannel,
					fmt.Sprintf("⚠️ **권한 오류:** <#%s>에서 메시지를 삭제할 수 없습니다.", msg.ChannelID))
			}
		} else {
			logger.Error(fmt.Sprintf("메시지 삭제 실패: %v", err), "Censor")
		}
		// An undeletable message records no warning.
		return
	}

	if logChannel != "" {
		embed := &discordgo.MessageEmbed{
			Title:       "🚫 메시지 검열됨",
			Color:       colorGold,
			Timestamp:   time.Now().Format(time.RFC3339),
			Description: fmt.Sprintf("**작성자:** <@%s>\n**채널:** <#%s>", msg.AuthorID, msg.ChannelID),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "삭제된 메시지", Value: fmt.Sprintf("```%s```", msg.Content), Inline: false},
				{Name: "감지된 키워드", Value: fmt.Sprintf("`%s`", matched), Inline: false},
			},
		}
		if err := e.actions.SendEmbed(logChannel, embed); err != nil {
			logger.Debug(fmt.Sprintf("검열 로그 전송 실패: %v", err), "Censor")
		}
	}

	e.telemetry.Publish(telemetry.NewEvent(telemetry.KindCensorDetected, msg.GuildID, msg.AuthorID, map[string]any{
		"keyword":    matched,
		"channel_id": msg.ChannelID,
	}))

	// No punishment policy configured means no warning bookkeeping at all.
	if cfg.PunishmentOrDefault().Type == models.PunishmentNone {
		return
	}

	// Re-read the live configuration under the store lock so a threshold or
	// punishment change racing with this message cannot be lost.
	var (
		rule      models.Punishment
		count     int
		threshold int
		tracked   bool
	)
	err := e.store.Update(func(doc store.Document) {
		g := doc.Guild(msg.GuildID)
		rule = g.PunishmentOrDefault()
		threshold = rule.Threshold
		if threshold <= 0 {
			return
		}
		if g.WarningCounts == nil {
			g.WarningCounts = make(map[string]int)
		}
		count = g.WarningCounts[msg.AuthorID] + 1
		g.WarningCounts[msg.AuthorID] = count
		if count >= threshold {
			// Punishment fires: the counter is zeroed, not removed.
			g.WarningCounts[msg.AuthorID] = 0
		}
		tracked = true
	})
	if err != nil {
		logger.Error(fmt.Sprintf("경고 횟수 저장 실패: %v", err), "Censor")
		return
	}
	if !tracked {
		return
	}

	if count >= threshold {
		e.punish(msg, rule, threshold, logChannel)
		return
	}
	e.warn(msg, count, threshold, logChannel)
}

// punish dispatches the configured punishment and logs the outcome.
func (e *Engine) punish(msg Message, rule models.Punishment, threshold int, logChannel string) {
	reason := fmt.Sprintf("검열 규칙 위반 (경고 %d회 누적)", threshold)

	var (
		actionLog string
		err       error
	)
	switch rule.Type {
	case models.PunishmentTimeout:
		minutes := rule.TimeoutDurationMinutes
		if minutes <= 0 {
			minutes = 10
		}
		err = e.actions.TimeoutMember(msg.GuildID, msg.AuthorID, time.Duration(minutes)*time.Minute, reason)
		actionLog = fmt.Sprintf("**<@%s>** 님을 `%d`분 동안 타임아웃 처리했습니다.", msg.AuthorID, minutes)
	case models.PunishmentKick:
		err = e.actions.KickMember(msg.GuildID, msg.AuthorID, reason)
		actionLog = fmt.Sprintf("**<@%s>** 님을 서버에서 추방했습니다.", msg.AuthorID)
	case models.PunishmentBan:
		err = e.actions.BanMember(msg.GuildID, msg.AuthorID, reason)
		actionLog = fmt.Sprintf("**<@%s>** 님을 서버에서 차단했습니다.", msg.AuthorID)
	default:
		return
	}

	if err != nil {
		// Not retried; a failed punishment is a logged warning event only.
		if discord.IsPermissionError(err) {
			if logChannel != "" {
				_ = e.actions.SendMessage(logChannel,
					fmt.Sprintf("⚠️ **권한 오류:** <@%s>님에게 처벌을 실행할 수 없습니다. 봇의 역할 순위나 권한을 확인해주세요.", msg.AuthorID))
			}
		} else {
			logger.Error(fmt.Sprintf("처벌 실행 실패: %v", err), "Censor")
		}
		return
	}

	if logChannel != "" {
		embed := &discordgo.MessageEmbed{
			Title:       "⚔️ 자동 처벌 실행",
			Description: actionLog,
			Color:       colorDarkRed,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "사유", Value: reason},
			},
		}
		if err := e.actions.SendEmbed(logChannel, embed); err != nil {
			logger.Debug(fmt.Sprintf("처벌 로그 전송 실패: %v", err), "Censor")
		}
	}

	e.telemetry.Publish(telemetry.NewEvent(telemetry.KindCensorPunished, msg.GuildID, msg.AuthorID, map[string]any{
		"punishment": rule.Type,
		"threshold":  threshold,
	}))
}

// warn notifies the author of the current warning count by DM.
func (e *Engine) warn(msg Message, count, threshold int, logChannel string) {
	dm := fmt.Sprintf(
		"**[ %s ]** 서버에서 검열 키워드 사용이 감지되었습니다.\n> 현재 경고 횟수: **%d/%d**\n> 횟수 초과 시 처벌이 적용될 수 있습니다.",
		msg.GuildName, count, threshold)

	if err := e.actions.SendDM(msg.AuthorID, dm); err != nil {
		// DMs closed is an everyday condition, never fatal.
		if logChannel != "" {
			_ = e.actions.SendMessage(logChannel,
				fmt.Sprintf("ℹ️ <@%s>님에게 DM을 보낼 수 없어 경고를 전달하지 못했습니다.", msg.AuthorID))
		}
	}
}
