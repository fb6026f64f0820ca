package voicetrack

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

const (
	colorGreen = 0x2ECC71
	colorRed   = 0xE74C3C
)

// Actions is the outbound surface the tracker needs.
type Actions interface {
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

// Update is one voice-state transition of a member. An empty channel ID means
// the member is not connected to voice on that side of the transition.
type Update struct {
	GuildID         string
	UserID          string
	BeforeChannelID string
	AfterChannelID  string
}

// Tracker watches one voice channel per guild. Open sessions live only in
// memory; a restart forgets who is currently connected, and only completed
// sessions reach the persistent totals.
type Tracker struct {
	store     *store.Store
	actions   Actions
	telemetry telemetry.Sink
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time // "guildID:userID" -> join time
}

// New creates a tracker. sink may be nil.
func New(st *store.Store, actions Actions, sink telemetry.Sink) *Tracker {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &Tracker{
		store:     st,
		actions:   actions,
		telemetry: sink,
		now:       time.Now,
		sessions:  make(map[string]time.Time),
	}
}

func sessionKey(guildID, userID string) string {
	return guildID + ":" + userID
}

// HandleUpdate processes one voice-state transition. Only the edges between
// "not in voice" and the guild's watched channel count; moves between two
// voice channels are ignored.
func (t *Tracker) HandleUpdate(upd Update) {
	cfg := t.store.Guild(upd.GuildID)
	target := cfg.VoiceChannelID
	if target == "" {
		return
	}

	switch {
	case upd.BeforeChannelID == "" && upd.AfterChannelID == target:
		t.handleJoin(upd, cfg.TextChannelID)
	case upd.BeforeChannelID == target && upd.AfterChannelID == "":
		t.handleLeave(upd, cfg.TextChannelID)
	}
}

func (t *Tracker) handleJoin(upd Update, logChannel string) {
	t.mu.Lock()
	t.sessions[sessionKey(upd.GuildID, upd.UserID)] = t.now()
	t.mu.Unlock()

	if logChannel != "" {
		embed := &discordgo.MessageEmbed{
			Title:       "🎙️ 음성 채널 입장",
			Description: fmt.Sprintf("<@%s> 님이 <#%s> 채널에 입장했습니다.", upd.UserID, upd.AfterChannelID),
			Color:       colorGreen,
			Timestamp:   t.now().Format(time.RFC3339),
		}
		if err := t.actions.SendEmbed(logChannel, embed); err != nil {
			logger.Debug(fmt.Sprintf("입장 로그 전송 실패: %v", err), "VoiceTrack")
		}
	}

	t.telemetry.Publish(telemetry.NewEvent(telemetry.KindVoiceJoin, upd.GuildID, upd.UserID, map[string]any{
		"channel_id": upd.AfterChannelID,
	}))
}

func (t *Tracker) handleLeave(upd Update, logChannel string) {
	key := sessionKey(upd.GuildID, upd.UserID)

	t.mu.Lock()
	joinedAt, ok := t.sessions[key]
	if ok {
		delete(t.sessions, key)
	}
	t.mu.Unlock()
	if !ok {
		// Joined before the bot started; there is no session to close.
		return
	}

	elapsed := t.now().Sub(joinedAt).Seconds()
	if err := t.store.AddVoiceTime(upd.GuildID, upd.UserID, elapsed); err != nil {
		logger.Error(fmt.Sprintf("음성 체류 시간 저장 실패: %v", err), "VoiceTrack")
	}

	if logChannel != "" {
		embed := &discordgo.MessageEmbed{
			Title:       "🚫 음성 채널 퇴장",
			Description: fmt.Sprintf("<@%s> 님이 <#%s> 채널에서 퇴장했습니다.", upd.UserID, upd.BeforeChannelID),
			Color:       colorRed,
			Timestamp:   t.now().Format(time.RFC3339),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "체류 시간", Value: FormatDuration(elapsed), Inline: true},
			},
		}
		if err := t.actions.SendEmbed(logChannel, embed); err != nil {
			logger.Debug(fmt.Sprintf("퇴장 로그 전송 실패: %v", err), "VoiceTrack")
		}
	}

	t.telemetry.Publish(telemetry.NewEvent(telemetry.KindVoiceLeave, upd.GuildID, upd.UserID, map[string]any{
		"channel_id": upd.BeforeChannelID,
		"seconds":    elapsed,
	}))
}

// OpenSessions reports how many sessions are currently being timed.
func (t *Tracker) OpenSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
