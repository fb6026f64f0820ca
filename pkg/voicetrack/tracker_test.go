package voicetrack

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

type fakeVoiceActions struct {
	embeds []struct {
		channelID string
		embed     *discordgo.MessageEmbed
	}
}

func (f *fakeVoiceActions) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, struct {
		channelID string
		embed     *discordgo.MessageEmbed
	}{channelID, embed})
	return nil
}

type recordingSink struct{ events []telemetry.Event }

func (r *recordingSink) Publish(evt telemetry.Event) { r.events = append(r.events, evt) }

func newTrackedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "config.json"))
	err := s.Update(func(doc store.Document) {
		g := doc.Guild("g1")
		g.VoiceChannelID = "voice-1"
		g.TextChannelID = "log-1"
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestJoinThenLeaveAccumulates(t *testing.T) {
	s := newTrackedStore(t)
	actions := &fakeVoiceActions{}
	sink := &recordingSink{}
	tracker := New(s, actions, sink)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	tracker.now = func() time.Time { return current }

	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", AfterChannelID: "voice-1"})
	if tracker.OpenSessions() != 1 {
		t.Fatalf("open sessions = %d, want 1", tracker.OpenSessions())
	}

	current = base.Add(12340 * time.Millisecond)
	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", BeforeChannelID: "voice-1"})

	if tracker.OpenSessions() != 0 {
		t.Fatalf("open sessions = %d, want 0", tracker.OpenSessions())
	}
	got := s.Guild("g1").VoiceTimeTracking["u1"]
	if math.Abs(got-12.34) > 1e-9 {
		t.Fatalf("accumulated seconds = %v, want 12.34", got)
	}

	if len(actions.embeds) != 2 {
		t.Fatalf("embed count = %d, want join + leave", len(actions.embeds))
	}
	join, leave := actions.embeds[0], actions.embeds[1]
	if join.channelID != "log-1" || join.embed.Title != "🎙️ 음성 채널 입장" {
		t.Fatalf("join embed = %q in %q", join.embed.Title, join.channelID)
	}
	if leave.embed.Title != "🚫 음성 채널 퇴장" {
		t.Fatalf("leave embed title = %q", leave.embed.Title)
	}
	if len(leave.embed.Fields) != 1 || leave.embed.Fields[0].Value != "12.34초" {
		t.Fatalf("leave embed fields = %+v", leave.embed.Fields)
	}

	if len(sink.events) != 2 || sink.events[0].Kind != telemetry.KindVoiceJoin || sink.events[1].Kind != telemetry.KindVoiceLeave {
		t.Fatalf("telemetry events = %+v", sink.events)
	}
}

func TestUnwatchedChannelIgnored(t *testing.T) {
	s := newTrackedStore(t)
	tracker := New(s, &fakeVoiceActions{}, nil)

	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", AfterChannelID: "other-voice"})
	if tracker.OpenSessions() != 0 {
		t.Fatal("joining an unwatched channel must not open a session")
	}
}

func TestMoveBetweenChannelsIgnored(t *testing.T) {
	s := newTrackedStore(t)
	tracker := New(s, &fakeVoiceActions{}, nil)

	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", AfterChannelID: "voice-1"})

	// Moving from the watched channel to another channel is not a leave.
	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", BeforeChannelID: "voice-1", AfterChannelID: "other-voice"})
	if tracker.OpenSessions() != 1 {
		t.Fatal("a move must not close the session")
	}
	if got := s.Guild("g1").VoiceTimeTracking["u1"]; got != 0 {
		t.Fatalf("no time may be recorded on a move, got %v", got)
	}
}

func TestLeaveWithoutSessionIsSilent(t *testing.T) {
	s := newTrackedStore(t)
	actions := &fakeVoiceActions{}
	tracker := New(s, actions, nil)

	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", BeforeChannelID: "voice-1"})

	if got := s.Guild("g1").VoiceTimeTracking["u1"]; got != 0 {
		t.Fatalf("no time may be recorded without a session, got %v", got)
	}
	if len(actions.embeds) != 0 {
		t.Fatalf("no embed may be sent without a session, got %d", len(actions.embeds))
	}
}

func TestNoWatchedChannelConfigured(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "config.json"))
	tracker := New(s, &fakeVoiceActions{}, nil)

	tracker.HandleUpdate(Update{GuildID: "g1", UserID: "u1", AfterChannelID: "voice-1"})
	if tracker.OpenSessions() != 0 {
		t.Fatal("tracking requires a configured voice channel")
	}
}
