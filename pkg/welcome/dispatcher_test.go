package welcome

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/models"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

func TestSubstitute(t *testing.T) {
	vars := map[string]string{
		"user_mention": "<@42>",
		"server_name":  "파랑 서버",
		"member_count": "7",
	}
	cases := []struct {
		template string
		want     string
	}{
		{"$user_mention 환영!", "<@42> 환영!"},
		{"${server_name}의 ${member_count}번째 멤버", "파랑 서버의 7번째 멤버"},
		{"가격은 $$10 입니다", "가격은 $10 입니다"},
		{"$unknown 그대로", "$unknown 그대로"},
		{"${unknown} 그대로", "${unknown} 그대로"},
		{"끝에 $", "끝에 $"},
		{"${broken", "${broken"},
		{"섞어서 $user_mention / ${server_name}", "섞어서 <@42> / 파랑 서버"},
	}
	for _, tc := range cases {
		if got := Substitute(tc.template, vars); got != tc.want {
			t.Errorf("Substitute(%q) = %q, want %q", tc.template, got, tc.want)
		}
	}
}

type sentEmbed struct {
	channelID string
	embed     *discordgo.MessageEmbed
}

type fakeWelcomeActions struct {
	messages []string
	embeds   []sentEmbed
	channels []string

	failChannel string
	failErr     error
}

func (f *fakeWelcomeActions) SendMessage(channelID, content string) error {
	if channelID == f.failChannel {
		return f.failErr
	}
	f.channels = append(f.channels, channelID)
	f.messages = append(f.messages, content)
	return nil
}

func (f *fakeWelcomeActions) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	if channelID == f.failChannel {
		return f.failErr
	}
	f.channels = append(f.channels, channelID)
	f.embeds = append(f.embeds, sentEmbed{channelID: channelID, embed: embed})
	return nil
}

type welcomeSink struct{ events []telemetry.Event }

func (w *welcomeSink) Publish(evt telemetry.Event) { w.events = append(w.events, evt) }

func newWelcomeStore(t *testing.T, wm *models.WelcomeMessage, logChannelID string) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "config.json"))
	err := s.Update(func(doc store.Document) {
		cfg := doc.Guild("g1")
		cfg.WelcomeMessage = wm
		cfg.TextChannelID = logChannelID
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func sampleMember() Member {
	return Member{
		GuildID:      "g1",
		GuildName:    "파랑 서버",
		GuildIconURL: "https://cdn.example/icons/g1.png",
		UserID:       "42",
		UserName:     "새멤버",
		AvatarURL:    "https://cdn.example/avatars/42.png",
		MemberCount:  7,
	}
}

func TestHandleJoinPlainMessage(t *testing.T) {
	s := newWelcomeStore(t, &models.WelcomeMessage{
		Enabled:   true,
		ChannelID: "wel-1",
		Message:   "$user_name($user_id)님이 ${server_name}에 합류, 현재 $member_count명",
	}, "")
	actions := &fakeWelcomeActions{}
	sink := &welcomeSink{}
	d := New(s, actions, sink)

	d.HandleJoin(sampleMember())

	if len(actions.messages) != 1 {
		t.Fatalf("message count = %d, want 1", len(actions.messages))
	}
	want := "새멤버(42)님이 파랑 서버에 합류, 현재 7명"
	if actions.messages[0] != want {
		t.Fatalf("message = %q, want %q", actions.messages[0], want)
	}
	if actions.channels[0] != "wel-1" {
		t.Fatalf("channel = %q, want wel-1", actions.channels[0])
	}
	if len(sink.events) != 1 || sink.events[0].Kind != telemetry.KindWelcomeSent {
		t.Fatalf("telemetry = %+v", sink.events)
	}
}

func TestHandleJoinEmbed(t *testing.T) {
	s := newWelcomeStore(t, &models.WelcomeMessage{
		Enabled:   true,
		ChannelID: "wel-1",
		Message:   "$user_mention 님, ${server_name}에 오신 것을 환영합니다!",
		UseEmbed:  true,
	}, "")
	actions := &fakeWelcomeActions{}
	d := New(s, actions, nil)

	d.HandleJoin(sampleMember())

	if len(actions.embeds) != 1 {
		t.Fatalf("embed count = %d, want 1", len(actions.embeds))
	}
	embed := actions.embeds[0].embed
	want := "<@42> 님, 파랑 서버에 오신 것을 환영합니다!"
	if embed.Description != want {
		t.Fatalf("description = %q, want %q", embed.Description, want)
	}
	if embed.Color != colorGreen {
		t.Fatalf("color = %#x, want %#x", embed.Color, colorGreen)
	}
	if embed.Author == nil || embed.Author.Name != "파랑 서버에 오신 것을 환영합니다!" {
		t.Fatalf("author = %+v", embed.Author)
	}
	if embed.Author.IconURL != "https://cdn.example/icons/g1.png" {
		t.Fatalf("author icon = %q", embed.Author.IconURL)
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL != "https://cdn.example/avatars/42.png" {
		t.Fatalf("thumbnail = %+v", embed.Thumbnail)
	}
}

func TestHandleJoinIncompleteSettings(t *testing.T) {
	for _, wm := range []*models.WelcomeMessage{
		nil,
		{Enabled: false, ChannelID: "wel-1", Message: "환영!"},
		{Enabled: true, Message: "환영!"},  // no channel configured
		{Enabled: true, ChannelID: "wel-1"}, // no message template stored
	} {
		s := newWelcomeStore(t, wm, "")
		actions := &fakeWelcomeActions{}
		sink := &welcomeSink{}
		d := New(s, actions, sink)

		d.HandleJoin(sampleMember())

		if len(actions.messages)+len(actions.embeds) != 0 {
			t.Fatalf("welcome sent with settings %+v", wm)
		}
		if len(sink.events) != 0 {
			t.Fatalf("telemetry emitted with settings %+v", wm)
		}
	}
}

func TestHandleJoinMirrorsSuccessToLogChannel(t *testing.T) {
	s := newWelcomeStore(t, &models.WelcomeMessage{
		Enabled:   true,
		ChannelID: "wel-1",
		Message:   "$user_mention 환영!",
	}, "log-1")
	actions := &fakeWelcomeActions{}
	d := New(s, actions, nil)

	d.HandleJoin(sampleMember())

	if len(actions.embeds) != 1 {
		t.Fatalf("log embed count = %d, want 1", len(actions.embeds))
	}
	logEntry := actions.embeds[0]
	if logEntry.channelID != "log-1" {
		t.Fatalf("log channel = %q, want log-1", logEntry.channelID)
	}
	if logEntry.embed.Title != "👋 환영 메시지 전송됨" {
		t.Fatalf("log title = %q", logEntry.embed.Title)
	}
	if !strings.Contains(logEntry.embed.Description, "<@42>") || !strings.Contains(logEntry.embed.Description, "<#wel-1>") {
		t.Fatalf("log description = %q", logEntry.embed.Description)
	}
	if len(logEntry.embed.Fields) != 1 || !strings.Contains(logEntry.embed.Fields[0].Value, "<@42> 환영!") {
		t.Fatalf("log fields = %+v", logEntry.embed.Fields)
	}
}

func TestHandleJoinMirrorsFailureToLogChannel(t *testing.T) {
	s := newWelcomeStore(t, &models.WelcomeMessage{
		Enabled:   true,
		ChannelID: "wel-1",
		Message:   "$user_mention 환영!",
	}, "log-1")
	actions := &fakeWelcomeActions{
		failChannel: "wel-1",
		failErr: &discordgo.RESTError{
			Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions},
			Response: &http.Response{StatusCode: http.StatusForbidden},
		},
	}
	sink := &welcomeSink{}
	d := New(s, actions, sink)

	d.HandleJoin(sampleMember())

	if len(actions.messages) != 0 {
		t.Fatalf("welcome delivered despite send failure: %v", actions.messages)
	}
	if len(actions.embeds) != 1 {
		t.Fatalf("log embed count = %d, want 1", len(actions.embeds))
	}
	logEntry := actions.embeds[0]
	if logEntry.channelID != "log-1" {
		t.Fatalf("log channel = %q, want log-1", logEntry.channelID)
	}
	if logEntry.embed.Title != "⚠️ 환영 메시지 전송 실패" {
		t.Fatalf("log title = %q", logEntry.embed.Title)
	}
	if !strings.Contains(logEntry.embed.Description, "권한 부족") {
		t.Fatalf("log description = %q", logEntry.embed.Description)
	}
	if len(sink.events) != 0 {
		t.Fatalf("telemetry emitted on failed delivery: %+v", sink.events)
	}
}
