package censor

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ParangStudios/ParangBotGo/pkg/models"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

type timeoutCall struct {
	guildID  string
	userID   string
	duration time.Duration
	reason   string
}

type fakeActions struct {
	deleteErr error
	dmErr     error

	deleted  []string
	messages []string
	embeds   []*discordgo.MessageEmbed
	dms      []string
	timeouts []timeoutCall
	kicks    []string
	bans     []string
}

func (f *fakeActions) DeleteMessage(channelID, messageID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeActions) SendMessage(channelID, content string) error {
	f.messages = append(f.messages, content)
	return nil
}

func (f *fakeActions) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}

func (f *fakeActions) SendDM(userID, content string) error {
	if f.dmErr != nil {
		return f.dmErr
	}
	f.dms = append(f.dms, content)
	return nil
}

func (f *fakeActions) TimeoutMember(guildID, userID string, duration time.Duration, reason string) error {
	f.timeouts = append(f.timeouts, timeoutCall{guildID, userID, duration, reason})
	return nil
}

func (f *fakeActions) KickMember(guildID, userID, reason string) error {
	f.kicks = append(f.kicks, userID)
	return nil
}

func (f *fakeActions) BanMember(guildID, userID, reason string) error {
	f.bans = append(f.bans, userID)
	return nil
}

type captureSink struct{ events []telemetry.Event }

func (c *captureSink) Publish(evt telemetry.Event) { c.events = append(c.events, evt) }

func restError(code, status int) error {
	return &discordgo.RESTError{
		Message:  &discordgo.APIErrorMessage{Code: code},
		Response: &http.Response{StatusCode: status},
	}
}

func newCensorStore(t *testing.T, punishment *models.Punishment) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "config.json"))
	err := s.Update(func(doc store.Document) {
		g := doc.Guild("g1")
		g.TextChannelID = "log-1"
		g.CensoredKeywords = []string{"금지어", "나쁜말"}
		g.Punishment = punishment
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func message(content string) Message {
	return Message{
		GuildID:   "g1",
		GuildName: "테스트 서버",
		ChannelID: "chat-1",
		MessageID: "m1",
		AuthorID:  "u1",
		Content:   content,
	}
}

func TestEscalationToTimeout(t *testing.T) {
	s := newCensorStore(t, &models.Punishment{
		Type: models.PunishmentTimeout, Threshold: 3, TimeoutDurationMinutes: 10,
	})
	actions := &fakeActions{}
	sink := &captureSink{}
	engine := New(s, actions, sink)

	engine.HandleMessage(message("금지어 포함"))
	engine.HandleMessage(message("또 금지어"))

	if len(actions.dms) != 2 {
		t.Fatalf("dm count = %d, want 2 warnings", len(actions.dms))
	}
	wantFirst := "현재 경고 횟수: **1/3**"
	wantSecond := "현재 경고 횟수: **2/3**"
	if !contains(actions.dms[0], wantFirst) || !contains(actions.dms[1], wantSecond) {
		t.Fatalf("dm contents = %q", actions.dms)
	}
	if len(actions.timeouts) != 0 {
		t.Fatal("no punishment before the threshold")
	}

	// Third strike punishes and zeroes the counter.
	engine.HandleMessage(message("세 번째 금지어"))
	if len(actions.timeouts) != 1 {
		t.Fatalf("timeout count = %d, want 1", len(actions.timeouts))
	}
	call := actions.timeouts[0]
	if call.duration != 10*time.Minute {
		t.Fatalf("timeout duration = %v, want 10m", call.duration)
	}
	if call.reason != "검열 규칙 위반 (경고 3회 누적)" {
		t.Fatalf("audit reason = %q", call.reason)
	}
	if got, ok := s.Guild("g1").WarningCounts["u1"]; !ok || got != 0 {
		t.Fatalf("counter after punishment = %v (present=%v), want 0", got, ok)
	}

	// The cycle restarts at 1/3.
	engine.HandleMessage(message("네 번째 금지어"))
	if len(actions.dms) != 3 || !contains(actions.dms[2], wantFirst) {
		t.Fatalf("dm after reset = %q", actions.dms)
	}

	var punished int
	for _, evt := range sink.events {
		if evt.Kind == telemetry.KindCensorPunished {
			punished++
		}
	}
	if punished != 1 {
		t.Fatalf("punished events = %d, want 1", punished)
	}
}

func TestFirstStoredKeywordWins(t *testing.T) {
	s := newCensorStore(t, nil)
	actions := &fakeActions{}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("나쁜말 그리고 금지어"))

	if len(actions.embeds) != 1 {
		t.Fatalf("embed count = %d, want 1", len(actions.embeds))
	}
	// Scan order is storage order, not position in the message.
	if got := actions.embeds[0].Fields[1].Value; got != "`금지어`" {
		t.Fatalf("detected keyword = %q, want 금지어", got)
	}
}

func TestMatchingIsCaseSensitive(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "config.json"))
	s.Update(func(doc store.Document) {
		doc.Guild("g1").CensoredKeywords = []string{"Forbidden"}
	})
	actions := &fakeActions{}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("forbidden"))
	if len(actions.deleted) != 0 {
		t.Fatal("matching must be case sensitive")
	}

	engine.HandleMessage(message("say Forbidden word"))
	if len(actions.deleted) != 1 {
		t.Fatal("substring match expected")
	}
}

func TestBotAuthorIgnored(t *testing.T) {
	s := newCensorStore(t, nil)
	actions := &fakeActions{}
	engine := New(s, actions, nil)

	msg := message("금지어")
	msg.AuthorBot = true
	engine.HandleMessage(msg)

	if len(actions.deleted) != 0 {
		t.Fatal("bot messages are never censored")
	}
}

func TestDeletePermissionFailureRecordsNoWarning(t *testing.T) {
	s := newCensorStore(t, &models.Punishment{Type: models.PunishmentKick, Threshold: 3})
	actions := &fakeActions{
		deleteErr: restError(discordgo.ErrCodeMissingPermissions, http.StatusForbidden),
	}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("금지어"))

	if len(actions.messages) != 1 || !contains(actions.messages[0], "권한 오류") {
		t.Fatalf("permission notice = %q", actions.messages)
	}
	if len(actions.dms) != 0 {
		t.Fatal("an undeletable message must not warn the author")
	}
	if counts := s.Guild("g1").WarningCounts; len(counts) != 0 {
		t.Fatalf("warning counts = %v, want none", counts)
	}
}

func TestDeleteOfVanishedMessageIsSilent(t *testing.T) {
	s := newCensorStore(t, nil)
	actions := &fakeActions{
		deleteErr: restError(discordgo.ErrCodeUnknownMessage, http.StatusNotFound),
	}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("금지어"))

	if len(actions.messages) != 0 || len(actions.embeds) != 0 {
		t.Fatal("a message that is already gone produces no output")
	}
}

func TestClosedDMStillCountsWarning(t *testing.T) {
	s := newCensorStore(t, &models.Punishment{Type: models.PunishmentBan, Threshold: 3})
	actions := &fakeActions{
		dmErr: restError(discordgo.ErrCodeCannotSendMessagesToThisUser, http.StatusForbidden),
	}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("금지어"))

	if got := s.Guild("g1").WarningCounts["u1"]; got != 1 {
		t.Fatalf("warning count = %d, want 1 despite closed DMs", got)
	}
	found := false
	for _, m := range actions.messages {
		if contains(m, "DM을 보낼 수 없어") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DM-failure notice, got %q", actions.messages)
	}
}

func TestNoPunishmentMeansNoBookkeeping(t *testing.T) {
	s := newCensorStore(t, nil)
	actions := &fakeActions{}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("금지어"))

	if len(actions.deleted) != 1 {
		t.Fatal("the message is still deleted")
	}
	if len(actions.dms) != 0 {
		t.Fatal("no warning DM without a punishment policy")
	}
	if counts := s.Guild("g1").WarningCounts; len(counts) != 0 {
		t.Fatalf("warning counts = %v, want none", counts)
	}
}

func TestTimeoutDefaultsToTenMinutes(t *testing.T) {
	s := newCensorStore(t, &models.Punishment{Type: models.PunishmentTimeout, Threshold: 1})
	actions := &fakeActions{}
	engine := New(s, actions, nil)

	engine.HandleMessage(message("금지어"))

	if len(actions.timeouts) != 1 || actions.timeouts[0].duration != 10*time.Minute {
		t.Fatalf("timeouts = %+v, want one 10m timeout", actions.timeouts)
	}
}

func TestKickAndBanDispatch(t *testing.T) {
	for _, tc := range []struct {
		ptype string
		check func(*fakeActions) int
	}{
		{models.PunishmentKick, func(f *fakeActions) int { return len(f.kicks) }},
		{models.PunishmentBan, func(f *fakeActions) int { return len(f.bans) }},
	} {
		s := newCensorStore(t, &models.Punishment{Type: tc.ptype, Threshold: 1})
		actions := &fakeActions{}
		engine := New(s, actions, nil)

		engine.HandleMessage(message("금지어"))

		if tc.check(actions) != 1 {
			t.Errorf("%s: punishment not dispatched", tc.ptype)
		}
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
