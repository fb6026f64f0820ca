package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ParangStudios/ParangBotGo/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	first := s.Load()
	second := s.Load()

	if len(first) != 0 || len(second) != 0 {
		t.Fatalf("expected empty documents, got %v and %v", first, second)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("reading must not create the file, stat err = %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := s.Load()
	if len(doc) != 0 {
		t.Fatalf("corrupt file should read as empty, got %v", doc)
	}
	// Reading again must be just as harmless.
	if doc := s.Load(); len(doc) != 0 {
		t.Fatalf("second read of corrupt file should read as empty, got %v", doc)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(func(doc Document) {
		doc.Guild("g1").VoiceChannelID = "voice-1"
	})
	if err != nil {
		t.Fatal(err)
	}

	reread := New(s.Path())
	if got := reread.Guild("g1").VoiceChannelID; got != "voice-1" {
		t.Fatalf("voice channel = %q, want %q", got, "voice-1")
	}
}

func TestConcurrentKeywordAdds(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for _, keyword := range []string{"first", "second"} {
		wg.Add(1)
		go func(kw string) {
			defer wg.Done()
			if _, err := s.AddKeyword("g1", kw); err != nil {
				t.Errorf("AddKeyword(%q): %v", kw, err)
			}
		}(keyword)
	}
	wg.Wait()

	got := s.Keywords("g1")
	if len(got) != 2 {
		t.Fatalf("both additions must survive, got %v", got)
	}
}

func TestAddKeywordRejectsDuplicate(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddKeyword("g1", "욕설")
	if err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	added, err = s.AddKeyword("g1", "욕설")
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Fatal("duplicate keyword must be rejected")
	}
	if got := s.Keywords("g1"); len(got) != 1 {
		t.Fatalf("keyword list = %v, want one entry", got)
	}
}

func TestRemoveKeyword(t *testing.T) {
	s := newTestStore(t)
	s.AddKeyword("g1", "a")
	s.AddKeyword("g1", "b")

	removed, err := s.RemoveKeyword("g1", "a")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	if got := s.Keywords("g1"); len(got) != 1 || got[0] != "b" {
		t.Fatalf("keyword list = %v, want [b]", got)
	}

	removed, err = s.RemoveKeyword("g1", "missing")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("removing an absent keyword must report false")
	}
}

func TestSetPunishmentValidation(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		name string
		rule models.Punishment
		want error
	}{
		{"zero threshold", models.Punishment{Type: models.PunishmentKick, Threshold: 0}, ErrInvalidThreshold},
		{"negative threshold", models.Punishment{Type: models.PunishmentBan, Threshold: -1}, ErrInvalidThreshold},
		{"zero timeout duration", models.Punishment{Type: models.PunishmentTimeout, Threshold: 3}, ErrInvalidDuration},
		{"unknown type", models.Punishment{Type: "mute", Threshold: 3}, ErrUnknownType},
	}
	for _, tc := range cases {
		if err := s.SetPunishment("g1", tc.rule); err != tc.want {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	// Nothing invalid may have been persisted.
	if s.Guild("g1").Punishment != nil {
		t.Fatal("invalid rules must not reach the document")
	}

	valid := models.Punishment{Type: models.PunishmentTimeout, Threshold: 3, TimeoutDurationMinutes: 10}
	if err := s.SetPunishment("g1", valid); err != nil {
		t.Fatal(err)
	}
	if got := s.Guild("g1").PunishmentOrDefault(); got != valid {
		t.Fatalf("stored rule = %+v, want %+v", got, valid)
	}
}

func TestDisablePunishmentKeepsWarnings(t *testing.T) {
	s := newTestStore(t)
	s.Update(func(doc Document) {
		g := doc.Guild("g1")
		g.Punishment = &models.Punishment{Type: models.PunishmentKick, Threshold: 3}
		g.WarningCounts = map[string]int{"u1": 2}
	})

	if err := s.DisablePunishment("g1"); err != nil {
		t.Fatal(err)
	}

	cfg := s.Guild("g1")
	if cfg.PunishmentOrDefault().Type != models.PunishmentNone {
		t.Fatalf("punishment = %+v, want disabled", cfg.Punishment)
	}
	if cfg.WarningCounts["u1"] != 2 {
		t.Fatalf("warning counts must survive disabling, got %v", cfg.WarningCounts)
	}
}

func TestResetWarningsRemovesEntry(t *testing.T) {
	s := newTestStore(t)
	s.Update(func(doc Document) {
		doc.Guild("g1").WarningCounts = map[string]int{"u1": 2, "u2": 1}
	})

	existed, err := s.ResetWarnings("g1", "u1")
	if err != nil || !existed {
		t.Fatalf("reset: existed=%v err=%v", existed, err)
	}

	counts := s.Guild("g1").WarningCounts
	if _, ok := counts["u1"]; ok {
		t.Fatal("reset must delete the entry, not zero it")
	}
	if counts["u2"] != 1 {
		t.Fatalf("other users' counts must be untouched, got %v", counts)
	}

	existed, err = s.ResetWarnings("g1", "never-warned")
	if err != nil {
		t.Fatal(err)
	}
	if existed {
		t.Fatal("resetting an absent user must report false")
	}
}

func TestAddVoiceTimeAccumulates(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddVoiceTime("g1", "u1", 12.34); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVoiceTime("g1", "u1", 0.66); err != nil {
		t.Fatal(err)
	}

	got := s.Guild("g1").VoiceTimeTracking["u1"]
	if got != 13.0 {
		t.Fatalf("accumulated time = %v, want 13.0", got)
	}
}

func TestUnknownFieldsSurviveRewrite(t *testing.T) {
	s := newTestStore(t)
	s.Update(func(doc Document) {
		doc.Guild("g1").TextChannelID = "t1"
		doc.Guild("g2").VoiceChannelID = "v2"
	})

	// A mutation of one guild must not drop another guild's data.
	s.SetTextChannel("g1", "t1-new")

	reread := New(s.Path())
	if got := reread.Guild("g2").VoiceChannelID; got != "v2" {
		t.Fatalf("unrelated guild lost data, got %q", got)
	}
	if got := reread.Guild("g1").TextChannelID; got != "t1-new" {
		t.Fatalf("text channel = %q, want t1-new", got)
	}
}
