package store

import (
	"errors"
	"slices"

	"github.com/ParangStudios/ParangBotGo/pkg/models"
)

// Validation failures surfaced to whoever drives the settings panel. Invalid
// values are rejected here and never reach the document.
var (
	ErrInvalidThreshold = errors.New("store: punishment threshold must be a positive integer")
	ErrInvalidDuration  = errors.New("store: timeout duration must be a positive number of minutes")
	ErrUnknownType      = errors.New("store: unknown punishment type")
)

// SetVoiceChannel records the voice channel under surveillance.
func (s *Store) SetVoiceChannel(guildID, channelID string) error {
	return s.Update(func(doc Document) {
		doc.Guild(guildID).VoiceChannelID = channelID
	})
}

// SetTextChannel records the channel receiving log embeds.
func (s *Store) SetTextChannel(guildID, channelID string) error {
	return s.Update(func(doc Document) {
		doc.Guild(guildID).TextChannelID = channelID
	})
}

// AddKeyword appends a censored keyword. Duplicates are rejected; the stored
// order is the scan order.
func (s *Store) AddKeyword(guildID, keyword string) (added bool, err error) {
	err = s.Update(func(doc Document) {
		cfg := doc.Guild(guildID)
		if slices.Contains(cfg.CensoredKeywords, keyword) {
			return
		}
		cfg.CensoredKeywords = append(cfg.CensoredKeywords, keyword)
		added = true
	})
	return added, err
}

// RemoveKeyword deletes a censored keyword, reporting whether it was present.
func (s *Store) RemoveKeyword(guildID, keyword string) (removed bool, err error) {
	err = s.Update(func(doc Document) {
		cfg := doc.Guild(guildID)
		idx := slices.Index(cfg.CensoredKeywords, keyword)
		if idx < 0 {
			return
		}
		cfg.CensoredKeywords = slices.Delete(cfg.CensoredKeywords, idx, idx+1)
		removed = true
	})
	return removed, err
}

// Keywords returns a snapshot of the guild's keyword list.
func (s *Store) Keywords(guildID string) []string {
	return s.Guild(guildID).CensoredKeywords
}

// SetPunishment stores an automatic punishment rule after validating it.
func (s *Store) SetPunishment(guildID string, p models.Punishment) error {
	switch p.Type {
	case models.PunishmentNone:
		return s.DisablePunishment(guildID)
	case models.PunishmentTimeout:
		if p.TimeoutDurationMinutes <= 0 {
			return ErrInvalidDuration
		}
	case models.PunishmentKick, models.PunishmentBan:
		p.TimeoutDurationMinutes = 0
	default:
		return ErrUnknownType
	}
	if p.Threshold <= 0 {
		return ErrInvalidThreshold
	}

	return s.Update(func(doc Document) {
		rule := p
		doc.Guild(guildID).Punishment = &rule
	})
}

// DisablePunishment turns automatic punishment off. Warning counts are kept;
// they simply stop accumulating.
func (s *Store) DisablePunishment(guildID string) error {
	return s.Update(func(doc Document) {
		doc.Guild(guildID).Punishment = &models.Punishment{Type: models.PunishmentNone}
	})
}

// ResetWarnings removes a user's warning entry entirely, distinguishing
// "never warned" from "warned then cleared". Reports whether an entry existed.
func (s *Store) ResetWarnings(guildID, userID string) (existed bool, err error) {
	err = s.Update(func(doc Document) {
		cfg, ok := doc[guildID]
		if !ok || cfg == nil || cfg.WarningCounts == nil {
			return
		}
		if _, ok := cfg.WarningCounts[userID]; !ok {
			return
		}
		delete(cfg.WarningCounts, userID)
		existed = true
	})
	return existed, err
}

// UpdateWelcome applies fn to the guild's welcome-message settings.
func (s *Store) UpdateWelcome(guildID string, fn func(*models.WelcomeMessage)) error {
	return s.Update(func(doc Document) {
		cfg := doc.Guild(guildID)
		if cfg.WelcomeMessage == nil {
			cfg.WelcomeMessage = &models.WelcomeMessage{}
		}
		fn(cfg.WelcomeMessage)
	})
}

// AddVoiceTime adds a completed session's elapsed seconds to the user's
// running total. Totals only ever grow.
func (s *Store) AddVoiceTime(guildID, userID string, seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	return s.Update(func(doc Document) {
		cfg := doc.Guild(guildID)
		if cfg.VoiceTimeTracking == nil {
			cfg.VoiceTimeTracking = make(map[string]float64)
		}
		cfg.VoiceTimeTracking[userID] += seconds
	})
}
