// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/ParangStudios/ParangBotGo/pkg/database"
	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/store"
	"github.com/ParangStudios/ParangBotGo/pkg/voicetrack"
)

// SetupAPIRoutes sets up the API routes.
func SetupAPIRoutes(s *Server, st *store.Store) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/guilds/:id/config", guildConfigHandler(st))
		api.GET("/guilds/:id/ranking", guildRankingHandler(st))
	}
}

// statusHandler returns the bot and database status.
func statusHandler(c *gin.Context) {
	client := discord.Get()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	resp := gin.H{
		"status": "ok",
		"bot": gin.H{
			"isOnline": botOnline,
		},
	}

	if db := database.Get(); db != nil {
		dbStatus, dbOnline := db.GetStatus()
		resp["database"] = gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// healthHandler returns a simple health check response.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ParangBot Go is running",
	})
}

// botInfoHandler returns information about the bot.
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "봇이 현재 오프라인 상태입니다.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// guildConfigHandler returns a read-only summary of one guild's settings.
// Keyword contents stay private; only the count is exposed.
func guildConfigHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := st.Guild(c.Param("id"))
		punishment := cfg.PunishmentOrDefault()
		welcome := cfg.WelcomeOrDefault()

		c.JSON(http.StatusOK, gin.H{
			"voice_channel_id": cfg.VoiceChannelID,
			"text_channel_id":  cfg.TextChannelID,
			"keyword_count":    len(cfg.CensoredKeywords),
			"punishment": gin.H{
				"type":      punishment.Type,
				"threshold": punishment.Threshold,
			},
			"welcome": gin.H{
				"enabled":   welcome.Enabled,
				"use_embed": welcome.UseEmbed,
			},
		})
	}
}

// rankingEntry is one row of the voice-time leaderboard.
type rankingEntry struct {
	UserID    string  `json:"user_id"`
	Seconds   float64 `json:"seconds"`
	Formatted string  `json:"formatted"`
}

// guildRankingHandler returns the guild's voice-time leaderboard, longest
// stay first.
func guildRankingHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals := st.Guild(c.Param("id")).VoiceTimeTracking

		ranking := make([]rankingEntry, 0, len(totals))
		for userID, seconds := range totals {
			ranking = append(ranking, rankingEntry{
				UserID:    userID,
				Seconds:   seconds,
				Formatted: voicetrack.FormatDuration(seconds),
			})
		}
		sort.Slice(ranking, func(i, j int) bool {
			return ranking[i].Seconds > ranking[j].Seconds
		})

		c.JSON(http.StatusOK, gin.H{
			"count":   len(ranking),
			"ranking": ranking,
		})
	}
}
