package utils

import (
	"fmt"

	"github.com/ParangStudios/ParangBotGo/pkg/discord"
	"github.com/ParangStudios/ParangBotGo/pkg/errors"
)

// createPingCommand creates the /핑 command.
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"핑",
		"봇의 응답 속도를 확인합니다",
		"utils",
		pingHandler,
	)
}

// pingHandler handles the /핑 command.
func pingHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
		ctx.Reply(fmt.Sprintf("🏓 퐁! 응답 속도: %dms", latency))
	}()
	return nil
}
