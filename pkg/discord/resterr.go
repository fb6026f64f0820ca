package discord

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// IsPermissionError reports whether err is a Discord REST failure caused by
// missing permissions (HTTP 403 or the matching API error codes). The engines
// use this to convert outbound-call failures into logged, non-fatal outcomes.
func IsPermissionError(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return false
	}
	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess, discordgo.ErrCodeCannotSendMessagesToThisUser:
			return true
		}
	}
	return rest.Response != nil && rest.Response.StatusCode == http.StatusForbidden
}

// IsNotFoundError reports whether err is a Discord REST failure for an entity
// that no longer exists (HTTP 404 or the matching API error codes), e.g. a
// message that was already deleted.
func IsNotFoundError(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return false
	}
	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser:
			return true
		}
	}
	return rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound
}
