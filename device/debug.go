package device

import (
	"context"

	"github.com/vkngwrapper/extensions/v2/ext_debug_utils"
	"golang.org/x/exp/slog"
)

// DefaultDebugSeverity covers the warnings and errors the messenger forwards to the log
const DefaultDebugSeverity = ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning

const debugMessageTypes = ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance

// DebugCallback returns a debug utils callback that writes each message to logger: errors at
// error level, warnings at warn level and anything else at debug level
func DebugCallback(logger *slog.Logger) func(ext_debug_utils.DebugUtilsMessageTypeFlags, ext_debug_utils.DebugUtilsMessageSeverityFlags, *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	return func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
		level := slog.LevelDebug
		if severity&ext_debug_utils.SeverityError != 0 {
			level = slog.LevelError
		} else if severity&ext_debug_utils.SeverityWarning != 0 {
			level = slog.LevelWarn
		}

		if data == nil {
			logger.LogAttrs(context.Background(), level, "vulkan debug message", slog.String("Type", msgType.String()))
			return false
		}

		logger.LogAttrs(context.Background(), level, "vulkan debug message",
			slog.String("Type", msgType.String()),
			slog.Any("MessageIDNumber", data.MessageIDNumber),
			slog.String("MessageIDName", data.MessageIDName),
			slog.String("Message", data.Message),
		)

		// Never abort the call that triggered the message
		return false
	}
}
