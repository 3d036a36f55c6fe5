// Package response holds the tools a model uses to surface its reasoning
// and its final answer instead of writing free text.
package response

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogThinking records the model's reasoning.
func LogThinking(ctx context.Context, logger *log.Logger, args ThinkingArgs) (Ack, error) {
	if args.Thinking == "" {
		logger.Warn("model thinking: received empty thinking string")
		return Ack{}, nil
	}
	logger.Info("model thinking", "thinking", args.Thinking)
	return Ack{Recorded: true}, nil
}

// LogResponse records the model's final answer.
func LogResponse(ctx context.Context, logger *log.Logger, args AnswerArgs) (Ack, error) {
	if args.Response == "" {
		logger.Warn("model response: received empty response string")
		return Ack{}, nil
	}
	logger.Info("model response", "response", args.Response)
	return Ack{Recorded: true}, nil
}
