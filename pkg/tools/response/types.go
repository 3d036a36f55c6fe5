package response

// ThinkingArgs defines the arguments for the model_thinking tool.
type ThinkingArgs struct {
	Thinking string `json:"thinking" jsonschema:"required,description=The reasoning steps to record before acting on-chain."`
}

// AnswerArgs defines the arguments for the model_response tool.
type AnswerArgs struct {
	Response string `json:"response" jsonschema:"required,description=The final answer presented to the user."`
}

// Ack is the result of both response tools.
type Ack struct {
	Recorded bool `json:"recorded"`
}
