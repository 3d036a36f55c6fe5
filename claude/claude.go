// Package claude exposes a toolkit to Anthropic models, either as the single
// hierarchical toolkit tool or as one flat tool per child.
package claude

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

// Mode selects how the toolkit is presented to the model.
type Mode int

const (
	// Hierarchical exposes one tool named after the toolkit; a single tool
	// call can run several children.
	Hierarchical Mode = iota
	// Flat exposes every child as its own tool.
	Flat
)

const systemPrompt = `You are a helpful assistant operating an Aptos account.
You can execute multiple tools in one invocation.
You always think first, and to give a response to the user, you have to use the right tool.`

// ToolkitParam returns the tool definition of the whole toolkit.
func ToolkitParam(tk *toolkit.Toolkit) anthropic.ToolParam {
	return anthropic.ToolParam{
		Name:        anthropic.F(tk.GetToolkitName()),
		Description: anthropic.F(tk.GetToolkitDescription()),
		InputSchema: anthropic.F(tk.GetToolkitSchema("anthropic")),
	}
}

// ToolParams returns one tool definition per child, ordered like
// Toolkit.Children.
func ToolParams(tk *toolkit.Toolkit) []anthropic.ToolParam {
	children := tk.Children()
	params := make([]anthropic.ToolParam, 0, len(children))
	for _, c := range children {
		params = append(params, anthropic.ToolParam{
			Name:        anthropic.F(c.GetName()),
			Description: anthropic.F(c.GetDescription()),
			InputSchema: anthropic.F[interface{}](schema.ToJSONSchema(c.GetInputSchema())),
		})
	}
	return params
}

// Tools returns the tool list for mode.
func Tools(tk *toolkit.Toolkit, mode Mode) []anthropic.ToolUnionUnionParam {
	if mode == Hierarchical {
		return []anthropic.ToolUnionUnionParam{ToolkitParam(tk)}
	}
	params := ToolParams(tk)
	tools := make([]anthropic.ToolUnionUnionParam, 0, len(params))
	for _, p := range params {
		tools = append(tools, p)
	}
	return tools
}

// Client runs conversations against Claude with the toolkit attached.
type Client struct {
	Client   *anthropic.Client
	Params   *anthropic.MessageNewParams
	Toolkit  *toolkit.Toolkit
	MaxTurns int
	logger   *log.Logger
}

// NewClient returns a Client for model. Extra request options, such as a
// base URL, are passed to the Anthropic client.
func NewClient(apiKey, model string, tk *toolkit.Toolkit, mode Mode, logger *log.Logger, opts ...option.RequestOption) *Client {
	if logger == nil {
		logger = log.Default()
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(model)),
		MaxTokens: anthropic.Int(1000),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(systemPrompt),
		}),
		Tools:       anthropic.F(Tools(tk, mode)),
		Temperature: anthropic.Float(0.5),
		ToolChoice: anthropic.F[anthropic.ToolChoiceUnionParam](anthropic.ToolChoiceAutoParam{
			Type: anthropic.F(anthropic.ToolChoiceAutoTypeAuto),
		}),
	}
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &Client{Client: client, Params: &params, Toolkit: tk, MaxTurns: 5, logger: logger}
}

// Generate sends prompt and keeps answering tool calls until the model
// replies without using a tool or MaxTurns is reached.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	history := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}
	var thinking, message string

	for turn := 1; turn <= c.MaxTurns; turn++ {
		c.Params.Messages = anthropic.F(history)
		c.logger.Info("calling Claude", "turn", turn)
		response, err := c.Client.Messages.New(ctx, *c.Params)
		if err != nil {
			return "", fmt.Errorf("calling Claude: %w", err)
		}
		c.logger.Debug("usage", "input_tokens", response.Usage.InputTokens, "output_tokens", response.Usage.OutputTokens)
		history = append(history, response.ToParam())

		var results []anthropic.ContentBlockParamUnion
		thinking, message = "", ""
		for _, block := range response.Content {
			switch b := block.AsUnion().(type) {
			case anthropic.TextBlock:
				message = b.Text
			case anthropic.ThinkingBlock:
				thinking = b.Thinking
			case anthropic.ToolUseBlock:
				c.logger.Info("tool used", "tool", b.Name)
				content, isError := c.RunTool(ctx, b.Name, b.Input)
				results = append(results, anthropic.NewToolResultBlock(b.ID, content, isError))
			default:
				c.logger.Warn("unexpected content block", "type", fmt.Sprintf("%T", b))
			}
		}

		if len(results) == 0 {
			return fmt.Sprintf("Thinking: %s\nMessage: %s", thinking, message), nil
		}
		history = append(history, anthropic.MessageParam{
			Role:    anthropic.F(anthropic.MessageParamRoleUser),
			Content: anthropic.F(results),
		})
	}
	return fmt.Sprintf("Thinking: %s\nMessage: %s", thinking, message), nil
}

// RunTool executes a tool call made by the model and returns the content of
// the tool result and whether it reports an error. A call to the toolkit
// tool goes through HandleToolKit; a call to a child uses the JSON status
// envelope.
func (c *Client) RunTool(ctx context.Context, name string, input json.RawMessage) (string, bool) {
	if name == c.Toolkit.GetToolkitName() {
		resp, err := c.Toolkit.HandleToolKit(ctx, input)
		out, marshalErr := json.Marshal(resp)
		if marshalErr != nil {
			return fmt.Sprintf("Error marshaling result: %v", marshalErr), true
		}
		return string(out), err != nil
	}

	child, ok := c.Toolkit.Lookup(name)
	if !ok {
		return toolkit.Failure(toolkit.NewError("tool_not_found", fmt.Sprintf("tool %q is not registered", name))), true
	}
	out := toolkit.Call(ctx, child, string(input))
	var status struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal([]byte(out), &status)
	return out, status.Status != "success"
}
