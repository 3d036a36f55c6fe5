// Package mcpserver exposes a toolkit over the Model Context Protocol.
// Every child tool becomes an MCP tool whose input schema is derived from
// the child's descriptor; children with examples also get a prompt.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

// Info identifies the server to MCP clients.
type Info struct {
	Name    string
	Version string
}

// Server is an MCP server backed by a toolkit.
type Server struct {
	mcp        *server.MCPServer
	logger     *log.Logger
	registered []string
}

// New creates the MCP server and registers every child of tk. A tool that
// cannot be registered is logged and skipped; it never prevents the others
// from being registered.
func New(tk *toolkit.Toolkit, info Info, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		mcp: server.NewMCPServer(info.Name, info.Version,
			server.WithToolCapabilities(false),
			server.WithPromptCapabilities(false),
		),
		logger: logger,
	}

	children := tk.Children()
	if len(children) == 0 {
		logger.Warn("no tools found in toolkit, MCP server will have no tools registered", "toolkit", tk.GetToolkitName())
		return s
	}
	logger.Info("registering tools with MCP server", "count", len(children))

	for _, c := range children {
		if err := s.register(c); err != nil {
			logger.Error("failed to register tool", "tool", nameOf(c), "err", err)
		}
	}
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// Registered returns the names of the registered tools in registration order.
func (s *Server) Registered() []string {
	return append([]string(nil), s.registered...)
}

// ServeStdio serves the MCP protocol over stdin and stdout until the input
// is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) register(c toolkit.Child) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while registering: %v", r)
		}
	}()

	if c == nil || c.GetName() == "" || c.GetDescription() == "" || c.GetInputSchema() == nil {
		s.logger.Warn("skipping invalid tool", "tool", nameOf(c))
		return nil
	}

	tool, res := BuildTool(c)
	switch res.Status {
	case schema.Rejected:
		s.logger.Warn("input schema rejected, registering tool without parameters", "tool", c.GetName(), "err", res.Err)
	case schema.Partial:
		s.logger.Warn("input schema partially processed", "tool", c.GetName(), "fields", len(res.Keys), "err", res.Err)
	}
	if !schema.Validate(c.GetInputSchema()) && res.Status == schema.Complete {
		s.logger.Warn("input schema has top-level array fields", "tool", c.GetName())
	}

	s.mcp.AddTool(tool, Handler(c, s.logger))
	s.registered = append(s.registered, c.GetName())

	if ex, ok := c.(toolkit.Exampler); ok && len(ex.GetExamples()) > 0 {
		s.mcp.AddPrompt(examplesPrompt(c.GetName()), ExamplesHandler(c.GetName(), ex.GetExamples()))
	}
	return nil
}

// BuildTool converts a child into an MCP tool definition. The processed
// shape of the child's input schema becomes the tool's properties, with
// optional fields left out of the required list.
func BuildTool(c toolkit.Child) (mcp.Tool, schema.Result) {
	res := schema.Process(c.GetInputSchema())

	tool := mcp.NewTool(c.GetName(), mcp.WithDescription(c.GetDescription()))
	tool.InputSchema = mcp.ToolInputSchema{
		Type:       "object",
		Properties: schema.Properties(res.Shape),
		Required:   res.RequiredKeys,
	}
	return tool, res
}

// Handler returns the MCP handler that runs c. Tool failures are reported
// as error results; the returned Go error is always nil.
func Handler(c toolkit.Child, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := c.Handle(ctx, args)
		if err != nil {
			logger.Error("tool error", "tool", c.GetName(), "err", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error serializing result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(text)), nil
	}
}

func examplesPrompt(tool string) mcp.Prompt {
	return mcp.NewPrompt(tool+"-examples",
		mcp.WithPromptDescription(fmt.Sprintf("Usage examples for the %s tool", tool)),
		mcp.WithArgument("showIndex", mcp.ArgumentDescription("Example index to show (number)")),
	)
}

// ExamplesHandler renders the examples of a tool, or only the one selected
// by the showIndex argument.
func ExamplesHandler(tool string, examples []toolkit.Example) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		selected := examples
		if raw := strings.TrimSpace(request.Params.Arguments["showIndex"]); raw != "" {
			idx, err := strconv.Atoi(raw)
			if err != nil || idx < 0 || idx >= len(examples) {
				return nil, fmt.Errorf("showIndex must be between 0 and %d, got %q", len(examples)-1, raw)
			}
			selected = examples[idx : idx+1]
		}

		var sb strings.Builder
		for i, ex := range selected {
			input, _ := json.MarshalIndent(ex.Input, "", "  ")
			output, _ := json.MarshalIndent(ex.Output, "", "  ")
			explanation := ex.Explanation
			if explanation == "" {
				explanation = "No explanation provided"
			}
			fmt.Fprintf(&sb, "\nExample %d:\nInput: %s\nOutput: %s\nExplanation: %s\n", i+1, input, output, explanation)
		}

		return mcp.NewGetPromptResult(
			fmt.Sprintf("Examples for %s", tool),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(fmt.Sprintf("Examples for tool %s:\n%s", tool, sb.String()))),
			},
		), nil
	}
}

func nameOf(c toolkit.Child) (name string) {
	defer func() {
		if recover() != nil {
			name = "unnamed"
		}
	}()
	if c == nil || c.GetName() == "" {
		return "unnamed"
	}
	return c.GetName()
}
