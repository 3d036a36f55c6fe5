package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.Default().WithPrefix("toolkit"))
}

// SetLogger replaces the logger used by the package. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// --- Toolkit Struct and Methods ---

// Toolkit orchestrates the execution of hierarchical tool structures.
// It keeps a registry of Parent tools identified by unique names and
// renders descriptions and JSON schemas of itself for LLM providers.
type Toolkit struct {
	parents map[string]Parent // Registry of Parent implementations mapped by name
	name    string            // Name of this toolkit instance
}

// New creates a new Toolkit with the provided name and parents.
//
// Behavior:
//   - Nil parents are skipped with a warning
//   - If duplicate parent names are detected, the last one overwrites previous instances
//
// Example:
//
//	aptosParent := toolkit.NewParent("aptos", "Core Aptos account operations", balanceTool, transferTool)
//	tk := toolkit.New("aptos_agent", aptosParent)
func New(name string, parents ...Parent) *Toolkit {
	parentMap := make(map[string]Parent, len(parents))
	for _, p := range parents {
		if p == nil {
			logger.Load().Warn("nil parent provided to toolkit.New, skipping")
			continue
		}
		if _, exists := parentMap[p.GetName()]; exists {
			logger.Load().Warn("duplicate parent name, overwriting", "parent", p.GetName())
		}
		parentMap[p.GetName()] = p
	}

	return &Toolkit{
		parents: parentMap,
		name:    name,
	}
}

// GetToolkitName returns the configured name of the toolkit instance.
func (t *Toolkit) GetToolkitName() string {
	return t.name
}

// Parents returns the registered parents ordered by name.
func (t *Toolkit) Parents() []Parent {
	out := make([]Parent, 0, len(t.parents))
	for _, p := range t.parents {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}

// Children returns every child of every parent, ordered by parent name and
// then child name.
func (t *Toolkit) Children() []Child {
	var out []Child
	for _, p := range t.Parents() {
		out = append(out, sortedChildren(p)...)
	}
	return out
}

// Lookup finds a child by name across all parents.
func (t *Toolkit) Lookup(name string) (Child, bool) {
	for _, p := range t.Parents() {
		if c, ok := p.GetChildren()[name]; ok {
			return c, true
		}
	}
	return nil, false
}

// GetToolkitSchema returns the JSON schema of the toolkit request structure
// for the given provider. Only "anthropic" is known; other providers get the
// same schema.
func (t *Toolkit) GetToolkitSchema(provider string) interface{} {
	switch provider {
	case "anthropic":
		return GetToolKitSchemaForAnthropic()
	default:
		logger.Load().Warn("unsupported schema provider, defaulting to anthropic", "provider", provider)
		return GetToolKitSchemaForAnthropic()
	}
}

// GetToolkitDescription generates the XML-like description of the toolkit
// given to language models: every parent with its children, their
// descriptions and input schemas. Parents and children are listed by name.
func (t *Toolkit) GetToolkitDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("In this environment, you have access to the following <toolkit name=\"%s\">:\n", t.name))
	sb.WriteString("A <toolkit> is a collection of <parents>, a <parent> is a collection of <childs>.\n")
	sb.WriteString("Below is the list of available <parents> and their <childs>:\n")

	for _, parent := range t.Parents() {
		sb.WriteString(fmt.Sprintf("<parent name=\"%s\" description=\"%s\"></parent>\n", parent.GetName(), parent.GetDescription()))

		for _, child := range sortedChildren(parent) {
			schemaStr := "schema_error"
			schemaBytes, err := json.Marshal(schema.ToJSONSchema(child.GetInputSchema()))
			if err == nil {
				schemaStr = string(schemaBytes)
			} else {
				logger.Load().Error("marshaling input schema", "parent", parent.GetName(), "child", child.GetName(), "err", err)
			}
			sb.WriteString(fmt.Sprintf("<child name=\"%s\" description=\"%s\"><input_schema>%s</input_schema></child>\n", child.GetName(), child.GetDescription(), schemaStr))
		}
		sb.WriteString("</parent>\n")
		sb.WriteString("**NOTE**: A child tool cannot be invoked directly, the parent tool must be invoked first via its parent.\n")
	}
	sb.WriteString("</toolkit>")

	return sb.String()
}

// --- Processing Methods ---

// HandleToolKit is the main entry point for toolkit execution requests.
// It parses the raw JSON request and runs every requested child of every
// requested parent, in request order.
//
// A request that is not valid JSON yields a structured error response and
// the parse error. Unknown parents and failing children are reported inside
// the response and do not make HandleToolKit fail.
func (t *Toolkit) HandleToolKit(ctx context.Context, input json.RawMessage) (ToolKitResponse, error) {
	tkRequest, err := t.parseToolKitInput(input)
	if err != nil {
		logger.Load().Error("parsing toolkit input", "err", err)
		errResp := ToolKitResponse{
			Name: "toolkit_request_parse_error",
			Responses: []ParentResponse{
				{
					Name: "_parse_error",
					ChildsResponses: []ChildResponse{
						{Name: "_input_error", Response: NewError("invalid_input_json", err.Error())},
					},
				},
			},
		}
		return errResp, err
	}

	return t.processToolKit(ctx, tkRequest)
}

func (t *Toolkit) processToolKit(ctx context.Context, toolkitRequest ToolKit) (ToolKitResponse, error) {
	tlResponse := ToolKitResponse{
		Name: t.GetToolkitName(),
	}

	if len(toolkitRequest.ToolKitParents) == 0 {
		return tlResponse, NewError("no_toolkit_parents", "No toolkit parents specified in the request")
	}

	for _, parentReq := range toolkitRequest.ToolKitParents {
		parent, ok := t.parents[parentReq.Name]
		if !ok {
			logger.Load().Warn("requested parent not found", "parent", parentReq.Name)
			tlResponse.AddResponse(ParentResponse{
				Name: parentReq.Name,
				ChildsResponses: []ChildResponse{
					{Name: "_parent_error", Response: NewError("parent_not_found", fmt.Sprintf("Parent toolkit '%s' not registered", parentReq.Name))},
				},
			})
			continue
		}

		tlResponse.AddResponse(parent.HandleChildren(ctx, parentReq.ToolKitChilds))
	}

	return tlResponse, nil
}

func (t *Toolkit) parseToolKitInput(input json.RawMessage) (ToolKit, error) {
	var toolkitRequest ToolKit
	if err := json.Unmarshal(input, &toolkitRequest); err != nil {
		return ToolKit{}, fmt.Errorf("error unmarshaling toolkit JSON input: %w", err)
	}
	return toolkitRequest, nil
}
