package toolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
)

// --- Child builder ---

type child[T any] struct {
	name        string
	description string
	inputSchema *schema.Descriptor
	required    []string
	examples    []Example
	handler     func(ctx context.Context, args T) (interface{}, error)
}

// ChildOption configures a child built with NewChild.
type ChildOption func(*childOptions)

type childOptions struct {
	examples []Example
}

// WithExamples attaches usage examples to a child.
func WithExamples(examples ...Example) ChildOption {
	return func(o *childOptions) {
		o.examples = append(o.examples, examples...)
	}
}

// NewChild creates a Child whose arguments are decoded into T before the
// handler runs. The input schema is reflected from T's json and jsonschema
// tags. Handle rejects arguments that omit a required key or set it to null.
//
// Example:
//
//	type BalanceArgs struct {
//	    Mint string `json:"mint" jsonschema:"description=Token to check"`
//	}
//	balance := toolkit.NewChild("aptos_balance", "Get an account balance.",
//	    func(ctx context.Context, args BalanceArgs) (interface{}, error) { ... })
func NewChild[T any](name, description string, handler func(ctx context.Context, args T) (interface{}, error), opts ...ChildOption) Child {
	var o childOptions
	for _, opt := range opts {
		opt(&o)
	}
	inputSchema := schema.Reflect[T]()
	return &child[T]{
		name:        name,
		description: description,
		inputSchema: inputSchema,
		required:    schema.Process(inputSchema).RequiredKeys,
		examples:    o.examples,
		handler:     handler,
	}
}

func (c *child[T]) GetName() string                    { return c.name }
func (c *child[T]) GetDescription() string             { return c.description }
func (c *child[T]) GetInputSchema() *schema.Descriptor { return c.inputSchema }
func (c *child[T]) GetExamples() []Example             { return c.examples }

func (c *child[T]) Handle(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var parsed T
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &parsed); err != nil {
			return nil, NewError("invalid_arguments", fmt.Sprintf("failed to decode arguments for %s: %v", c.name, err))
		}
	}
	if missing := c.missing(trimmed); len(missing) > 0 {
		return nil, NewError("missing_required_fields", fmt.Sprintf("%s requires %s", c.name, strings.Join(missing, ", ")))
	}

	result, err := c.handler(ctx, parsed)
	if err != nil {
		var tkErr ToolKitError
		if errors.As(err, &tkErr) {
			return nil, tkErr
		}
		var coder Coder
		if errors.As(err, &coder) {
			return nil, NewError(coder.ErrorCode(), err.Error())
		}
		return nil, NewError("handler_execution_error", err.Error())
	}
	return result, nil
}

// missing returns the required keys absent from args or set to null.
func (c *child[T]) missing(args []byte) []string {
	if len(c.required) == 0 {
		return nil
	}
	var present map[string]json.RawMessage
	if len(args) > 0 {
		// non-object arguments already failed to decode into T
		_ = json.Unmarshal(args, &present)
	}
	var missing []string
	for _, key := range c.required {
		v, ok := present[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			missing = append(missing, key)
		}
	}
	return missing
}

// --- Parent builder ---

type parent struct {
	name        string
	description string
	children    map[string]Child
}

// NewParent creates a Parent holding the given children. Nil children are
// skipped and a repeated child name replaces the earlier child.
func NewParent(name, description string, children ...Child) Parent {
	m := make(map[string]Child, len(children))
	for _, c := range children {
		if c == nil {
			logger.Load().Warn("nil child provided to parent, skipping", "parent", name)
			continue
		}
		if _, exists := m[c.GetName()]; exists {
			logger.Load().Warn("duplicate child name, overwriting", "parent", name, "child", c.GetName())
		}
		m[c.GetName()] = c
	}
	return &parent{name: name, description: description, children: m}
}

func (p *parent) GetName() string               { return p.name }
func (p *parent) GetDescription() string        { return p.description }
func (p *parent) GetChildren() map[string]Child { return p.children }

func (p *parent) HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse {
	resp := ParentResponse{Name: p.name}
	for _, req := range childRequests {
		c, ok := p.children[req.Name]
		if !ok {
			resp.AddResponse(ChildResponse{
				Name:     req.Name,
				Response: NewError("child_not_found", fmt.Sprintf("Child tool '%s' not found in parent '%s'", req.Name, p.name)),
			})
			continue
		}

		result, err := c.Handle(ctx, req.Args)
		if err != nil {
			logger.Load().Warn("child tool failed", "parent", p.name, "child", req.Name, "err", err)
			resp.AddResponse(ChildResponse{Name: req.Name, Response: err})
			continue
		}
		resp.AddResponse(ChildResponse{Name: req.Name, Response: result})
	}
	return resp
}

// sortedChildren returns the children of p ordered by name.
func sortedChildren(p Parent) []Child {
	children := p.GetChildren()
	out := make([]Child, 0, len(children))
	for _, c := range children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GetName() < out[j].GetName() })
	return out
}
