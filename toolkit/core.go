// Package toolkit groups agent tools into a two-level hierarchy and executes
// them from a single JSON request.
//
// Core concepts:
//   - Toolkit: The top-level container that manages multiple Parent tools
//   - Parent: A category of related tools, usually one on-chain protocol
//   - Child: An individual tool that decodes JSON args, runs one operation and returns its result
//
// This file defines the core interfaces that all Parent and Child implementations must satisfy.
package toolkit

import (
	"context"
	"encoding/json"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
)

// Parent represents a category of related tools (Children) that share a common purpose.
// It acts as a namespace and orchestrates the execution of its child tools.
type Parent interface {
	// GetName returns the unique name of the parent toolset.
	GetName() string

	// GetDescription provides a human-readable description of the parent's purpose.
	GetDescription() string

	// GetChildren returns the child tools managed by this parent, keyed by name.
	GetChildren() map[string]Child

	// HandleChildren runs a list of child tool requests in order and returns
	// one ChildResponse per request. Failures of individual children are
	// reported inside their ChildResponse.
	HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse
}

// Child represents an individual tool.
type Child interface {
	// GetName returns the name of the tool, unique within its parent.
	GetName() string

	// GetDescription tells the model what the tool does and when to use it.
	GetDescription() string

	// GetInputSchema describes the arguments the tool expects. It is an
	// object-kind descriptor for every tool built with NewChild.
	GetInputSchema() *schema.Descriptor

	// Handle decodes args, runs the tool and returns its result.
	// Errors returned are ToolKitError values.
	Handle(ctx context.Context, args json.RawMessage) (interface{}, error)
}

// Example is a sample invocation shown to models that ask for one.
type Example struct {
	Input       map[string]any `json:"input"`
	Output      map[string]any `json:"output"`
	Explanation string         `json:"explanation,omitempty"`
}

// Exampler is implemented by children that carry usage examples.
type Exampler interface {
	GetExamples() []Example
}
