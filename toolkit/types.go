package toolkit

import (
	"encoding/json"
	"fmt"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
)

// --- Core Toolkit Request/Response Structures ---

// ToolKit represents the top-level structure of a toolkit execution request.
// It defines the format that AI models or external clients use to invoke tools.
// Multiple parent and child tools can be invoked in a single request, saving
// model round trips.
type ToolKit struct {
	Name           string          `json:"name" jsonschema:"required,description=The name of the toolkit."`
	ToolKitParents []ToolKitParent `json:"parents" jsonschema:"required,description=The parent toolkits to execute within the toolkit."`
}

// ToolKitParent represents a specific parent toolkit requested for execution within a ToolKit request.
// It encapsulates a collection of related child tools that should be executed together under
// the same parent namespace.
type ToolKitParent struct {
	Name          string         `json:"name" jsonschema:"required,description=The name of the parent toolkit to execute."`
	ToolKitChilds []ToolKitChild `json:"childs" jsonschema:"required,description=The child tools to execute within this parent."`
}

// ToolKitChild represents an individual child tool requested for execution within a ToolKitParent request.
// It holds the tool name and its arguments as raw JSON, allowing for delayed parsing by the specific
// tool handler during execution.
type ToolKitChild struct {
	Name string          `json:"name" jsonschema:"required,description=The name of the child tool to execute."`
	Args json.RawMessage `json:"args" jsonschema:"required,description=The arguments for the child tool as a JSON object."`
}

// ToolKitResponse represents the top-level structure of the response returned after processing a ToolKit request.
// It preserves the hierarchical structure of the request, containing responses from all parent and child
// tools that were executed.
type ToolKitResponse struct {
	Name      string           `json:"name"`
	Responses []ParentResponse `json:"responses,omitempty"`
}

// ParentResponse represents the aggregated response from processing a specific parent toolkit within a request.
// It contains the parent's name and an ordered list of responses from each child tool that was executed,
// maintaining the original execution order.
type ParentResponse struct {
	Name            string          `json:"name"`
	ChildsResponses []ChildResponse `json:"childsResponses,omitempty"`
}

// ChildResponse represents the response from executing a single child tool.
// The Response field can contain either the successful result (as returned by the tool's handler)
// or a ToolKitError if an error occurred during execution, providing a consistent error handling mechanism.
type ChildResponse struct {
	Name     string      `json:"name"`
	Response interface{} `json:"response,omitempty"`
}

// --- Error Handling ---

// ToolKitError is the error type of every tool failure: a machine-readable
// code plus a human-readable message. Runtime errors that carry a code (see
// Coder) keep it when surfaced to the model.
type ToolKitError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

// Error implements the standard error interface for ToolKitError.
// This enables ToolKitError to be used with standard Go error handling mechanisms
// while preserving the structured error information.
func (e ToolKitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Coder is implemented by errors that carry their own machine-readable code.
type Coder interface {
	ErrorCode() string
}

// NewError creates a ToolKitError.
//
// Codes used by the toolkit:
//   - "invalid_arguments": When tool arguments don't match the expected schema
//   - "handler_execution_error": When the tool execution fails
//   - "child_not_found": When a requested child tool doesn't exist
//   - "parent_not_found": When a requested parent doesn't exist
//   - "invalid_input_json": When a toolkit request is not valid JSON
func NewError(code, message string) error {
	return ToolKitError{
		Code:    code,
		Message: message,
	}
}

// --- Response Helper Methods ---

// AddResponse appends a ParentResponse to the ToolKitResponse's list of responses.
// This helper method is used during the toolkit processing workflow to build
// the hierarchical response structure.
func (tr *ToolKitResponse) AddResponse(pr ParentResponse) {
	tr.Responses = append(tr.Responses, pr)
}

// AddResponse appends a ChildResponse to the ParentResponse's list of child responses.
// This helper method is used by Parent implementations to build the response
// structure during child tool execution.
func (pr *ParentResponse) AddResponse(cr ChildResponse) {
	pr.ChildsResponses = append(pr.ChildsResponses, cr)
}

// GetToolKitSchemaForAnthropic returns the JSON schema of the ToolKit request
// structure, used when the whole toolkit is registered as a single Claude tool.
func GetToolKitSchemaForAnthropic() interface{} {
	return schema.ReflectJSONSchema[ToolKit]()
}
