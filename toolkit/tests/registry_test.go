package tests

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

func init() {
	toolkit.SetLogger(log.NewWithOptions(io.Discard, log.Options{}))
}

type lendArgs struct {
	Amount     float64 `json:"amount" jsonschema:"required"`
	Mint       string  `json:"mint" jsonschema:"required"`
	PositionID string  `json:"positionId"`
}

func TestNewChild_InputSchema(t *testing.T) {
	child := toolkit.NewChild("lend", "desc", func(ctx context.Context, args lendArgs) (interface{}, error) {
		return nil, nil
	})

	d := child.GetInputSchema()
	require.True(t, d.IsObject())
	res := schema.Process(d)
	assert.Equal(t, schema.Complete, res.Status)
	assert.Equal(t, []string{"amount", "mint"}, res.RequiredKeys)
	assert.Equal(t, []string{"positionId"}, res.OptionalKeys)
}

func TestNewChild_WithExamples(t *testing.T) {
	ex := toolkit.Example{
		Input:       map[string]any{"input": "a"},
		Output:      map[string]any{"status": "success"},
		Explanation: "echoes the input",
	}
	child := toolkit.NewChild("with_examples", "desc", func(ctx context.Context, args SimpleArgs) (interface{}, error) {
		return nil, nil
	}, toolkit.WithExamples(ex))

	exampler, ok := child.(toolkit.Exampler)
	require.True(t, ok)
	assert.Equal(t, []toolkit.Example{ex}, exampler.GetExamples())
}

func TestToolkit_ChildrenAndLookup(t *testing.T) {
	tk := toolkit.New("tk",
		createTestParent(t, "zeta", createTestChildFn(t, "z1", "r", false)),
		createTestParent(t, "alpha",
			createTestChildFn(t, "a2", "r", false),
			createTestChildFn(t, "a1", "r", false),
		),
	)

	var names []string
	for _, c := range tk.Children() {
		names = append(names, c.GetName())
	}
	assert.Equal(t, []string{"a1", "a2", "z1"}, names)

	parents := tk.Parents()
	require.Len(t, parents, 2)
	assert.Equal(t, "alpha", parents[0].GetName())

	c, ok := tk.Lookup("z1")
	require.True(t, ok)
	assert.Equal(t, "z1", c.GetName())

	_, ok = tk.Lookup("missing")
	assert.False(t, ok)
}

func TestNewParent_SkipsNilChild(t *testing.T) {
	p := toolkit.NewParent("p", "desc", nil, createTestChild(t, "c", "o", false))
	assert.Len(t, p.GetChildren(), 1)
}

func TestNewChild_Handle_RequiredKeys(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		missing string
	}{
		{name: "all present", args: `{"amount":1,"mint":"0x1::aptos_coin::AptosCoin"}`},
		{name: "empty string counts as present", args: `{"amount":1,"mint":""}`},
		{name: "key omitted", args: `{"amount":2}`, missing: "mint"},
		{name: "null value", args: `{"amount":null,"mint":"0x1"}`, missing: "amount"},
		{name: "empty object", args: `{}`, missing: "amount, mint"},
		{name: "no arguments", args: ``, missing: "amount, mint"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			child := toolkit.NewChild("lend", "desc", func(ctx context.Context, args lendArgs) (interface{}, error) {
				called = true
				return "ok", nil
			})

			_, err := child.Handle(context.Background(), json.RawMessage(tc.args))
			if tc.missing == "" {
				require.NoError(t, err)
				assert.True(t, called)
				return
			}
			var tkErr toolkit.ToolKitError
			require.ErrorAs(t, err, &tkErr)
			assert.Equal(t, "missing_required_fields", tkErr.Code)
			assert.Equal(t, "lend requires "+tc.missing, tkErr.Message)
			assert.False(t, called)
		})
	}
}

func TestNewChild_Handle_DecodeErrorBeforeRequired(t *testing.T) {
	child := toolkit.NewChild("lend", "desc", func(ctx context.Context, args lendArgs) (interface{}, error) {
		return nil, nil
	})

	_, err := child.Handle(context.Background(), json.RawMessage(`{"amount":"lots"}`))
	var tkErr toolkit.ToolKitError
	require.ErrorAs(t, err, &tkErr)
	assert.Equal(t, "invalid_arguments", tkErr.Code)
}
