package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/huangsam/ladder/core"
	"github.com/huangsam/ladder/core/algo"
	"github.com/huangsam/ladder/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// toolArgs holds the arguments shared by the selection tools.
type toolArgs struct {
	Input         string `mapstructure:"input"`
	Name          string `mapstructure:"name"`
	Paths         string `mapstructure:"paths"`
	Factors       string `mapstructure:"factors"`
	Related       string `mapstructure:"related"`
	DefaultMethod string `mapstructure:"default_method"`
	Clamp         *bool  `mapstructure:"clamp"`
	Limit         int    `mapstructure:"limit"`
}

// decodeArgs decodes the raw tool arguments. JSON numbers arrive as float64
// and clients sometimes send booleans as strings, hence weak typing.
func decodeArgs(request mcp.CallToolRequest) (toolArgs, error) {
	var args toolArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return args, err
	}
	if err := decoder.Decode(request.GetArguments()); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

// applyOverrides copies the optional per-call selection settings onto cfg.
func applyOverrides(cfg *contract.Config, args toolArgs) error {
	if f := contract.ParseNameList(args.Factors); len(f) > 0 {
		cfg.Factors = f
	}
	related, err := contract.ParseFloatList(args.Related)
	if err != nil {
		return fmt.Errorf("invalid related values: %w", err)
	}
	if len(related) > 0 {
		cfg.Related = related
	}
	if args.DefaultMethod != "" {
		cfg.DefaultMethod = args.DefaultMethod
	}
	if args.Clamp != nil {
		cfg.Clamp = *args.Clamp
	}
	return nil
}

func (h *toolHandler) handleSelectMethod(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := h.baseCfg.Clone()
	if err := applyOverrides(cfg, args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input, err := contract.DecodeInput([]byte(args.Input))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}
	name := args.Name
	if name == "" {
		name = "inline"
	}

	result, err := core.EvaluateInput(ctx, cfg, contract.NamedInput{Name: name, Input: input}, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("selection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSelectPaths(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg := h.baseCfg.Clone()
	if err := applyOverrides(cfg, args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Limit > 0 {
		cfg.ResultLimit = min(args.Limit, contract.MaxResultLimit)
	}

	paths := contract.ParseNameList(args.Paths)
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths is required"), nil
	}
	for _, p := range paths {
		if p == contract.StdinInput {
			return mcp.NewToolResultError("stdin is not available over MCP; use select_method instead"), nil
		}
	}

	results, err := core.RunSelect(core.WithSuppressHeader(ctx), cfg, paths, nil, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("selection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(algo.RankSelections(results, cfg.ResultLimit), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMethods(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ranked, err := core.GetRankedMethods(h.baseCfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid catalogue: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
