// Package core has core logic for scoring, method selection and assembly.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/huangsam/ladder/core/algo"
	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/internal/outwriter"
	"github.com/huangsam/ladder/schema"
)

// ExecuteSelect scores every input, selects a method for each and prints the
// ranked results. It serves as the main entry point for the 'select' command.
func ExecuteSelect(ctx context.Context, cfg *contract.Config, paths []string, stdin io.Reader, mgr contract.StoreManager) error {
	start := time.Now()
	results, err := RunSelect(ctx, cfg, paths, stdin, mgr)
	if err != nil {
		return err
	}
	ranked := algo.RankSelections(results, cfg.ResultLimit)
	return outwriter.WriteSelections(ranked, cfg, time.Since(start))
}

// RunSelect is ExecuteSelect without printing. Results keep input order.
func RunSelect(ctx context.Context, cfg *contract.Config, paths []string, stdin io.Reader, mgr contract.StoreManager) ([]schema.EnrichedResult, error) {
	pipeline, err := BuildPipeline(cfg)
	if err != nil {
		return nil, err
	}

	files, err := contract.CollectInputPaths(paths, cfg.Excludes)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no inputs found")
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogSelectHeader(cfg, len(files))
	}

	// --- 0. Begin History Tracking (if configured) ---
	ctx = contextWithStoreManager(ctx, mgr)
	ctx = beginRun(ctx, cfg, mgr)

	// --- 1. End History Tracking on every return path ---
	results := make([]schema.EnrichedResult, 0, len(files))
	defer func() { endRun(ctx, mgr, len(results)) }()

	// --- 2. Score, select and assemble each input ---
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in, err := contract.LoadInput(path, stdin)
		if err != nil {
			return nil, err
		}
		result, err := pipeline.Evaluate(in.Name, in.Input)
		if err != nil {
			return nil, err
		}
		recordSelection(ctx, result)
		results = append(results, result)
	}

	return results, nil
}

// ExecuteMethods prints the configured catalogue with ladder positions.
func ExecuteMethods(_ context.Context, cfg *contract.Config) error {
	ranked, err := GetRankedMethods(cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteMethods(ranked, cfg)
}

// GetRankedMethods validates the catalogue and ladder, then returns every
// method ranked by score with its ladder binding.
func GetRankedMethods(cfg *contract.Config) ([]schema.RankedMethod, error) {
	pipeline, err := BuildPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return schema.EnrichMethods(pipeline.Registry.Methods(), pipeline.Selector.Brackets(), pipeline.Selector.DefaultName()), nil
}

// EvaluateInput selects a method for a single in-memory input. The selection
// is recorded as a one-input history run when tracking is enabled.
func EvaluateInput(ctx context.Context, cfg *contract.Config, in contract.NamedInput, mgr contract.StoreManager) (schema.EnrichedResult, error) {
	pipeline, err := BuildPipeline(cfg)
	if err != nil {
		return schema.EnrichedResult{}, err
	}
	result, err := pipeline.Evaluate(in.Name, in.Input)
	if err != nil {
		return schema.EnrichedResult{}, err
	}

	ctx = contextWithStoreManager(ctx, mgr)
	ctx = beginRun(ctx, cfg, mgr)
	recordSelection(ctx, result)
	endRun(ctx, mgr, 1)
	return result, nil
}

// beginRun starts a history run and stores its ID in the context.
func beginRun(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) context.Context {
	if mgr == nil {
		return ctx
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return ctx
	}
	configParams := map[string]any{
		"factors":        cfg.Factors,
		"default_method": cfg.DefaultMethod,
		"ladder":         cfg.Ladder,
		"related":        cfg.Related,
		"clamp":          cfg.Clamp,
		"result_limit":   cfg.ResultLimit,
	}
	runID, err := store.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("History tracking initialization failed", err)
		return ctx
	}
	slog.Debug("history run started", "run_id", runID, "backend", cfg.HistoryBackend)
	return withRunID(ctx, runID)
}

// endRun finalizes the history run, if one was started.
func endRun(ctx context.Context, mgr contract.StoreManager, total int) {
	runID, ok := getRunID(ctx)
	if !ok || mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}
	if err := store.EndRun(runID, time.Now(), total); err != nil {
		contract.LogWarn("Failed to finalize history tracking", err)
	}
}

// recordSelection stores one result in the history run, if one was started.
func recordSelection(ctx context.Context, result schema.EnrichedResult) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	mgr := storeManagerFromContext(ctx)
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}
	if err := store.RecordSelection(runID, time.Now(), result); err != nil {
		contract.LogWarn(fmt.Sprintf("History tracking failed for %s", result.InputName), err)
	}
}
