// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one element category end to end: collect the
// elements, strip openings, hosted instances and joins inside a rolled-back
// sandbox, extract and normalize each element's geometry, and export the
// records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pdiddy/extract-geometry/internal/export"
	"github.com/pdiddy/extract-geometry/internal/extract"
	"github.com/pdiddy/extract-geometry/internal/graph"
	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/internal/metadata"
	"github.com/pdiddy/extract-geometry/internal/sandbox"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// Summary is the outcome of one category run.
type Summary struct {
	RunID    string         `json:"run_id" yaml:"run_id"`
	Category types.Category `json:"category" yaml:"category"`
	Elements int            `json:"elements" yaml:"elements"`
	Inserted int            `json:"inserted" yaml:"inserted"`
	Failed   int            `json:"failed" yaml:"failed"`

	Warnings []types.Diagnostic `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []types.Diagnostic `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Aborted reports whether the category run hit a sandbox failure.
func (s Summary) Aborted() bool {
	for _, d := range s.Errors {
		if d.Kind == types.SandboxFailure {
			return true
		}
	}
	return false
}

// Options configures a Runner.
type Options struct {
	// CreationInfo enables ModelCreationInfo rows.
	CreationInfo bool

	// Only restricts export to the listed element ids when non-empty.
	Only []types.ElementID

	Logger *slog.Logger

	// Out receives one progress line per element and per category.
	Out io.Writer
}

// Runner drives extraction and export against one host model. Runs are
// sequential; a Runner must not be shared between goroutines.
type Runner struct {
	model     host.Model
	extractor *extract.Extractor
	opts      Options
	logger    *slog.Logger
	w         io.Writer
}

// NewRunner returns a Runner over model.
func NewRunner(model host.Model, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w := opts.Out
	if w == nil {
		w = io.Discard
	}
	return &Runner{
		model:     model,
		extractor: extract.New(model),
		opts:      opts,
		logger:    logger,
		w:         w,
	}
}

// Extract collects the category's elements and returns one record per
// element, read from the model with openings, hosted instances and joins
// stripped. The model is left exactly as it was found. Expected problems
// land in diags; the returned error means the category could not be
// processed at all.
func (r *Runner) Extract(category types.Category, diags *types.Diagnostics) ([]types.ElementRecord, error) {
	v, err := lookup(category)
	if err != nil {
		return nil, err
	}
	targets, err := r.model.CollectElements(category)
	if err != nil {
		return nil, fmt.Errorf("collecting %s elements: %w", category, err)
	}
	targets = r.filter(targets)

	s := &stripper{model: r.model, variant: v, targets: targets, diags: diags}
	name := fmt.Sprintf("Strip openings, hosted elements and joins from %s", category.HostName())

	return sandbox.Run(r.model, name, s.run, func() ([]types.ElementRecord, error) {
		records := make([]types.ElementRecord, 0, len(targets))
		for _, el := range targets {
			rec, err := r.record(v, el, diags)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(r.w, "extracted: %s %d (%d edges, %d vertices)\n",
				category, el.ID, len(rec.Graph.Edges), len(rec.Graph.Vertices))
			records = append(records, rec)
		}
		return records, nil
	})
}

func (r *Runner) filter(els []host.Element) []host.Element {
	if len(r.opts.Only) == 0 {
		return els
	}
	keep := make(map[types.ElementID]bool, len(r.opts.Only))
	for _, id := range r.opts.Only {
		keep[id] = true
	}
	var out []host.Element
	for _, el := range els {
		if keep[el.ID] {
			out = append(out, el)
		}
	}
	return out
}

func (r *Runner) record(v variant, el host.Element, diags *types.Diagnostics) (types.ElementRecord, error) {
	edges, warn, err := r.extractor.ExtractEdges(el)
	if err != nil {
		return types.ElementRecord{}, err
	}
	if warn != nil {
		diags.Append(*warn)
		r.logger.Warn("no solid geometry", "element", int64(el.ID), "category", el.Category)
	}

	params, err := r.model.Parameters(el.ID)
	if err != nil {
		return types.ElementRecord{}, fmt.Errorf("reading parameters of element %d: %w", el.ID, err)
	}

	rec := types.ElementRecord{
		ID:           el.ID,
		UniqueID:     el.UniqueID,
		CategoryName: el.Category,
		TypeName:     metadata.TypeName(params),
		Width:        el.Width,
		Graph:        graph.Normalize(edges, v.axisOf(el)),
	}
	if v.metadata {
		md := metadata.Extract(v.category, el, params)
		rec.Creation = &md
	}
	return rec, nil
}

// RunExport extracts one category and writes its records to db.
// A sandbox failure is recorded in the summary and also returned.
func (r *Runner) RunExport(ctx context.Context, category types.Category, db *export.Database) (sum Summary, err error) {
	sum = Summary{RunID: uuid.NewString(), Category: category}
	logger := r.logger.With("run", sum.RunID, "category", string(category))
	var diags types.Diagnostics
	defer func() {
		sum.Warnings = diags.Warnings()
		sum.Errors = diags.Errors()
	}()

	records, err := r.Extract(category, &diags)
	if err != nil {
		if errors.Is(err, types.ErrUnknownCategory) {
			return sum, err
		}
		diags.Add(types.SandboxFailure, types.InvalidElementID, "%v", err)
		logger.Error("extraction aborted", "error", err)
		fmt.Fprintf(r.w, "aborted: %s: %v\n", category, err)
		return sum, err
	}
	sum.Elements = len(records)

	res, err := export.NewExporter(db, r.opts.CreationInfo, logger).Export(ctx, records, &diags)
	if err != nil {
		diags.Add(types.RowExportError, types.InvalidElementID, "%v", err)
		logger.Error("export failed", "error", err)
		return sum, err
	}
	sum.Inserted = res.Inserted
	sum.Failed = res.Failed

	fmt.Fprintf(r.w, "exported: %s (%d elements, %d rows, %d failed)\n",
		category, sum.Elements, sum.Inserted, sum.Failed)
	logger.Info("category exported", "elements", sum.Elements, "inserted", sum.Inserted, "failed", sum.Failed)
	return sum, nil
}

// RunAll runs every category in order. A failure in one category does not
// stop the others.
func (r *Runner) RunAll(ctx context.Context, categories []types.Category, db *export.Database) []Summary {
	out := make([]Summary, 0, len(categories))
	for _, c := range categories {
		sum, _ := r.RunExport(ctx, c, db)
		out = append(out, sum)
	}
	return out
}
