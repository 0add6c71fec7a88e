package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docvault/internal/model"
	"docvault/internal/placement"
)

// Step names a commit pipeline step.
type Step string

const (
	StepRename     Step = "rename"
	StepExpiration Step = "expiration"
	StepDueDate    Step = "due_date"
	StepPlacement  Step = "placement"
	StepConfirm    Step = "confirm"
)

// Steps lists the commit steps in execution order.
var Steps = []Step{StepRename, StepExpiration, StepDueDate, StepPlacement, StepConfirm}

type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StepResult is the recorded outcome of one step.
type StepResult struct {
	Step    Step    `json:"step"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// CommitReport accumulates the step results of one document.
type CommitReport struct {
	DocumentID string       `json:"document_id"`
	Steps      []StepResult `json:"steps"`
	Placement  string       `json:"placement"`
	FolderID   *string      `json:"folder_id"`
}

// OK reports whether no step failed.
func (r CommitReport) OK() bool {
	return len(r.Failures()) == 0
}

// Failures returns the failed steps.
func (r CommitReport) Failures() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Outcome == OutcomeFailed {
			out = append(out, s)
		}
	}
	return out
}

// Outcome returns the recorded outcome of step, or "" if it never ran.
func (r CommitReport) Outcome(step Step) Outcome {
	for _, s := range r.Steps {
		if s.Step == step {
			return s.Outcome
		}
	}
	return ""
}

type commitRun struct {
	p      *Pipeline
	ctx    context.Context
	span   trace.Span
	report CommitReport
}

func (c *commitRun) record(step Step, outcome Outcome, err error) {
	res := StepResult{Step: step, Outcome: outcome}
	log := c.p.log.With("document_id", c.report.DocumentID, "step", string(step))
	switch outcome {
	case OutcomeFailed:
		res.Error = err.Error()
		c.span.RecordError(err, trace.WithAttributes(attribute.String("step", string(step))))
		log.ErrorContext(c.ctx, "commit step failed", "error", err)
	case OutcomeSkipped:
		log.DebugContext(c.ctx, "commit step skipped")
	default:
		log.DebugContext(c.ctx, "commit step done")
	}
	c.p.metrics.CommitStep(string(step), string(outcome))
	c.report.Steps = append(c.report.Steps, res)
}

func (c *commitRun) do(step Step, fn func() error) {
	if err := fn(); err != nil {
		c.record(step, OutcomeFailed, err)
		return
	}
	c.record(step, OutcomeOK, nil)
}

// Commit runs rename, expiration, due date, placement and confirm for one item, in
// that order. A failing step is recorded and the next step still runs, so the
// document may be confirmed with a stale name or folder; the report says which.
func (p *Pipeline) Commit(ctx context.Context, vault model.Vault, item model.BulkOperationItem) CommitReport {
	id := item.File.DocumentID
	ctx, span := p.tracer.Start(ctx, "ingest.commit", trace.WithAttributes(attribute.String("document_id", id)))
	defer span.End()

	c := &commitRun{p: p, ctx: ctx, span: span, report: CommitReport{DocumentID: id, Steps: make([]StepResult, 0, len(Steps))}}

	if name := strings.TrimSpace(item.FinalFilename); name != "" {
		c.do(StepRename, func() error { return p.docs.Rename(ctx, id, name) })
	} else {
		c.record(StepRename, OutcomeSkipped, nil)
	}

	if item.ExpirationDate != nil && item.TrackExpiration {
		c.do(StepExpiration, func() error { return p.docs.SetExpiration(ctx, id, item.ExpirationDate, true) })
	} else {
		c.record(StepExpiration, OutcomeSkipped, nil)
	}

	if item.DueDate != nil && item.TrackDueDate {
		c.do(StepDueDate, func() error { return p.docs.SetDueDate(ctx, id, item.DueDate, true) })
	} else {
		c.record(StepDueDate, OutcomeSkipped, nil)
	}

	c.place(vault, item)

	c.do(StepConfirm, func() error {
		return p.docs.Confirm(ctx, id, model.ConfirmOptions{
			WasAnalyzed: item.WasAnalyzed,
			PageCount:   item.Analysis.PageCount,
		})
	})

	if !c.report.OK() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d commit steps failed", len(c.report.Failures())))
	}
	return c.report
}

func (c *commitRun) place(vault model.Vault, item model.BulkOperationItem) {
	if c.p.placer == nil {
		c.record(StepPlacement, OutcomeSkipped, nil)
		return
	}
	decision := c.p.placer.Decide(vault, item.Analysis, item.Override)
	c.report.Placement = decision.Tier.String()
	c.span.SetAttributes(attribute.String("placement_tier", c.report.Placement))
	if !decision.Mutates() {
		c.record(StepPlacement, OutcomeSkipped, nil)
		return
	}
	if decision.Tier == placement.TierCategoryFallback {
		c.p.log.InfoContext(c.ctx, "placing by category fallback",
			"document_id", c.report.DocumentID, "path", placementPath(decision))
	}
	c.do(StepPlacement, func() error {
		folderID, err := c.p.placer.Resolve(c.ctx, vault.ID, decision)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", decision.Tier, err)
		}
		if err := c.p.docs.SetFolder(c.ctx, c.report.DocumentID, folderID); err != nil {
			return err
		}
		c.report.FolderID = folderID
		return nil
	})
}
