// Package ingest turns uploaded files into reviewed, placed and confirmed documents.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"docvault/internal/classifier"
	"docvault/internal/foldertree"
	"docvault/internal/logging"
	"docvault/internal/metrics"
	"docvault/internal/model"
	"docvault/internal/placement"
	"docvault/internal/service"
)

// ErrNotPending is reported when cancellation targets a document that was already confirmed.
var ErrNotPending = errors.New("document is not pending")

// DefaultConcurrency bounds how many documents CommitBatch processes at once.
const DefaultConcurrency = 4

// ProgressFunc receives (current, total) after each file is classified.
type ProgressFunc func(current, total int)

// Deps are the collaborators of a Pipeline. Classifier, Logger and Metrics are optional.
type Deps struct {
	Documents   service.DocumentService
	Placement   *placement.Resolver
	Classifier  classifier.Classifier
	Logger      *slog.Logger
	Metrics     *metrics.Pipeline
	Concurrency int
}

// Pipeline runs analysis, commit and cancellation for upload batches.
type Pipeline struct {
	docs        service.DocumentService
	placer      *placement.Resolver
	classifier  classifier.Classifier
	log         *slog.Logger
	metrics     *metrics.Pipeline
	tracer      trace.Tracer
	concurrency int
}

func New(d Deps) *Pipeline {
	p := &Pipeline{
		docs:        d.Documents,
		placer:      d.Placement,
		classifier:  d.Classifier,
		log:         d.Logger,
		metrics:     d.Metrics,
		tracer:      otel.Tracer("docvault/ingest"),
		concurrency: d.Concurrency,
	}
	if p.log == nil {
		p.log = logging.Discard()
	}
	if p.concurrency <= 0 {
		p.concurrency = DefaultConcurrency
	}
	return p
}

// AnalyzeBatch classifies files one at a time, in order, reporting progress after each.
// A failed classification is replaced by classifier.Fallback and never aborts the batch.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, files []model.UploadedFile, progress ProgressFunc) []model.BulkOperationItem {
	ctx, span := p.tracer.Start(ctx, "ingest.analyze_batch", trace.WithAttributes(attribute.Int("files", len(files))))
	defer span.End()

	items := make([]model.BulkOperationItem, 0, len(files))
	for i, f := range files {
		items = append(items, p.analyze(ctx, f))
		if progress != nil {
			progress(i+1, len(files))
		}
	}
	return items
}

func (p *Pipeline) analyze(ctx context.Context, f model.UploadedFile) model.BulkOperationItem {
	var (
		res      model.ClassificationResult
		analyzed bool
	)
	if p.classifier != nil {
		got, err := p.classifier.Classify(ctx, f)
		switch {
		case err != nil:
			p.log.WarnContext(ctx, "classification failed, using fallback",
				"document_id", f.DocumentID, "filename", f.Filename, "error", err)
		case got == nil:
			p.log.WarnContext(ctx, "classification empty, using fallback", "document_id", f.DocumentID)
		default:
			res, analyzed = *got, true
		}
	}
	if !analyzed {
		res = classifier.Fallback(f)
		p.metrics.Analysis("fallback")
	} else {
		p.metrics.Analysis("analyzed")
	}
	return NewItem(f, res, analyzed)
}

// NewItem builds a reviewable item with the classifier's suggestions as defaults.
func NewItem(f model.UploadedFile, res model.ClassificationResult, analyzed bool) model.BulkOperationItem {
	name := strings.TrimSpace(res.SuggestedFilename)
	if name == "" {
		name = f.Filename
	}
	return model.BulkOperationItem{
		File:            f,
		Analysis:        res,
		WasAnalyzed:     analyzed,
		FinalFilename:   name,
		ExpirationDate:  res.ExpirationDate,
		TrackExpiration: res.ExpirationDate != nil,
		DueDate:         res.DueDate,
		TrackDueDate:    res.DueDate != nil,
	}
}

// CommitBatch commits every item, running up to the configured number of items at once.
// Reports are returned in item order. One item's failures never affect another.
func (p *Pipeline) CommitBatch(ctx context.Context, vault model.Vault, items []model.BulkOperationItem) []CommitReport {
	ctx, span := p.tracer.Start(ctx, "ingest.commit_batch", trace.WithAttributes(
		attribute.String("vault_id", vault.ID),
		attribute.Int("items", len(items)),
	))
	defer span.End()

	reports := make([]CommitReport, len(items))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i := range items {
		g.Go(func() error {
			reports[i] = p.Commit(ctx, vault, items[i])
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("items_with_failures", failed))
	return reports
}

// CancelReport summarizes a cancelled batch.
type CancelReport struct {
	Deleted  int                 `json:"deleted"`
	Failures []model.BulkFailure `json:"failures"`
}

// CancelBatch deletes the pending document behind every item. Documents outside vaultID
// and documents no longer pending are kept and reported as failures. Failures are logged
// and do not stop the remaining deletions.
func (p *Pipeline) CancelBatch(ctx context.Context, vaultID string, items []model.BulkOperationItem) CancelReport {
	ctx, span := p.tracer.Start(ctx, "ingest.cancel_batch", trace.WithAttributes(
		attribute.String("vault_id", vaultID),
		attribute.Int("items", len(items)),
	))
	defer span.End()

	report := CancelReport{Failures: []model.BulkFailure{}}
	for _, it := range items {
		id := it.File.DocumentID
		if err := p.cancel(ctx, vaultID, id); err != nil {
			p.log.ErrorContext(ctx, "cancel: delete pending document failed", "document_id", id, "error", err)
			report.Failures = append(report.Failures, model.BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		report.Deleted++
	}
	if len(report.Failures) > 0 {
		span.SetStatus(codes.Error, "some pending documents were not deleted")
	}
	return report
}

func (p *Pipeline) cancel(ctx context.Context, vaultID, id string) error {
	doc, err := p.docs.Get(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case doc.VaultID != vaultID:
		return service.ErrNotFound
	case doc.Status != model.StatusPending:
		return ErrNotPending
	}
	return p.docs.Delete(ctx, id)
}

func placementPath(d placement.Decision) string {
	return strings.Join(d.Segments, foldertree.Separator)
}
