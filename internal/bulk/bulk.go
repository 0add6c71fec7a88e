// Package bulk applies one mutation to many documents at once and reports partial failures.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docvault/internal/logging"
	"docvault/internal/metrics"
	"docvault/internal/model"
	"docvault/internal/service"
)

type Kind string

const (
	KindMove   Kind = "move"
	KindTag    Kind = "tag"
	KindDelete Kind = "delete"
)

var (
	ErrUnknownKind   = errors.New("unknown bulk operation kind")
	ErrInvalidParams = errors.New("invalid bulk operation parameters")
)

const (
	reasonInvalidID  = "invalid document id"
	reasonNotInVault = "document not found in vault"
	reasonFailed     = "operation failed"
)

var errNotInVault = errors.New(reasonNotInVault)

// Params carries the kind-specific arguments of a batch.
type Params struct {
	// VaultID scopes the batch. Targets outside the vault fail without a call.
	VaultID string
	// FolderID is the move destination; nil moves to the vault root.
	FolderID   *string
	AddTags    []string
	RemoveTags []string
	// Snapshot is the caller's view of the vault at batch start: label state per document id.
	// When nil, the batch reads it once from VaultID before dispatching.
	Snapshot map[string][]string
}

// Coordinator validates targets, fans out one request per valid target and aggregates outcomes.
type Coordinator struct {
	docs    service.DocumentService
	log     *slog.Logger
	metrics *metrics.Pipeline
	tracer  trace.Tracer
}

func NewCoordinator(docs service.DocumentService, log *slog.Logger, m *metrics.Pipeline) *Coordinator {
	if log == nil {
		log = logging.Discard()
	}
	return &Coordinator{docs: docs, log: log, metrics: m, tracer: otel.Tracer("docvault/bulk")}
}

// ValidID reports whether id is a canonical 36-character UUID.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Apply runs kind against every id. Malformed ids and ids outside the vault are counted
// as failures without a call.
// All valid targets run concurrently and every one settles before Apply returns.
// An error is returned only when the batch cannot be started at all.
func (c *Coordinator) Apply(ctx context.Context, kind Kind, ids []string, p Params) (model.BulkBatchResult, error) {
	if err := validateParams(kind, p); err != nil {
		return model.BulkBatchResult{}, err
	}

	ctx, span := c.tracer.Start(ctx, "bulk.apply", trace.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.Int("targets", len(ids)),
	))
	defer span.End()

	failed := make([]bool, len(ids))
	failures := make([]string, len(ids))
	valid := make([]int, 0, len(ids))
	for i, id := range ids {
		if !ValidID(id) {
			failed[i] = true
			failures[i] = reasonInvalidID
			c.metrics.BulkTarget(string(kind), "invalid")
			continue
		}
		valid = append(valid, i)
	}

	var op operation
	if len(valid) > 0 {
		var err error
		if op, err = c.operation(ctx, kind, p); err != nil {
			return model.BulkBatchResult{}, err
		}
	}

	var wg sync.WaitGroup
	for _, i := range valid {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := ids[i]
			if err := op(ctx, id); err != nil {
				failed[i] = true
				failures[i] = err.Error()
				if failures[i] == "" {
					failures[i] = reasonFailed
				}
				c.log.WarnContext(ctx, "bulk target failed", "kind", string(kind), "id", id, "error", err)
				c.metrics.BulkTarget(string(kind), "failed")
				return
			}
			c.metrics.BulkTarget(string(kind), "succeeded")
		}(i)
	}
	wg.Wait()

	res := model.BulkBatchResult{Total: len(ids), Failures: []model.BulkFailure{}}
	for i, reason := range failures {
		if !failed[i] {
			res.Succeeded++
			continue
		}
		res.Failed++
		res.Failures = append(res.Failures, model.BulkFailure{ID: ids[i], Reason: reason})
	}
	span.SetAttributes(attribute.Int("succeeded", res.Succeeded), attribute.Int("failed", res.Failed))
	c.log.InfoContext(ctx, "bulk operation finished", "kind", string(kind), "summary", res.Summary())
	return res, nil
}

type operation func(ctx context.Context, id string) error

func validateParams(kind Kind, p Params) error {
	switch kind {
	case KindMove:
		if p.FolderID != nil && !ValidID(*p.FolderID) {
			return fmt.Errorf("%w: folder_id %q", ErrInvalidParams, *p.FolderID)
		}
	case KindTag, KindDelete:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if p.Snapshot == nil && p.VaultID == "" {
		return fmt.Errorf("%w: a batch needs a vault or a snapshot", ErrInvalidParams)
	}
	return nil
}

// operation builds the per-target call. The vault snapshot is read here, once.
func (c *Coordinator) operation(ctx context.Context, kind Kind, p Params) (operation, error) {
	snapshot, err := c.snapshot(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("read vault snapshot: %w", err)
	}
	var op operation
	switch kind {
	case KindMove:
		op = func(ctx context.Context, id string) error {
			return c.docs.SetFolder(ctx, id, p.FolderID)
		}
	case KindDelete:
		op = c.docs.Delete
	case KindTag:
		op = tagOperation(c.docs, snapshot, p.AddTags, p.RemoveTags)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return inVault(snapshot, op), nil
}

// inVault fails targets absent from the snapshot before op is called.
func inVault(snapshot map[string][]string, op operation) operation {
	return func(ctx context.Context, id string) error {
		if _, ok := snapshot[id]; !ok {
			return errNotInVault
		}
		return op(ctx, id)
	}
}

// snapshot returns the vault members and their labels at batch start.
func (c *Coordinator) snapshot(ctx context.Context, p Params) (map[string][]string, error) {
	if p.Snapshot != nil {
		return p.Snapshot, nil
	}
	docs, err := c.docs.List(ctx, p.VaultID, service.ListOptions{Recursive: true})
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string][]string, len(docs))
	for _, d := range docs {
		snapshot[d.ID] = d.Labels
	}
	return snapshot, nil
}

func tagOperation(docs service.DocumentService, snapshot map[string][]string, add, remove []string) operation {
	return func(ctx context.Context, id string) error {
		return docs.SetLabels(ctx, id, MergeLabels(snapshot[id], add, remove))
	}
}

// MergeLabels returns (current - remove) + add without duplicates, keeping first-seen order.
func MergeLabels(current, add, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		drop[r] = struct{}{}
	}
	out := make([]string, 0, len(current)+len(add))
	for _, l := range current {
		if _, ok := drop[l]; !ok {
			out = append(out, l)
		}
	}
	return model.NormalizeLabels(append(out, add...))
}
