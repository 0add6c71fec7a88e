// Package placement decides where a newly classified document lives in its vault.
package placement

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"docvault/internal/model"
	"docvault/internal/service"
)

// DefaultPersonalRootLabel is prepended to fallback paths in personal vaults.
const DefaultPersonalRootLabel = "Personal Documents"

// Tier identifies the rule that produced a Decision. Tiers are evaluated in declaration order.
type Tier int

const (
	TierOverride Tier = iota + 1
	TierMatchedFolder
	TierSuggestedPath
	TierCategoryFallback
	TierNone
)

func (t Tier) String() string {
	switch t {
	case TierOverride:
		return "override"
	case TierMatchedFolder:
		return "matched_folder"
	case TierSuggestedPath:
		return "suggested_path"
	case TierCategoryFallback:
		return "category_fallback"
	case TierNone:
		return "none"
	default:
		return "tier(" + strconv.Itoa(int(t)) + ")"
	}
}

// Decision is the outcome of the placement policy, before any folder is created.
// Exactly one of FolderID, Segments or ToRoot is set unless Tier is TierNone.
type Decision struct {
	Tier     Tier
	FolderID string
	Segments []string
	ToRoot   bool
}

// Mutates reports whether applying the decision changes the document's folder.
func (d Decision) Mutates() bool {
	return d.Tier != TierNone
}

// Resolver applies the placement policy and materializes folder paths.
type Resolver struct {
	folders   service.FolderService
	rootLabel string
	now       func() time.Time
}

type Option func(*Resolver)

// WithPersonalRootLabel overrides DefaultPersonalRootLabel.
func WithPersonalRootLabel(label string) Option {
	return func(r *Resolver) {
		if label = strings.TrimSpace(label); label != "" {
			r.rootLabel = label
		}
	}
}

// WithClock sets the source of the current year used by the category fallback.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(folders service.FolderService, opts ...Option) *Resolver {
	r := &Resolver{
		folders:   folders,
		rootLabel: DefaultPersonalRootLabel,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Decide runs the tiers in priority order and returns the first that applies.
// It performs no I/O.
func (r *Resolver) Decide(vault model.Vault, analysis model.ClassificationResult, override model.PlacementOverride) Decision {
	switch o := override.(type) {
	case model.ExistingFolder:
		return Decision{Tier: TierOverride, FolderID: o.FolderID}
	case model.RootPlacement:
		return Decision{Tier: TierOverride, ToRoot: true}
	case model.CreatePath:
		// An override without segments still wins and places at the root.
		if segs := model.CleanSegments(o.Segments); len(segs) > 0 {
			return Decision{Tier: TierOverride, Segments: segs}
		}
		return Decision{Tier: TierOverride, ToRoot: true}
	}

	suggestion := analysis.FolderSuggestion
	if m := suggestion.MatchedExistingFolder; m != nil && m.ID != "" {
		return Decision{Tier: TierMatchedFolder, FolderID: m.ID}
	}
	if segs := model.CleanSegments(suggestion.PathSegments); len(segs) > 0 {
		return Decision{Tier: TierSuggestedPath, Segments: segs}
	}
	if segs := r.FallbackSegments(vault, analysis.Classification); len(segs) > 0 {
		return Decision{Tier: TierCategoryFallback, Segments: segs}
	}
	return Decision{Tier: TierNone}
}

// FallbackSegments synthesizes [root label?, Category, year, Subtype] from a classification.
// It returns nil for an empty or catch-all category.
func (r *Resolver) FallbackSegments(vault model.Vault, c model.Classification) []string {
	category := strings.TrimSpace(c.Category)
	if category == "" || strings.EqualFold(category, model.CategoryOther) {
		return nil
	}
	var segs []string
	if vault.IsPersonal() {
		segs = append(segs, r.rootLabel)
	}
	segs = append(segs, TitleCase(category), strconv.Itoa(r.now().Year()))
	if sub := TitleCase(c.Subtype); sub != "" {
		segs = append(segs, sub)
	}
	return segs
}

// TitleCase turns "w2_form" into "W2 Form". Letters after the first of each word are kept as-is.
func TitleCase(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// Resolve materializes d into a destination: the folder id, or nil for the vault root.
// Path tiers find or create each segment in order starting at the vault root.
func (r *Resolver) Resolve(ctx context.Context, vaultID string, d Decision) (*string, error) {
	switch {
	case d.Tier == TierNone || d.ToRoot:
		return nil, nil
	case d.FolderID != "":
		id := d.FolderID
		return &id, nil
	case len(d.Segments) > 0:
		leaf, err := r.EnsurePath(ctx, vaultID, d.Segments)
		if err != nil {
			return nil, err
		}
		return &leaf.ID, nil
	default:
		return nil, fmt.Errorf("placement %s has no destination", d.Tier)
	}
}

// EnsurePath finds or creates every segment under its predecessor and returns the leaf.
func (r *Resolver) EnsurePath(ctx context.Context, vaultID string, segments []string) (*model.Folder, error) {
	var (
		parent *string
		leaf   *model.Folder
	)
	for i, name := range segments {
		f, err := r.folders.FindOrCreate(ctx, vaultID, parent, name)
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i, name, err)
		}
		leaf = f
		parent = &f.ID
	}
	if leaf == nil {
		return nil, fmt.Errorf("empty folder path")
	}
	return leaf, nil
}
