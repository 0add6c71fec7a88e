package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOverride is returned when an override input cannot be turned into a PlacementOverride.
var ErrInvalidOverride = errors.New("invalid placement override")

// PlacementOverride is a reviewer-chosen destination. Exactly one of
// ExistingFolder, RootPlacement or CreatePath.
type PlacementOverride interface {
	isPlacementOverride()
}

// ExistingFolder places the document in a folder that already exists.
type ExistingFolder struct {
	FolderID string
}

// RootPlacement places the document at the vault root.
type RootPlacement struct{}

// CreatePath places the document in the leaf of Segments, creating missing folders from the vault root.
type CreatePath struct {
	Segments []string
}

func (ExistingFolder) isPlacementOverride() {}
func (RootPlacement) isPlacementOverride()  {}
func (CreatePath) isPlacementOverride()     {}

// Override kinds as they appear on the wire.
const (
	OverrideExisting = "existing"
	OverrideRoot     = "root"
	OverrideCreate   = "create"
)

// OverrideInput is the JSON form of a PlacementOverride.
type OverrideInput struct {
	Kind     string   `json:"kind"`
	FolderID string   `json:"folder_id,omitempty"`
	Path     []string `json:"path,omitempty"`
}

// Override converts the input into its variant.
func (in OverrideInput) Override() (PlacementOverride, error) {
	switch in.Kind {
	case OverrideExisting:
		if strings.TrimSpace(in.FolderID) == "" {
			return nil, fmt.Errorf("%w: folder_id is required", ErrInvalidOverride)
		}
		return ExistingFolder{FolderID: in.FolderID}, nil
	case OverrideRoot:
		return RootPlacement{}, nil
	case OverrideCreate:
		segs := CleanSegments(in.Path)
		if len(segs) == 0 {
			return nil, fmt.Errorf("%w: path is required", ErrInvalidOverride)
		}
		return CreatePath{Segments: segs}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidOverride, in.Kind)
	}
}

// InputOf returns the wire form of o, or nil when there is no override.
func InputOf(o PlacementOverride) *OverrideInput {
	switch v := o.(type) {
	case ExistingFolder:
		return &OverrideInput{Kind: OverrideExisting, FolderID: v.FolderID}
	case RootPlacement:
		return &OverrideInput{Kind: OverrideRoot}
	case CreatePath:
		return &OverrideInput{Kind: OverrideCreate, Path: v.Segments}
	default:
		return nil
	}
}

// CleanSegments trims every segment and drops the empty ones.
func CleanSegments(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
