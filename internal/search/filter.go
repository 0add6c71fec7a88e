package search

import (
	"cmp"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"docvault/internal/model"
)

// All disables a facet.
const All = "all"

type DateRange string

const (
	DateAll    DateRange = "all"
	DateToday  DateRange = "today"
	DateWeek   DateRange = "week"
	DateMonth  DateRange = "month"
	DateYear   DateRange = "year"
	DateCustom DateRange = "custom"
)

type SizeBucket string

const (
	SizeAll    SizeBucket = "all"
	SizeSmall  SizeBucket = "small"
	SizeMedium SizeBucket = "medium"
	SizeLarge  SizeBucket = "large"
)

type SortKey string

const (
	SortName SortKey = "name"
	SortDate SortKey = "date"
	SortSize SortKey = "size"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

const mebibyte = 1024 * 1024

// SearchFilterConfig is one immutable set of facet selections plus sort order.
// Empty fields behave like "all"; an empty SortBy keeps the input order.
type SearchFilterConfig struct {
	Query         string     `json:"q"`
	Type          string     `json:"type"`
	Tag           string     `json:"tag"`
	DateRange     DateRange  `json:"date"`
	From          *time.Time `json:"from"`
	To            *time.Time `json:"to"`
	Size          SizeBucket `json:"size"`
	FavoritesOnly bool       `json:"favorites"`
	SortBy        SortKey    `json:"sort"`
	Order         SortOrder  `json:"order"`
	// Language selects the collation used for name sorting. The zero value is the root collation.
	Language language.Tag `json:"-"`
}

func (c SearchFilterConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Type, validation.In(All, model.TypePDF, model.TypeImage, model.TypeDocument,
			model.TypeSpreadsheet, model.TypeText, model.TypeOther)),
		validation.Field(&c.DateRange, validation.In(DateAll, DateToday, DateWeek, DateMonth, DateYear, DateCustom)),
		validation.Field(&c.Size, validation.In(SizeAll, SizeSmall, SizeMedium, SizeLarge)),
		validation.Field(&c.SortBy, validation.In(SortName, SortDate, SortSize)),
		validation.Field(&c.Order, validation.In(Asc, Desc)),
	)
}

// SizeBucketOf classifies a byte count. Both ends of the medium tier are inclusive.
func SizeBucketOf(size int64) SizeBucket {
	switch {
	case size < mebibyte:
		return SizeSmall
	case size <= 10*mebibyte:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Apply filters docs by every facet in cfg and sorts the survivors. It does not modify docs.
// Relative date ranges are measured from local midnight of now.
func Apply(docs []model.Document, cfg SearchFilterConfig, now time.Time) []model.Document {
	q := ParseQuery(cfg.Query)
	since, until := cfg.dateBounds(now)

	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if !q.IsEmpty() && !Matches(d.Name, d.Labels, q) {
			continue
		}
		if cfg.Type != "" && cfg.Type != All && d.Type != cfg.Type {
			continue
		}
		if cfg.Tag != "" && cfg.Tag != All && !slices.Contains(d.Labels, cfg.Tag) {
			continue
		}
		if since != nil && d.CreatedAt.Before(*since) {
			continue
		}
		if until != nil && d.CreatedAt.After(*until) {
			continue
		}
		if cfg.Size != "" && cfg.Size != SizeAll && SizeBucketOf(d.Size) != cfg.Size {
			continue
		}
		if cfg.FavoritesOnly && !d.IsFavorite {
			continue
		}
		out = append(out, d)
	}

	if cmpFn := cfg.comparator(); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

func (c SearchFilterConfig) dateBounds(now time.Time) (since, until *time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := func(t time.Time) (*time.Time, *time.Time) { return &t, nil }

	switch c.DateRange {
	case DateToday:
		return from(today)
	case DateWeek:
		return from(today.AddDate(0, 0, -7))
	case DateMonth:
		return from(today.AddDate(0, -1, 0))
	case DateYear:
		return from(today.AddDate(-1, 0, 0))
	case DateCustom:
		if c.From != nil {
			f := *c.From
			since = &f
		}
		if c.To != nil {
			t := endOfDay(*c.To)
			until = &t
		}
		return since, until
	default:
		return nil, nil
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func (c SearchFilterConfig) comparator() func(a, b model.Document) int {
	var base func(a, b model.Document) int
	switch c.SortBy {
	case SortName:
		col := collate.New(c.Language)
		base = func(a, b model.Document) int { return col.CompareString(a.Name, b.Name) }
	case SortDate:
		base = func(a, b model.Document) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortSize:
		base = func(a, b model.Document) int { return cmp.Compare(a.Size, b.Size) }
	default:
		return nil
	}
	if c.Order == Desc {
		return func(a, b model.Document) int { return -base(a, b) }
	}
	return base
}
