package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/constants"
	"github.com/poofware/mono-repo/backend/services/catalog-service/internal/dtos"
)

// ListQuery mirrors the list endpoint's query string.
type ListQuery struct {
	Sort string
	// Search is honoured only when SearchSubmitted is set; otherwise the
	// filter carried over from the previous page (CurrentSearch) applies.
	Search          string
	SearchSubmitted bool
	CurrentSearch   string
	Page            int
	Language        string
}

// List filters, sorts and pages all fields of interest rendered in q.Language.
func (s *FieldOfInterestService) List(ctx context.Context, q ListQuery) (*dtos.FieldOfInterestPage, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fields of interest: %w", err)
	}

	search := q.CurrentSearch
	page := q.Page
	if q.SearchSubmitted {
		// a new search starts over on the first page
		search = q.Search
		page = 1
	}
	search = strings.TrimSpace(search)

	lang := s.langs.orUser(q.Language)
	views := make([]dtos.FieldOfInterestView, 0, len(all))
	needle := strings.ToLower(search)
	for _, f := range all {
		v := s.view(f, lang)
		if needle != "" &&
			!strings.Contains(strings.ToLower(v.ID), needle) &&
			!strings.Contains(strings.ToLower(v.Description), needle) {
			continue
		}
		views = append(views, v)
	}

	sortKey := normalizeSortKey(q.Sort)
	sortViews(views, sortKey)

	out := paginate(views, page, s.pageSize)
	out.Sort = sortKey
	out.Search = search
	out.SortLinks = sortLinks(sortKey)
	return out, nil
}

func normalizeSortKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case constants.SortIDDescLegacy:
		return constants.SortIDDesc
	case constants.SortIDDesc,
		constants.SortDescriptionAsc, constants.SortDescriptionDesc,
		constants.SortCreatedAsc, constants.SortCreatedDesc:
		return key
	default:
		return constants.SortIDAsc
	}
}

func sortViews(views []dtos.FieldOfInterestView, key string) {
	var less func(a, b dtos.FieldOfInterestView) bool
	switch key {
	case constants.SortIDDesc:
		less = func(a, b dtos.FieldOfInterestView) bool { return a.ID > b.ID }
	case constants.SortDescriptionAsc:
		less = func(a, b dtos.FieldOfInterestView) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	case constants.SortDescriptionDesc:
		less = func(a, b dtos.FieldOfInterestView) bool {
			return strings.ToLower(a.Description) > strings.ToLower(b.Description)
		}
	case constants.SortCreatedAsc:
		less = func(a, b dtos.FieldOfInterestView) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case constants.SortCreatedDesc:
		less = func(a, b dtos.FieldOfInterestView) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b dtos.FieldOfInterestView) bool { return a.ID < b.ID }
	}
	// input arrives ordered by id, so ties stay in id order
	sort.SliceStable(views, func(i, j int) bool { return less(views[i], views[j]) })
}

// sortLinks gives, per column, the key to request next. The id column only
// offers descending order while the default (id ascending) sort is active.
func sortLinks(current string) map[string]string {
	links := map[string]string{
		"id":          constants.SortIDAsc,
		"description": constants.SortDescriptionAsc,
		"created":     constants.SortCreatedAsc,
	}
	switch current {
	case constants.SortIDAsc:
		links["id"] = constants.SortIDDesc
	case constants.SortDescriptionAsc:
		links["description"] = constants.SortDescriptionDesc
	case constants.SortCreatedAsc:
		links["created"] = constants.SortCreatedDesc
	}
	return links
}

// paginate is 1-based; out-of-range pages are clamped to the nearest valid one.
func paginate(views []dtos.FieldOfInterestView, page, pageSize int) *dtos.FieldOfInterestPage {
	total := len(views)
	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &dtos.FieldOfInterestPage{
		Items:       views[start:end],
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}
