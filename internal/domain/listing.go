package domain

import (
	"slices"
)

// ListQuery descreve a visão de lista: coorte, filtro de vertical e ordenação por margem
type ListQuery struct {
	Cohort       Cohort `json:"cohort" validate:"required,cohort"`
	Industry     string `json:"industry" validate:"omitempty,industry_filter"`
	SortByMargin bool   `json:"sort_by_margin"`
}

type ListResult struct {
	Cohort       Cohort           `json:"cohort"`
	Title        string           `json:"title"`
	Industry     string           `json:"industry"`
	SortByMargin bool             `json:"sort_by_margin"`
	Count        int              `json:"count"`
	Customers    []CustomerRecord `json:"customers"`
}

// ListCustomers aplica, nesta ordem, o predicado da coorte, o filtro de vertical e
// a ordenação por margem. O slice de entrada nunca é modificado.
func ListCustomers(records []CustomerRecord, query ListQuery) ListResult {
	industry := query.Industry
	if industry == "" {
		industry = IndustryAll
	}

	customers := FilterCohort(records, query.Cohort)
	customers = FilterByIndustry(customers, industry)

	if query.SortByMargin {
		customers = SortByMarginAscending(customers)
	}

	return ListResult{
		Cohort:       query.Cohort,
		Title:        query.Cohort.Title(),
		Industry:     industry,
		SortByMargin: query.SortByMargin,
		Count:        len(customers),
		Customers:    customers,
	}
}

// FilterByIndustry mantém apenas os registros da vertical; "All" não filtra
func FilterByIndustry(records []CustomerRecord, industry string) []CustomerRecord {
	if industry == "" || industry == IndustryAll {
		return records
	}

	filtered := make([]CustomerRecord, 0, len(records))
	for _, record := range records {
		if string(record.Industry) == industry {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// SortByMarginAscending retorna uma cópia ordenada pela menor margem primeiro
func SortByMarginAscending(records []CustomerRecord) []CustomerRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b CustomerRecord) int {
		return compareAsc(a.MarginPercent(), b.MarginPercent())
	})
	return sorted
}
