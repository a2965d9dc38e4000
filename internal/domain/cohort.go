package domain

import (
	"slices"
)

// Cohort é um segmento de clientes derivado por predicado; nunca é armazenado
type Cohort string

const (
	CohortCashCows          Cohort = "CASH_COWS"
	CohortConversionTargets Cohort = "CONVERSION"
	CohortChurnRisk         Cohort = "CHURN"
	CohortGeneralPool       Cohort = "GENERAL"

	// CohortAll lista todos os registros, sem predicado
	CohortAll Cohort = "ALL"
)

const (
	// CashCowRevenueThreshold é a receita mínima (exclusiva) de um cash cow
	CashCowRevenueThreshold = 1000.0
	// ConversionUsageThreshold separa alvos de conversão do pool geral
	ConversionUsageThreshold = 300
)

// Cohorts são as quatro coortes exibidas nos tiles do painel
var Cohorts = []Cohort{
	CohortCashCows,
	CohortConversionTargets,
	CohortChurnRisk,
	CohortGeneralPool,
}

func IsKnownCohort(value string) bool {
	return Cohort(value) == CohortAll || slices.Contains(Cohorts, Cohort(value))
}

func (c Cohort) Title() string {
	switch c {
	case CohortCashCows:
		return "Cash Cows List"
	case CohortConversionTargets:
		return "Conversion Targets"
	case CohortChurnRisk:
		return "Churn Risk List"
	case CohortGeneralPool:
		return "General Pool"
	default:
		return "All Users"
	}
}

// Matches avalia o predicado da coorte para um registro
func (c Cohort) Matches(r CustomerRecord) bool {
	switch c {
	case CohortCashCows:
		return r.Plan.IsPaid() && r.Revenue > CashCowRevenueThreshold
	case CohortConversionTargets:
		return r.Plan == PlanFree && r.UsageCount > ConversionUsageThreshold
	case CohortChurnRisk:
		return r.Plan.IsPaid() && r.UsageTrend == UsageTrendDecreasing
	case CohortGeneralPool:
		return r.Plan == PlanFree && r.UsageCount <= ConversionUsageThreshold
	case CohortAll:
		return true
	default:
		return false
	}
}

// Classify retorna todas as coortes cujo predicado o registro satisfaz.
// Em dados normais o resultado tem zero ou um elemento.
func Classify(r CustomerRecord) []Cohort {
	matched := make([]Cohort, 0, 1)
	for _, cohort := range Cohorts {
		if cohort.Matches(r) {
			matched = append(matched, cohort)
		}
	}
	return matched
}

// FilterCohort aplica o predicado e a ordem natural da coorte, sem alterar records
func FilterCohort(records []CustomerRecord, cohort Cohort) []CustomerRecord {
	filtered := make([]CustomerRecord, 0, len(records))
	for _, record := range records {
		if cohort.Matches(record) {
			filtered = append(filtered, record)
		}
	}

	switch cohort {
	case CohortCashCows:
		slices.SortStableFunc(filtered, func(a, b CustomerRecord) int {
			return compareDesc(a.Revenue, b.Revenue)
		})
	case CohortConversionTargets:
		slices.SortStableFunc(filtered, func(a, b CustomerRecord) int {
			return compareDesc(float64(a.UsageCount), float64(b.UsageCount))
		})
	}

	return filtered
}

type DashboardStats struct {
	CashCows          int     `json:"cash_cows"`
	CashCowsRevenue   float64 `json:"cash_cows_revenue"`
	ConversionTargets int     `json:"conversion_targets"`
	ChurnRisk         int     `json:"churn_risk"`
	GeneralPool       int     `json:"general_pool"`
	Unclassified      int     `json:"unclassified"`
	Total             int     `json:"total"`
}

// ComputeDashboardStats conta os membros de cada coorte e soma a receita dos cash cows
func ComputeDashboardStats(records []CustomerRecord) DashboardStats {
	stats := DashboardStats{Total: len(records)}

	for _, record := range records {
		matched := Classify(record)
		if len(matched) == 0 {
			stats.Unclassified++
			continue
		}

		for _, cohort := range matched {
			switch cohort {
			case CohortCashCows:
				stats.CashCows++
				stats.CashCowsRevenue += record.Revenue
			case CohortConversionTargets:
				stats.ConversionTargets++
			case CohortChurnRisk:
				stats.ChurnRisk++
			case CohortGeneralPool:
				stats.GeneralPool++
			}
		}
	}

	return stats
}

// Count retorna o total da coorte informada
func (s DashboardStats) Count(cohort Cohort) int {
	switch cohort {
	case CohortCashCows:
		return s.CashCows
	case CohortConversionTargets:
		return s.ConversionTargets
	case CohortChurnRisk:
		return s.ChurnRisk
	case CohortGeneralPool:
		return s.GeneralPool
	case CohortAll:
		return s.Total
	default:
		return 0
	}
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func compareAsc(a, b float64) int {
	return -compareDesc(a, b)
}
