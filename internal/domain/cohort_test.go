package domain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func customer(id string, plan Plan, revenue float64, usage int, trend UsageTrend) CustomerRecord {
	return CustomerRecord{
		ID:          id,
		Name:        "Cliente " + id,
		Company:     "Empresa " + id,
		Plan:        plan,
		Status:      StatusActive,
		Revenue:     revenue,
		UsageCount:  usage,
		UsageTrend:  trend,
		Industry:    IndustryBFSI,
		CostPerMin:  0.06,
		PricePerMin: 0.15,
	}
}

func TestCohort_Matches(t *testing.T) {
	tests := []struct {
		name     string
		record   CustomerRecord
		expected []Cohort
	}{
		{
			name:     "Enterprise com receita 1500 - cash cow",
			record:   customer("u1", PlanEnterprise, 1500, 0, UsageTrendStable),
			expected: []Cohort{CohortCashCows},
		},
		{
			name:     "Free com uso 350 - alvo de conversão",
			record:   customer("u2", PlanFree, 0, 350, UsageTrendIncreasing),
			expected: []Cohort{CohortConversionTargets},
		},
		{
			name:     "Free com uso exatamente 300 - pool geral",
			record:   customer("u3", PlanFree, 0, 300, UsageTrendStable),
			expected: []Cohort{CohortGeneralPool},
		},
		{
			name:     "Pro com receita exatamente 1000 - não é cash cow",
			record:   customer("u4", PlanPro, 1000, 100, UsageTrendStable),
			expected: []Cohort{},
		},
		{
			name:     "Pro com uso caindo - risco de churn",
			record:   customer("u5", PlanPro, 500, 10, UsageTrendDecreasing),
			expected: []Cohort{CohortChurnRisk},
		},
		{
			name:     "Enterprise com receita alta e uso caindo - pertence às duas coortes pagas",
			record:   customer("u6", PlanEnterprise, 5000, 10, UsageTrendDecreasing),
			expected: []Cohort{CohortCashCows, CohortChurnRisk},
		},
		{
			name:     "Premium com receita alta - plano legado fica fora das coortes",
			record:   customer("u7", PlanPremium, 5000, 1000, UsageTrendDecreasing),
			expected: []Cohort{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Classify(tt.record)
			second := Classify(tt.record)

			assert.Equal(t, tt.expected, first)
			assert.Equal(t, first, second)

			for _, cohort := range Cohorts {
				assert.Equal(t, slices.Contains(tt.expected, cohort), cohort.Matches(tt.record), "coorte %s", cohort)
			}
			assert.True(t, CohortAll.Matches(tt.record))
		})
	}
}

func TestFilterCohort_NaturalOrder(t *testing.T) {
	records := []CustomerRecord{
		customer("a", PlanPro, 1200, 0, UsageTrendDecreasing),
		customer("b", PlanFree, 0, 400, UsageTrendStable),
		customer("c", PlanEnterprise, 9000, 0, UsageTrendStable),
		customer("d", PlanFree, 0, 800, UsageTrendStable),
		customer("e", PlanPro, 700, 0, UsageTrendDecreasing),
		customer("f", PlanFree, 0, 20, UsageTrendStable),
		customer("g", PlanFree, 0, 5, UsageTrendStable),
	}
	original := slices.Clone(records)

	assert.Equal(t, []string{"c", "a"}, ids(FilterCohort(records, CohortCashCows)))
	assert.Equal(t, []string{"d", "b"}, ids(FilterCohort(records, CohortConversionTargets)))
	assert.Equal(t, []string{"a", "e"}, ids(FilterCohort(records, CohortChurnRisk)))
	assert.Equal(t, []string{"f", "g"}, ids(FilterCohort(records, CohortGeneralPool)))
	assert.Len(t, FilterCohort(records, CohortAll), len(records))
	assert.Empty(t, FilterCohort(records, Cohort("UNKNOWN")))

	assert.Equal(t, original, records)
}

func TestFilterCohort_MembershipIndependentOfInputOrder(t *testing.T) {
	records := []CustomerRecord{
		customer("a", PlanPro, 1200, 0, UsageTrendDecreasing),
		customer("b", PlanFree, 0, 400, UsageTrendStable),
		customer("c", PlanEnterprise, 9000, 0, UsageTrendStable),
		customer("d", PlanFree, 0, 10, UsageTrendStable),
	}
	reversed := slices.Clone(records)
	slices.Reverse(reversed)

	for _, cohort := range Cohorts {
		membership := func(records []CustomerRecord) []string {
			result := make([]string, 0)
			for _, r := range FilterCohort(records, cohort) {
				result = append(result, r.ID)
			}
			slices.Sort(result)
			return result
		}

		assert.Equal(t, membership(records), membership(reversed), "coorte %s", cohort)
	}
}

func TestComputeDashboardStats(t *testing.T) {
	records := []CustomerRecord{
		customer("a", PlanPro, 1200, 0, UsageTrendStable),
		customer("b", PlanEnterprise, 3000, 0, UsageTrendIncreasing),
		customer("c", PlanFree, 0, 400, UsageTrendStable),
		customer("d", PlanPro, 300, 0, UsageTrendDecreasing),
		customer("e", PlanFree, 0, 10, UsageTrendStable),
		customer("f", PlanFree, 0, 0, UsageTrendStable),
		customer("g", PlanPro, 500, 50, UsageTrendStable),
	}

	stats := ComputeDashboardStats(records)

	assert.Equal(t, 2, stats.CashCows)
	assert.Equal(t, 4200.0, stats.CashCowsRevenue)
	assert.Equal(t, 1, stats.ConversionTargets)
	assert.Equal(t, 1, stats.ChurnRisk)
	assert.Equal(t, 2, stats.GeneralPool)
	assert.Equal(t, 1, stats.Unclassified)
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.Count(CohortGeneralPool))
	assert.Equal(t, 7, stats.Count(CohortAll))
}

func TestComputeDashboardStats_Empty(t *testing.T) {
	stats := ComputeDashboardStats(nil)
	assert.Equal(t, DashboardStats{}, stats)
}

func TestIsKnownCohort(t *testing.T) {
	assert.True(t, IsKnownCohort("CASH_COWS"))
	assert.True(t, IsKnownCohort("ALL"))
	assert.False(t, IsKnownCohort("cash_cows"))
	assert.False(t, IsKnownCohort(""))
}
