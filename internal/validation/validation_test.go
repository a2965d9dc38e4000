package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/revenue-command-center/internal/domain"
)

func validRecord() domain.CustomerRecord {
	return domain.CustomerRecord{
		ID:          "user-1",
		Name:        "Mary Smith",
		Company:     "TechCorp LLC",
		Plan:        domain.PlanPro,
		Status:      domain.StatusActive,
		Revenue:     1500,
		UsageCount:  1200,
		UsageTrend:  domain.UsageTrendStable,
		Industry:    domain.IndustryBFSI,
		Stack:       domain.Some(domain.StackConfig{LLM: "gpt-4", TTS: "elevenlabs", Telephony: "twilio"}),
		CostPerMin:  0.095,
		PricePerMin: 0.15,
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *domain.CustomerRecord)
		wantErr  bool
		contains string
	}{
		{
			name:    "Registro completo - válido",
			mutate:  func(r *domain.CustomerRecord) {},
			wantErr: false,
		},
		{
			name:    "Sem stack_config - válido",
			mutate:  func(r *domain.CustomerRecord) { r.Stack = domain.None[domain.StackConfig]() },
			wantErr: false,
		},
		{
			name: "Fornecedor de LLM desconhecido - violação na stack",
			mutate: func(r *domain.CustomerRecord) {
				r.Stack = domain.Some(domain.StackConfig{LLM: "llama", TTS: "azure", Telephony: "plivo"})
			},
			wantErr:  true,
			contains: "llm",
		},
		{
			name:     "Vertical fora do conjunto - violação",
			mutate:   func(r *domain.CustomerRecord) { r.Industry = "Retail" },
			wantErr:  true,
			contains: "industry",
		},
		{
			name:     "Plano desconhecido - violação",
			mutate:   func(r *domain.CustomerRecord) { r.Plan = "Gold" },
			wantErr:  true,
			contains: "plan",
		},
		{
			name:     "Receita negativa - violação",
			mutate:   func(r *domain.CustomerRecord) { r.Revenue = -1 },
			wantErr:  true,
			contains: "revenue",
		},
		{
			name:     "Sem preço por minuto - violação",
			mutate:   func(r *domain.CustomerRecord) { r.PricePerMin = 0 },
			wantErr:  true,
			contains: "pricepermin: deve ser maior que 0",
		},
		{
			name:     "Custo NaN - violação",
			mutate:   func(r *domain.CustomerRecord) { r.CostPerMin = math.NaN() },
			wantErr:  true,
			contains: "costpermin: valor não finito",
		},
		{
			name:     "Preço infinito - violação",
			mutate:   func(r *domain.CustomerRecord) { r.PricePerMin = math.Inf(1) },
			wantErr:  true,
			contains: "pricepermin: valor não finito",
		},
		{
			name:     "Sem identificador - violação",
			mutate:   func(r *domain.CustomerRecord) { r.ID = "" },
			wantErr:  true,
			contains: "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(&record)

			err := ValidateRecord(record)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			messages := Describe(err)
			require.NotEmpty(t, messages)
			assert.Contains(t, messages[0], tt.contains)
		})
	}
}

func TestValidateListQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   domain.ListQuery
		wantErr bool
	}{
		{name: "Coorte e vertical conhecidas", query: domain.ListQuery{Cohort: domain.CohortCashCows, Industry: "BFSI"}},
		{name: "Filtro All", query: domain.ListQuery{Cohort: domain.CohortChurnRisk, Industry: domain.IndustryAll}},
		{name: "Sem filtro de vertical", query: domain.ListQuery{Cohort: domain.CohortAll}},
		{name: "Coorte desconhecida", query: domain.ListQuery{Cohort: "VIP"}, wantErr: true},
		{name: "Coorte vazia", query: domain.ListQuery{}, wantErr: true},
		{name: "Vertical desconhecida", query: domain.ListQuery{Cohort: domain.CohortGeneralPool, Industry: "Retail"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListQuery(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDescribe_Nil(t *testing.T) {
	assert.Nil(t, Describe(nil))
}
