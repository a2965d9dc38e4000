// Package domain contém as estruturas de dados e os cálculos do domínio da aplicação
package domain

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

type Plan string

const (
	PlanFree       Plan = "Free"
	PlanPro        Plan = "Pro"
	PlanPremium    Plan = "Premium"
	PlanEnterprise Plan = "Enterprise"
)

// IsPaid indica os planos considerados pelas regras de coorte pagas.
// Premium é um plano legado e não entra nas coortes pagas.
func (p Plan) IsPaid() bool {
	return p == PlanPro || p == PlanEnterprise
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

type UsageTrend string

const (
	UsageTrendStable     UsageTrend = "Stable"
	UsageTrendIncreasing UsageTrend = "Increasing"
	UsageTrendDecreasing UsageTrend = "Decreasing"
)

type Industry string

const (
	IndustryBFSI        Industry = "BFSI"
	IndustryHealthTech  Industry = "Health Tech"
	IndustryEcommerce   Industry = "Ecommerce"
	IndustryEdTech      Industry = "EdTech"
	IndustryHospitality Industry = "Hospitality"

	// IndustryAll é o valor do filtro de vertical que não filtra nada
	IndustryAll = "All"
)

// Industries segue a ordem do seletor de verticais do painel
var Industries = []Industry{
	IndustryBFSI,
	IndustryHealthTech,
	IndustryEcommerce,
	IndustryEdTech,
	IndustryHospitality,
}

func IsKnownIndustry(value string) bool {
	for _, industry := range Industries {
		if string(industry) == value {
			return true
		}
	}
	return false
}

// StackConfig descreve os três fornecedores usados nas chamadas de um cliente
type StackConfig struct {
	LLM       string `json:"llm" validate:"required,llm_provider"`
	TTS       string `json:"tts" validate:"required,tts_provider"`
	Telephony string `json:"telephony" validate:"required,telephony_provider"`
}

// CustomerRecord é um cliente (tenant) do painel. MarginPercent e Tags nunca são
// armazenados: são recalculados a partir de CostPerMin e PricePerMin a cada leitura.
type CustomerRecord struct {
	ID          string                `json:"id" validate:"required"`
	Name        string                `json:"name"`
	Company     string                `json:"company"`
	Plan        Plan                  `json:"plan" validate:"oneof=Free Pro Premium Enterprise"`
	Status      Status                `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Revenue     float64               `json:"revenue" validate:"gte=0"`
	UsageCount  int                   `json:"usage_count" validate:"gte=0"`
	UsageTrend  UsageTrend            `json:"usage_trend" validate:"oneof=Stable Increasing Decreasing"`
	SignupDate  Timestamp             `json:"signup_date"`
	Industry    Industry              `json:"industry" validate:"industry"`
	Stack       Optional[StackConfig] `json:"stack_config"`
	CostPerMin  float64               `json:"cost_per_min" validate:"finite,gte=0"`
	PricePerMin float64               `json:"price_per_min" validate:"finite,gt=0"`
	IsWhale     Optional[bool]        `json:"is_whale"`
}

// customerRecordFields evita recursão no MarshalJSON
type customerRecordFields CustomerRecord

func (r CustomerRecord) MarshalJSON() ([]byte, error) {
	economics := r.Economics()

	return json.Marshal(struct {
		customerRecordFields
		MarginPercent float64  `json:"margin_percent"`
		Tags          []string `json:"tags"`
	}{
		customerRecordFields: customerRecordFields(r),
		MarginPercent:        economics.MarginPercent,
		Tags:                 economics.Tags,
	})
}

// Economics calcula a economia unitária do cliente a partir do custo e preço por minuto
func (r CustomerRecord) Economics() UnitEconomics {
	return EconomicsFromCost(r.CostPerMin, r.PricePerMin)
}

func (r CustomerRecord) MarginPercent() float64 {
	return r.Economics().MarginPercent
}

func (r CustomerRecord) Tags() []string {
	return r.Economics().Tags
}

// Normalize recalcula o custo por minuto a partir da stack quando ela está presente.
// Tarifas NaN ou infinitas viram zero.
func (r CustomerRecord) Normalize() CustomerRecord {
	if stack, ok := r.Stack.Get(); ok {
		r.CostPerMin = stack.CostPerMin()
	} else {
		r.CostPerMin = roundRate(r.CostPerMin)
	}
	r.PricePerMin = roundRate(r.PricePerMin)
	return r
}

// Timestamp aceita as datas no formato ISO gerado pelo navegador (com Z) e
// pelo seed em Python (sem fuso)
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.DateOnly,
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*t = Timestamp{}
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			*t = Timestamp{Time: parsed}
			return nil
		}
	}

	return fmt.Errorf("formato de data não suportado: %q", raw)
}

// CustomerDetail é a visão de detalhe: o registro, sua economia unitária e as coortes
// em que ele se encaixa. StackConfig só aparece quando a origem informou a stack.
type CustomerDetail struct {
	Customer  CustomerRecord        `json:"customer"`
	Economics UnitEconomics         `json:"economics"`
	Stack     Optional[StackConfig] `json:"stack_config"`
	Cohorts   []Cohort              `json:"cohorts"`
}

func NewCustomerDetail(r CustomerRecord) CustomerDetail {
	economics := r.Economics()
	if stack, ok := r.Stack.Get(); ok {
		economics = CalculateUnitEconomics(stack, r.PricePerMin)
	}

	return CustomerDetail{
		Customer:  r,
		Economics: economics,
		Stack:     r.Stack,
		Cohorts:   Classify(r),
	}
}
