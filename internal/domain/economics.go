package domain

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	// HighCostThreshold é o custo por minuto acima do qual a stack é considerada cara
	HighCostThreshold = 0.10
	// OptimalCostPerMin é o custo sugerido quando a stack é cara
	OptimalCostPerMin = 0.06
	// LowMarginThreshold é a margem (%) abaixo da qual o cliente recebe a tag de margem baixa
	LowMarginThreshold = 20.0

	TagLowMargin     = "Low Margin"
	TagHighCostStack = "High Cost Stack"
)

type ProviderKind string

const (
	ProviderLLM       ProviderKind = "llm"
	ProviderTTS       ProviderKind = "tts"
	ProviderTelephony ProviderKind = "telephony"
)

// costTable contém o custo por minuto de cada fornecedor
var costTable = map[ProviderKind]map[string]decimal.Decimal{
	ProviderLLM: {
		"gpt-4":          decimal.RequireFromString("0.03"),
		"gpt-3.5-turbo":  decimal.RequireFromString("0.0015"),
		"claude-instant": decimal.RequireFromString("0.002"),
		"claude-3-opus":  decimal.RequireFromString("0.04"),
	},
	ProviderTTS: {
		"elevenlabs": decimal.RequireFromString("0.05"),
		"deepgram":   decimal.RequireFromString("0.015"),
		"azure":      decimal.RequireFromString("0.01"),
		"openai-tts": decimal.RequireFromString("0.02"),
	},
	ProviderTelephony: {
		"twilio": decimal.RequireFromString("0.015"),
		"plivo":  decimal.RequireFromString("0.010"),
	},
}

var (
	highCostThreshold  = decimal.NewFromFloat(HighCostThreshold)
	optimalCostPerMin  = decimal.NewFromFloat(OptimalCostPerMin)
	lowMarginThreshold = decimal.NewFromFloat(LowMarginThreshold)
	hundred            = decimal.NewFromInt(100)
)

// ProviderRate retorna o custo por minuto de um fornecedor e se ele é conhecido
func ProviderRate(kind ProviderKind, provider string) (float64, bool) {
	rate, ok := costTable[kind][provider]
	if !ok {
		return 0, false
	}
	return rate.InexactFloat64(), true
}

// Providers lista os fornecedores conhecidos de um tipo, em ordem alfabética
func Providers(kind ProviderKind) []string {
	providers := make([]string, 0, len(costTable[kind]))
	for name := range costTable[kind] {
		providers = append(providers, name)
	}
	slices.Sort(providers)
	return providers
}

func (s StackConfig) cost() decimal.Decimal {
	// Fornecedor desconhecido soma zero; a validação na fonte de dados registra a violação
	return costTable[ProviderLLM][s.LLM].
		Add(costTable[ProviderTTS][s.TTS]).
		Add(costTable[ProviderTelephony][s.Telephony])
}

// CostPerMin soma as tarifas dos três componentes da stack
func (s StackConfig) CostPerMin() float64 {
	return s.cost().Round(4).InexactFloat64()
}

// SavingsOpportunity é apresentada quando a stack ultrapassa o limite de custo
type SavingsOpportunity struct {
	OptimalCostPerMin float64 `json:"optimal_cost_per_min"`
	PotentialSavings  float64 `json:"potential_savings"`
}

type UnitEconomics struct {
	CostPerMin    float64                      `json:"cost_per_min"`
	PricePerMin   float64                      `json:"price_per_min"`
	MarginPercent float64                      `json:"margin_percent"`
	HighCost      bool                         `json:"high_cost"`
	Tags          []string                     `json:"tags"`
	Savings       Optional[SavingsOpportunity] `json:"savings"`
}

// CalculateUnitEconomics calcula custo, margem, tags e oportunidade de economia
// de uma stack vendida a pricePerMin
func CalculateUnitEconomics(stack StackConfig, pricePerMin float64) UnitEconomics {
	return calculateEconomics(stack.cost(), rateDecimal(pricePerMin))
}

// EconomicsFromCost faz o mesmo cálculo quando o custo por minuto já é conhecido
func EconomicsFromCost(costPerMin, pricePerMin float64) UnitEconomics {
	return calculateEconomics(rateDecimal(costPerMin), rateDecimal(pricePerMin))
}

func calculateEconomics(cost, price decimal.Decimal) UnitEconomics {
	margin := decimal.Zero
	if price.IsPositive() {
		margin = price.Sub(cost).Div(price).Mul(hundred)
	}

	highCost := cost.GreaterThan(highCostThreshold)

	tags := make([]string, 0, 2)
	if margin.LessThan(lowMarginThreshold) {
		tags = append(tags, TagLowMargin)
	}
	if highCost {
		tags = append(tags, TagHighCostStack)
	}

	economics := UnitEconomics{
		CostPerMin:    cost.Round(4).InexactFloat64(),
		PricePerMin:   price.Round(4).InexactFloat64(),
		MarginPercent: margin.Round(1).InexactFloat64(),
		HighCost:      highCost,
		Tags:          tags,
		Savings:       None[SavingsOpportunity](),
	}

	if highCost {
		economics.Savings = Some(SavingsOpportunity{
			OptimalCostPerMin: OptimalCostPerMin,
			PotentialSavings:  cost.Sub(optimalCostPerMin).Round(3).InexactFloat64(),
		})
	}

	return economics
}

func roundRate(value float64) float64 {
	return rateDecimal(value).Round(4).InexactFloat64()
}

// rateDecimal trata NaN e infinito como tarifa zero; a violação é registrada na fonte
func rateDecimal(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}
