package domain

import (
	"slices"
	"strings"
	"time"
)

const (
	// RiskMarginThreshold é a margem (%) abaixo da qual o cliente é sinalizado com lucro baixo
	RiskMarginThreshold = 15.0

	RiskReasonLowProfit = "Low Profit"
	RiskReasonUsageDrop = "Usage Drop"

	// SpikeLatencyMs separa as chamadas normais dos picos de latência
	SpikeLatencyMs = 1000

	CommandCenterColumnSize = 5
	// ActivationUsageThreshold é o uso mínimo para considerar um novo cliente ativado
	ActivationUsageThreshold = 10
	// NewArrivalWindow limita a coluna de novos clientes aos cadastros recentes
	NewArrivalWindow = 14 * 24 * time.Hour
)

// HistoryPoint é um dia do histórico de chamadas de um cliente
type HistoryPoint struct {
	Day     string `json:"day"`
	Calls   int    `json:"calls"`
	Latency int    `json:"latency"`
}

// CallEvent é uma chamada do log usado pelo pulso e pela simulação de tráfego
type CallEvent struct {
	ID            string    `json:"id,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
	LatencyMs     int       `json:"latency_ms"`
	UserID        string    `json:"user_id,omitempty"`
	MarginPercent float64   `json:"margin_percent,omitempty"`
}

func (c CallEvent) IsSpike() bool {
	return c.LatencyMs > SpikeLatencyMs
}

// PulsePoint é a projeção de uma chamada exibida no gráfico de latência
type PulsePoint struct {
	CreatedAt Timestamp `json:"created_at"`
	LatencyMs int       `json:"latency_ms"`
}

func PulsePoints(calls []CallEvent) []PulsePoint {
	points := make([]PulsePoint, 0, len(calls))
	for _, call := range calls {
		points = append(points, PulsePoint{CreatedAt: call.CreatedAt, LatencyMs: call.LatencyMs})
	}
	return points
}

type PulseSample struct {
	Time      time.Time `json:"time"`
	LatencyMs int       `json:"latency_ms"`
}

// PulseStatus é a janela deslizante do monitor de latência
type PulseStatus struct {
	Samples     []PulseSample         `json:"samples"`
	Latest      Optional[PulseSample] `json:"latest"`
	Unstable    bool                  `json:"unstable"`
	ThresholdMs int                   `json:"threshold_ms"`
	Running     bool                  `json:"running"`
}

type TrafficSimulation struct {
	Message        string      `json:"message"`
	SpikesDetected int         `json:"spikes_detected"`
	Details        []CallEvent `json:"details"`
}

func CountSpikes(calls []CallEvent) int {
	spikes := 0
	for _, call := range calls {
		if call.IsSpike() {
			spikes++
		}
	}
	return spikes
}

type RiskUser struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	Company    string   `json:"company"`
	AvgMargin  float64  `json:"avg_margin"`
	AvgLatency int      `json:"avg_latency"`
	Reasons    []string `json:"reasons"`
}

// RiskReasons lista os motivos de risco de um cliente; vazio quando não há risco
func RiskReasons(r CustomerRecord) []string {
	reasons := make([]string, 0, 2)
	if r.MarginPercent() < RiskMarginThreshold {
		reasons = append(reasons, RiskReasonLowProfit)
	}
	if r.UsageTrend == UsageTrendDecreasing {
		reasons = append(reasons, RiskReasonUsageDrop)
	}
	return reasons
}

// BuildRiskUsers seleciona os clientes com algum motivo de risco, na ordem de entrada.
// latency fornece a latência média de cada cliente.
func BuildRiskUsers(records []CustomerRecord, latency func(CustomerRecord) int) []RiskUser {
	users := make([]RiskUser, 0)
	for _, record := range records {
		reasons := RiskReasons(record)
		if len(reasons) == 0 {
			continue
		}

		user := RiskUser{
			UserID:    record.ID,
			Name:      record.Name,
			Company:   record.Company,
			AvgMargin: record.MarginPercent(),
			Reasons:   reasons,
		}
		if latency != nil {
			user.AvgLatency = latency(record)
		}
		users = append(users, user)
	}
	return users
}

// CommandCenterUser é o cartão do quadro de ações. Os campos extras dependem da coluna:
// risk_reason na coluna de risco, activated nos novos clientes e potential_arr nos destaques.
type CommandCenterUser struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Company       string            `json:"company"`
	CompanyName   string            `json:"company_name"`
	Industry      Industry          `json:"industry"`
	Plan          Plan              `json:"plan"`
	Revenue       float64           `json:"revenue"`
	UsageCount    int               `json:"usage_count"`
	UsageTrend    UsageTrend        `json:"usage_trend"`
	MarginPercent float64           `json:"margin_percent"`
	RiskReason    string            `json:"risk_reason,omitempty"`
	Activated     Optional[bool]    `json:"activated"`
	PotentialARR  Optional[float64] `json:"potential_arr"`
}

// Normalize preenche company_name quando a origem só envia company
func (u CommandCenterUser) Normalize() CommandCenterUser {
	if u.CompanyName == "" {
		u.CompanyName = u.Company
	}
	if u.Company == "" {
		u.Company = u.CompanyName
	}
	return u
}

func newCommandCenterUser(r CustomerRecord) CommandCenterUser {
	return CommandCenterUser{
		ID:            r.ID,
		Name:          r.Name,
		Company:       r.Company,
		CompanyName:   r.Company,
		Industry:      r.Industry,
		Plan:          r.Plan,
		Revenue:       r.Revenue,
		UsageCount:    r.UsageCount,
		UsageTrend:    r.UsageTrend,
		MarginPercent: r.MarginPercent(),
		Activated:     None[bool](),
		PotentialARR:  None[float64](),
	}
}

type CommandCenterBoard struct {
	ChurnRisk     []CommandCenterUser `json:"churn_risk"`
	NewArrivals   []CommandCenterUser `json:"new_arrivals"`
	TopPerformers []CommandCenterUser `json:"top_performers"`
}

func EmptyCommandCenterBoard() CommandCenterBoard {
	return CommandCenterBoard{
		ChurnRisk:     []CommandCenterUser{},
		NewArrivals:   []CommandCenterUser{},
		TopPerformers: []CommandCenterUser{},
	}
}

// Normalize garante colunas não nulas e company_name preenchido
func (b CommandCenterBoard) Normalize() CommandCenterBoard {
	normalized := EmptyCommandCenterBoard()
	for _, u := range b.ChurnRisk {
		normalized.ChurnRisk = append(normalized.ChurnRisk, u.Normalize())
	}
	for _, u := range b.NewArrivals {
		normalized.NewArrivals = append(normalized.NewArrivals, u.Normalize())
	}
	for _, u := range b.TopPerformers {
		normalized.TopPerformers = append(normalized.TopPerformers, u.Normalize())
	}
	return normalized
}

// BuildCommandCenter monta o quadro de ações a partir dos registros. É uma classificação
// independente das coortes do painel, com seus próprios campos por coluna.
func BuildCommandCenter(records []CustomerRecord, now time.Time) CommandCenterBoard {
	board := EmptyCommandCenterBoard()

	for _, record := range FilterCohort(records, CohortChurnRisk) {
		if len(board.ChurnRisk) == CommandCenterColumnSize {
			break
		}
		user := newCommandCenterUser(record)
		user.RiskReason = strings.Join(RiskReasons(record), ", ")
		board.ChurnRisk = append(board.ChurnRisk, user)
	}

	arrivals := make([]CustomerRecord, 0)
	for _, record := range records {
		if record.SignupDate.IsZero() || now.Sub(record.SignupDate.Time) > NewArrivalWindow {
			continue
		}
		arrivals = append(arrivals, record)
	}
	slices.SortStableFunc(arrivals, func(a, b CustomerRecord) int {
		return b.SignupDate.Compare(a.SignupDate.Time)
	})
	for _, record := range arrivals {
		if len(board.NewArrivals) == CommandCenterColumnSize {
			break
		}
		user := newCommandCenterUser(record)
		user.Activated = Some(record.UsageCount >= ActivationUsageThreshold)
		board.NewArrivals = append(board.NewArrivals, user)
	}

	for _, record := range FilterCohort(records, CohortCashCows) {
		if len(board.TopPerformers) == CommandCenterColumnSize {
			break
		}
		user := newCommandCenterUser(record)
		user.PotentialARR = Some(record.Revenue * 12)
		board.TopPerformers = append(board.TopPerformers, user)
	}

	return board
}
