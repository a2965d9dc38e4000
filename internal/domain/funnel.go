package domain

import (
	"github.com/vfg2006/revenue-command-center/pkg/utils"
)

// ValuePerLead é o valor assumido de cada lead que não converteu
const ValuePerLead = 50

const (
	StageSignups      = "Signups"
	StageActiveTrials = "Active Trials"
	StagePaid         = "Paid"
)

// FunnelSnapshot são as contagens agregadas do período
type FunnelSnapshot struct {
	Signups int `json:"signups"`
	Trials  int `json:"trials"`
	Paid    int `json:"paid"`
}

type FunnelStage struct {
	Stage             string `json:"stage"`
	Users             int    `json:"users"`
	ConversionPercent int    `json:"conversion_percent"`
}

type FunnelReport struct {
	Snapshot           FunnelSnapshot `json:"snapshot"`
	Stages             []FunnelStage  `json:"stages"`
	ConversionRate     float64        `json:"conversion_rate"`
	DropOffRate        int            `json:"drop_off_rate"`
	RevenueOpportunity float64        `json:"revenue_opportunity"`
}

// FunnelHistoryItem é um ponto diário da evolução do funil
type FunnelHistoryItem struct {
	Date            string  `json:"date"`
	TotalSignups    int     `json:"total_signups"`
	ActiveTrials    int     `json:"active_trials"`
	PaidConversions int     `json:"paid_conversions"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// AggregateFunnel calcula a conversão de cada etapa em relação aos signups,
// a taxa de abandono e a oportunidade de receita
func AggregateFunnel(snapshot FunnelSnapshot) FunnelReport {
	report := FunnelReport{
		Snapshot: snapshot,
		Stages: []FunnelStage{
			{Stage: StageSignups, Users: snapshot.Signups},
			{Stage: StageActiveTrials, Users: snapshot.Trials},
			{Stage: StagePaid, Users: snapshot.Paid},
		},
	}

	// Sem signups todas as porcentagens ficam em zero
	if snapshot.Signups <= 0 {
		return report
	}

	signups := float64(snapshot.Signups)
	lost := snapshot.Signups - snapshot.Paid

	report.Stages[0].ConversionPercent = 100
	report.Stages[1].ConversionPercent = int(utils.RoundHalfUp(utils.Percent(float64(snapshot.Trials), signups), 0))
	report.Stages[2].ConversionPercent = int(utils.RoundHalfUp(utils.Percent(float64(snapshot.Paid), signups), 0))

	report.ConversionRate = utils.RoundHalfUp(utils.Percent(float64(snapshot.Paid), signups), 1)
	// Mais pagantes que signups (janelas diferentes na origem) não gera abandono negativo,
	// mas a oportunidade segue a fórmula sem ajuste
	report.DropOffRate = int(utils.RoundHalfUp(utils.Percent(float64(max(lost, 0)), signups), 0))

	report.RevenueOpportunity = float64(lost * ValuePerLead)

	return report
}
