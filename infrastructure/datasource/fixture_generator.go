package datasource

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/pkg/utils"
)

var (
	firstNames = []string{"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth",
		"David", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen"}
	lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin"}
	companies = []string{"TechCorp", "Innovate", "GlobalSol", "NextGen", "AlphaSys", "BetaInc", "CloudNet", "DataFlow",
		"SmartSoft", "WebWorks", "CyberDyne", "BlueSky", "RedRock", "GreenField", "SilverLining"}
	companySuffixes = []string{"LLC", "Inc", "Group", "Systems"}
)

// fixtureGroup define o perfil de geração de cada grupo de clientes
type fixtureGroup struct {
	size    int
	paid    bool
	revenue [2]int
	usage   [2]int
	trend   func(r *rand.Rand) domain.UsageTrend
	signup  [2]int // dias atrás
}

var fixtureGroups = []fixtureGroup{
	{ // cash cows
		size: 20, paid: true, revenue: [2]int{1000, 5000}, usage: [2]int{1000, 5000}, signup: [2]int{30, 365},
		trend: func(r *rand.Rand) domain.UsageTrend {
			if r.Float64() > 0.5 {
				return domain.UsageTrendIncreasing
			}
			return domain.UsageTrendStable
		},
	},
	{ // alvos de conversão
		size: 30, revenue: [2]int{0, 0}, usage: [2]int{300, 800}, signup: [2]int{15, 90},
		trend: func(*rand.Rand) domain.UsageTrend { return domain.UsageTrendIncreasing },
	},
	{ // risco de churn
		size: 10, paid: true, revenue: [2]int{500, 2000}, usage: [2]int{0, 20}, signup: [2]int{60, 365},
		trend: func(*rand.Rand) domain.UsageTrend { return domain.UsageTrendDecreasing },
	},
	{ // pool geral
		size: 40, revenue: [2]int{0, 0}, usage: [2]int{0, 50}, signup: [2]int{0, 7},
		trend: func(*rand.Rand) domain.UsageTrend { return domain.UsageTrendStable },
	},
}

const whaleUsageThreshold = 15000

type fixtureGenerator struct {
	rng  *rand.Rand
	seed uint64
	now  time.Time
}

func newFixtureGenerator(seed uint64, now time.Time) *fixtureGenerator {
	return &fixtureGenerator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
		now:  now,
	}
}

// forKey devolve um gerador derivado da semente e da chave, estável entre execuções
func (g *fixtureGenerator) forKey(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	sum := h.Sum64()
	return rand.New(rand.NewPCG(g.seed, sum))
}

func randomInt(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func randomFloat(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func pick[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}

func (g *fixtureGenerator) customers() []domain.CustomerRecord {
	records := make([]domain.CustomerRecord, 0, 100)
	id := 1

	for _, group := range fixtureGroups {
		for i := 0; i < group.size; i++ {
			records = append(records, g.customer(id, group))
			id++
		}
	}

	return records
}

func (g *fixtureGenerator) customer(id int, group fixtureGroup) domain.CustomerRecord {
	r := g.rng

	industry := pick(r, domain.Industries)
	stack := domain.StackConfig{
		LLM:       pick(r, domain.Providers(domain.ProviderLLM)),
		TTS:       pick(r, domain.Providers(domain.ProviderTTS)),
		Telephony: pick(r, domain.Providers(domain.ProviderTelephony)),
	}

	plan := domain.PlanFree
	if group.paid {
		plan = domain.PlanPro
		if r.Float64() > 0.5 {
			plan = domain.PlanEnterprise
		}
	}

	revenue := float64(randomInt(r, group.revenue[0], group.revenue[1]))
	usage := float64(randomInt(r, group.usage[0], group.usage[1]))

	if plan.IsPaid() {
		switch industry {
		case domain.IndustryBFSI:
			revenue *= 2.5
		case domain.IndustryEcommerce:
			revenue *= 0.7
			usage *= 1.5
		}
	}
	if industry == domain.IndustryHealthTech {
		usage *= 1.3
	}

	usageCount := int(math.Round(usage))
	signup := g.now.Add(-time.Duration(randomInt(r, group.signup[0], group.signup[1])) * 24 * time.Hour)

	record := domain.CustomerRecord{
		ID:          fmt.Sprintf("user-%d", id),
		Name:        fmt.Sprintf("%s %s", pick(r, firstNames), pick(r, lastNames)),
		Company:     fmt.Sprintf("%s %s", pick(r, companies), pick(r, companySuffixes)),
		Plan:        plan,
		Status:      domain.StatusActive,
		Revenue:     math.Round(revenue),
		UsageCount:  usageCount,
		UsageTrend:  group.trend(r),
		SignupDate:  domain.NewTimestamp(signup),
		Industry:    industry,
		Stack:       domain.Some(stack),
		CostPerMin:  stack.CostPerMin(),
		PricePerMin: utils.RoundHalfUp(randomFloat(r, 0.12, 0.18), 4),
		IsWhale:     domain.Some(plan == domain.PlanEnterprise && usageCount > whaleUsageThreshold),
	}

	return record
}

// funnelHistory gera 31 dias com a conversão subindo de 10% para 25%
func (g *fixtureGenerator) funnelHistory() []domain.FunnelHistoryItem {
	r := g.forKey("funnel-history")
	history := make([]domain.FunnelHistoryItem, 0, 31)

	for i := 30; i >= 0; i-- {
		date := g.now.AddDate(0, 0, -i)
		progress := float64(30-i) / 30

		conversionRate := 10 + progress*15 + (r.Float64()*2 - 1)
		totalSignups := int(math.Floor(50 + progress*20 + r.Float64()*10))
		paid := int(math.Floor(float64(totalSignups) * conversionRate / 100))
		trials := int(math.Floor(float64(totalSignups)*0.6)) - paid

		history = append(history, domain.FunnelHistoryItem{
			Date:            date.Format(time.DateOnly),
			TotalSignups:    totalSignups,
			ActiveTrials:    trials,
			PaidConversions: paid,
			ConversionRate:  utils.RoundHalfUp(conversionRate, 1),
		})
	}

	return history
}

func (g *fixtureGenerator) customerHistory(customerID string) []domain.HistoryPoint {
	r := g.forKey("history:" + customerID)
	history := make([]domain.HistoryPoint, 0, 14)

	for i := 0; i < 14; i++ {
		history = append(history, domain.HistoryPoint{
			Day:     fmt.Sprintf("Day %d", i),
			Calls:   randomInt(r, 50, 200),
			Latency: randomInt(r, 150, 600),
		})
	}

	return history
}

func (g *fixtureGenerator) averageLatency(record domain.CustomerRecord) int {
	return randomInt(g.forKey("latency:"+record.ID), 200, 400)
}

// callLatency sorteia a latência de uma chamada; 10% delas são picos
func callLatency(r *rand.Rand) int {
	if r.Float64() > 0.1 {
		return randomInt(r, 100, 800)
	}
	return randomInt(r, 1200, 2500)
}

func newCall(r *rand.Rand, at time.Time, records []domain.CustomerRecord) domain.CallEvent {
	call := domain.CallEvent{
		CreatedAt:     domain.NewTimestamp(at),
		LatencyMs:     callLatency(r),
		MarginPercent: utils.RoundHalfUp(randomFloat(r, 10, 45), 1),
	}

	if id, err := utils.GenerateID(); err == nil {
		call.ID = "call_" + id
	}
	if len(records) > 0 {
		call.UserID = pick(r, records).ID
	}

	return call
}

func (g *fixtureGenerator) callLog(size int, records []domain.CustomerRecord) []domain.CallEvent {
	r := g.forKey("calls")
	calls := make([]domain.CallEvent, 0, size)

	for i := 0; i < size; i++ {
		calls = append(calls, newCall(r, g.now.Add(-time.Duration(i*2)*time.Minute), records))
	}

	return calls
}
