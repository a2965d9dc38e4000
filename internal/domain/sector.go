package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vfg2006/revenue-command-center/pkg/utils"
)

// SectorBreakdown mapeia a vertical para a receita agregada
type SectorBreakdown map[string]float64

type SectorShare struct {
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
	SharePercent float64 `json:"share_percent"`
}

type SectorInsight struct {
	Sector   string  `json:"sector"`
	Revenue  float64 `json:"revenue"`
	TopShare float64 `json:"top_share"`
	Message  string  `json:"message"`
}

type SectorReport struct {
	Sectors      []SectorShare           `json:"sectors"`
	TotalRevenue float64                 `json:"total_revenue"`
	Top          Optional[SectorInsight] `json:"top"`
}

// AggregateSectors ordena as verticais por receita (nome como desempate) e calcula a
// participação de cada uma. Sem verticais, o relatório não tem insight.
func AggregateSectors(breakdown SectorBreakdown) SectorReport {
	report := SectorReport{
		Sectors: make([]SectorShare, 0, len(breakdown)),
		Top:     None[SectorInsight](),
	}

	for name, revenue := range breakdown {
		report.Sectors = append(report.Sectors, SectorShare{Name: name, Revenue: revenue})
		report.TotalRevenue += revenue
	}

	if len(report.Sectors) == 0 {
		return report
	}

	slices.SortFunc(report.Sectors, func(a, b SectorShare) int {
		if c := compareDesc(a.Revenue, b.Revenue); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	for i := range report.Sectors {
		report.Sectors[i].SharePercent = utils.RoundHalfUp(utils.Percent(report.Sectors[i].Revenue, report.TotalRevenue), 1)
	}

	top := report.Sectors[0]
	report.Top = Some(SectorInsight{
		Sector:   top.Name,
		Revenue:  top.Revenue,
		TopShare: top.SharePercent,
		Message: fmt.Sprintf("%s is your highest performing sector with $%.2f revenue (%.1f%% of total).",
			top.Name, top.Revenue, top.SharePercent),
	})

	return report
}

// SectorRevenue soma a receita dos registros por vertical
func SectorRevenue(records []CustomerRecord) SectorBreakdown {
	breakdown := make(SectorBreakdown)
	for _, record := range records {
		industry := string(record.Industry)
		if industry == "" {
			industry = "Unknown"
		}
		breakdown[industry] += record.Revenue
	}
	return breakdown
}
