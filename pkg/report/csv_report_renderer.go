package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/utils"
)

type ReportRenderer interface {
	RenderOverview(overview Overview) (string, error)
}

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderOverview writes the bill outlook section, then a blank row, then the
// budget section. Derived money values keep their decimal string form.
func (t *CsvReportRendererImpl) RenderOverview(overview Overview) (string, error) {
	data := make([][]string, 0, len(overview.Bills)+len(overview.Budgets)+6)

	data = append(data, []string{"Bill", "Amount", "Cadence", "Next due", "Status", "Monthly cost", "Yearly cost"})
	for _, outlook := range overview.Bills {
		data = append(data, []string{
			outlook.Bill.Name,
			outlook.Bill.Amount.String(),
			string(outlook.Bill.Cadence),
			utils.FormatDate(outlook.NextDue),
			string(outlook.Urgency),
			outlook.MonthlyCost.String(),
			outlook.YearlyCost.String(),
		})
	}
	data = append(data, []string{"TOTAL", "", "", "", "", overview.TotalMonthlyCost.String(), overview.TotalYearlyCost.String()})

	data = append(data, []string{})
	data = append(data, []string{"Budget", "Limit", "Spent", "Remaining", "Used %", "Status"})
	for _, evaluation := range overview.Budgets {
		data = append(data, []string{
			evaluation.Budget.Name,
			evaluation.Budget.Limit.String(),
			evaluation.Spent.String(),
			evaluation.Evaluation.Remaining.String(),
			fmt.Sprintf("%.2f", evaluation.Evaluation.PercentUsed),
			string(evaluation.Evaluation.Status),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if len(row) == 0 {
			// blank separator row between the bill and budget sections
			if _, err := b.WriteString("\n"); err != nil {
				return "", err
			}
			continue
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
		writer.Flush()
	}

	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
