package report

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr/internal/utils"
)

type BillOutlookDTO struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Cadence     string          `json:"cadence"`
	NextDue     string          `json:"nextDue"`
	Status      string          `json:"status"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	YearlyCost  decimal.Decimal `json:"yearlyCost"`
}

type BudgetOutlookDTO struct {
	Id          string          `json:"id"`
	Name        string          `json:"name"`
	Limit       decimal.Decimal `json:"limit"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percentUsed"`
	Status      string          `json:"status"`
}

type OverviewDTO struct {
	Date             string             `json:"date"`
	Bills            []BillOutlookDTO   `json:"bills"`
	DueSoonCount     int                `json:"dueSoonCount"`
	OverdueCount     int                `json:"overdueCount"`
	TotalMonthlyCost decimal.Decimal    `json:"totalMonthlyCost"`
	TotalYearlyCost  decimal.Decimal    `json:"totalYearlyCost"`
	Budgets          []BudgetOutlookDTO `json:"budgets"`
}

type ReportHandler struct {
	reportService     ReportService
	csvReportRenderer ReportRenderer
}

func NewReportHandler(reportService ReportService, csvReportRenderer ReportRenderer) *ReportHandler {
	return &ReportHandler{reportService, csvReportRenderer}
}

func (handler *ReportHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := handler.reportService.Overview(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "csv" || r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvReportRenderer.RenderOverview(overview)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(convertToJsonResponse(overview)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func convertToJsonResponse(overview Overview) OverviewDTO {
	bills := make([]BillOutlookDTO, 0, len(overview.Bills))
	for _, outlook := range overview.Bills {
		bills = append(bills, BillOutlookDTO{
			Id:          outlook.Bill.Id.String(),
			Name:        outlook.Bill.Name,
			Amount:      outlook.Bill.Amount,
			Cadence:     string(outlook.Bill.Cadence),
			NextDue:     utils.FormatDate(outlook.NextDue),
			Status:      string(outlook.Urgency),
			MonthlyCost: outlook.MonthlyCost,
			YearlyCost:  outlook.YearlyCost,
		})
	}

	budgets := make([]BudgetOutlookDTO, 0, len(overview.Budgets))
	for _, evaluation := range overview.Budgets {
		dto := BudgetOutlookDTO{
			Name:        evaluation.Budget.Name,
			Limit:       evaluation.Budget.Limit,
			Spent:       evaluation.Spent,
			Remaining:   evaluation.Evaluation.Remaining,
			PercentUsed: evaluation.Evaluation.PercentUsed,
			Status:      string(evaluation.Evaluation.Status),
		}
		if evaluation.Budget.Id != uuid.Nil {
			dto.Id = evaluation.Budget.Id.String()
		}
		budgets = append(budgets, dto)
	}

	return OverviewDTO{
		Date:             utils.FormatDate(overview.Date),
		Bills:            bills,
		DueSoonCount:     overview.DueSoonCount,
		OverdueCount:     overview.OverdueCount,
		TotalMonthlyCost: overview.TotalMonthlyCost,
		TotalYearlyCost:  overview.TotalYearlyCost,
		Budgets:          budgets,
	}
}
