package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/rest"
	"github.com/fintrackr/fintrackr/internal/utils"
)

type BudgetDTO struct {
	Id             string          `json:"id,omitempty"`
	CategoryId     string          `json:"categoryId"`
	Name           string          `json:"name"`
	Limit          decimal.Decimal `json:"limit"`
	AlertThreshold int             `json:"alertThreshold"`
	StartDate      string          `json:"startDate,omitempty"`
	EndDate        string          `json:"endDate,omitempty"`
	Active         bool            `json:"active"`
}

// BudgetEvaluationDTO extends the budget with the values derived on every
// evaluation. Nothing here is ever stored.
type BudgetEvaluationDTO struct {
	BudgetDTO
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percentUsed"`
	Status      string          `json:"status"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	budget, err := dtoToBudget(dto)
	if err != nil {
		budgetBadRequest(w, err)
		return
	}

	created, err := handler.budgetService.Create(r.Context(), budget)
	if err != nil {
		if isBudgetValidationError(err) {
			budgetBadRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(budgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeInactive := r.URL.Query().Has("includeInactive")

	budgets, err := handler.budgetService.GetAll(r.Context(), includeInactive)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, budgetToDTO(b))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, err := handler.budgetService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(budgetToDTO(budget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id != "" && dto.Id != id.String() {
		http.Error(w, "Invalid budget id in request body", http.StatusBadRequest)
		return
	}
	budget, err := dtoToBudget(dto)
	if err != nil {
		budgetBadRequest(w, err)
		return
	}
	budget.Id = id

	ok, err := handler.budgetService.Update(r.Context(), budget)
	if err != nil && !errors.Is(err, ErrBudgetNotFound) {
		if isBudgetValidationError(err) {
			budgetBadRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}
	if err := json.NewEncoder(w).Encode(budgetToDTO(budget)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.budgetService.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, ErrBudgetNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *BudgetHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	evaluation, err := handler.budgetService.Evaluate(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBudgetNotFound) {
			http.Error(w, "Budget not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(evaluationToDTO(evaluation)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) EvaluateAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	evaluations, err := handler.budgetService.EvaluateAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BudgetEvaluationDTO, 0, len(evaluations))
	for _, evaluation := range evaluations {
		dtos = append(dtos, evaluationToDTO(evaluation))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func budgetToDTO(b Budget) BudgetDTO {
	dto := BudgetDTO{
		Id:             b.Id.String(),
		Name:           b.Name,
		Limit:          b.Limit,
		AlertThreshold: b.AlertThreshold,
		StartDate:      utils.FormatDate(b.StartDate),
		EndDate:        utils.FormatDate(b.EndDate),
		Active:         b.Active,
	}
	if b.CategoryId != uuid.Nil {
		dto.CategoryId = b.CategoryId.String()
	}
	return dto
}

func evaluationToDTO(e BudgetEvaluation) BudgetEvaluationDTO {
	return BudgetEvaluationDTO{
		BudgetDTO:   budgetToDTO(e.Budget),
		Spent:       e.Spent,
		Remaining:   e.Evaluation.Remaining,
		PercentUsed: e.Evaluation.PercentUsed,
		Status:      string(e.Evaluation.Status),
	}
}

func dtoToBudget(dto BudgetDTO) (Budget, error) {
	budget := Budget{
		Name:           dto.Name,
		Limit:          dto.Limit,
		AlertThreshold: dto.AlertThreshold,
		Active:         dto.Active,
	}
	if dto.Id != "" {
		id, err := uuid.Parse(dto.Id)
		if err != nil {
			return Budget{}, err
		}
		budget.Id = id
	}
	if dto.CategoryId != "" {
		categoryId, err := uuid.Parse(dto.CategoryId)
		if err != nil {
			return Budget{}, err
		}
		budget.CategoryId = categoryId
	}
	var err error
	if budget.StartDate, err = utils.ParseDate(dto.StartDate); err != nil {
		return Budget{}, err
	}
	if budget.EndDate, err = utils.ParseDate(dto.EndDate); err != nil {
		return Budget{}, err
	}
	return budget, nil
}

func isBudgetValidationError(err error) bool {
	return errors.Is(err, ErrNegativeLimit) || errors.Is(err, ErrInvalidThreshold)
}

func budgetBadRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
