package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr/internal/rest"
	"github.com/fintrackr/fintrackr/internal/utils"
)

type ExpenseDTO struct {
	Id          string          `json:"id,omitempty"`
	CategoryId  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	Vendor      string          `json:"vendor,omitempty"`
}

type ExpenseHandler struct {
	expenseService ExpenseService
}

func NewExpenseHandler(expenseService ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService}
}

func (handler *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := dtoToExpense(dto)
	if err != nil {
		expenseBadRequest(w, err)
		return
	}

	created, err := handler.expenseService.Create(r.Context(), expense)
	if err != nil {
		if isExpenseValidationError(err) {
			expenseBadRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, err := utils.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		expenseBadRequest(w, err)
		return
	}
	to, err := utils.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		expenseBadRequest(w, err)
		return
	}

	expenses, err := handler.expenseService.GetAll(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, expenseToDTO(expense))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expense, err := handler.expenseService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(expenseToDTO(expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id != "" && dto.Id != id.String() {
		http.Error(w, "Invalid expense id in request body", http.StatusBadRequest)
		return
	}
	expense, err := dtoToExpense(dto)
	if err != nil {
		expenseBadRequest(w, err)
		return
	}
	expense.Id = id

	ok, err := handler.expenseService.Update(r.Context(), expense)
	if err != nil && !errors.Is(err, ErrExpenseNotFound) {
		if isExpenseValidationError(err) {
			expenseBadRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}
	if err := json.NewEncoder(w).Encode(expenseToDTO(expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.expenseService.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, ErrExpenseNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseToDTO(e Expense) ExpenseDTO {
	dto := ExpenseDTO{
		Id:          e.Id.String(),
		Amount:      e.Amount,
		Date:        utils.FormatDate(e.Date),
		Description: e.Description,
		Vendor:      e.Vendor,
	}
	if e.CategoryId != uuid.Nil {
		dto.CategoryId = e.CategoryId.String()
	}
	return dto
}

func dtoToExpense(dto ExpenseDTO) (Expense, error) {
	expense := Expense{
		Amount:      dto.Amount,
		Description: dto.Description,
		Vendor:      dto.Vendor,
	}
	if dto.Id != "" {
		id, err := uuid.Parse(dto.Id)
		if err != nil {
			return Expense{}, err
		}
		expense.Id = id
	}
	if dto.CategoryId != "" {
		categoryId, err := uuid.Parse(dto.CategoryId)
		if err != nil {
			return Expense{}, err
		}
		expense.CategoryId = categoryId
	}
	var err error
	if expense.Date, err = utils.ParseDate(dto.Date); err != nil {
		return Expense{}, err
	}
	return expense, nil
}

func isExpenseValidationError(err error) bool {
	return errors.Is(err, ErrNegativeAmount) || errors.Is(err, ErrMissingCategory) || errors.Is(err, ErrMissingDate)
}

func expenseBadRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
