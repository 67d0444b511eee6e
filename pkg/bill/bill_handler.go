package bill

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/rest"
	"github.com/fintrackr/fintrackr/internal/utils"
)

type BillDTO struct {
	Id           string          `json:"id,omitempty"`
	CategoryId   string          `json:"categoryId,omitempty"`
	Name         string          `json:"name"`
	Vendor       string          `json:"vendor,omitempty"`
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Cadence      string          `json:"cadence"`
	DueDay       int             `json:"dueDay,omitempty"`
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
	LastPaidDate string          `json:"lastPaidDate,omitempty"`
	ReminderDays int             `json:"reminderDays"`
	Active       bool            `json:"active"`

	// Derived fields, never stored: recomputed from the schedule engine on
	// every read.
	NextPaymentDate string          `json:"nextPaymentDate,omitempty"`
	Status          string          `json:"status,omitempty"`
	MonthlyCost     decimal.Decimal `json:"monthlyCost,omitempty"`
	YearlyCost      decimal.Decimal `json:"yearlyCost,omitempty"`
}

type BillHandler struct {
	billService BillService
	clock       utils.Clock
}

func NewBillHandler(billService BillService, clock utils.Clock) *BillHandler {
	return &BillHandler{billService, clock}
}

func (handler *BillHandler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new bill")
	w.Header().Set("Content-Type", "application/json")

	var dto BillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bill, err := DTOToBill(dto)
	if err != nil {
		badRequest(w, err)
		return
	}

	created, err := handler.billService.Create(r.Context(), bill)
	if err != nil {
		if isValidationError(err) {
			badRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(handler.billToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BillHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeInactive := r.URL.Query().Has("includeInactive")

	bills, err := handler.billService.GetAll(r.Context(), includeInactive)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.writeBills(w, bills)
}

func (handler *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill, err := handler.billService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(handler.billToDTO(bill)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto BillDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id != "" && dto.Id != id.String() {
		http.Error(w, "Invalid bill id in request body", http.StatusBadRequest)
		return
	}
	bill, err := DTOToBill(dto)
	if err != nil {
		badRequest(w, err)
		return
	}
	bill.Id = id

	ok, err := handler.billService.Update(r.Context(), bill)
	if err != nil && !errors.Is(err, ErrBillNotFound) {
		if isValidationError(err) {
			badRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}
	if err := json.NewEncoder(w).Encode(handler.billToDTO(bill)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.billService.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, ErrBillNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Bill not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *BillHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payDTO struct {
		PaidOn string `json:"paidOn,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payDTO); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	paidOn, err := utils.ParseDate(payDTO.PaidOn)
	if err != nil {
		badRequest(w, err)
		return
	}

	bill, err := handler.billService.MarkPaid(r.Context(), id, paidOn)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(handler.billToDTO(bill)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BillHandler) DueSoon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	daysAhead := 7
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed < 0 {
			http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		daysAhead = parsed
	}

	bills, err := handler.billService.DueSoon(r.Context(), daysAhead)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.writeBills(w, bills)
}

func (handler *BillHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	bills, err := handler.billService.Overdue(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	handler.writeBills(w, bills)
}

func (handler *BillHandler) writeBills(w http.ResponseWriter, bills []Bill) {
	dtos := make([]BillDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, handler.billToDTO(b))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BillHandler) billToDTO(b Bill) BillDTO {
	today := handler.clock.Today()
	nextDue := NextOccurrence(b, today)

	dto := BillDTO{
		Id:           b.Id.String(),
		Name:         b.Name,
		Vendor:       b.Vendor,
		Description:  b.Description,
		Amount:       b.Amount,
		Cadence:      string(b.Cadence),
		DueDay:       b.DueDay,
		StartDate:    utils.FormatDate(b.StartDate),
		EndDate:      utils.FormatDate(b.EndDate),
		LastPaidDate: utils.FormatDate(b.LastPaymentDate),
		ReminderDays: b.ReminderDays,
		Active:       b.Active,

		NextPaymentDate: utils.FormatDate(nextDue),
		Status:          string(ClassifyUrgency(b, nextDue, today)),
		MonthlyCost:     MonthlyCost(b.Amount, b.Cadence),
		YearlyCost:      YearlyCost(b.Amount, b.Cadence),
	}
	if b.CategoryId != uuid.Nil {
		dto.CategoryId = b.CategoryId.String()
	}
	return dto
}

func DTOToBill(dto BillDTO) (Bill, error) {
	bill := Bill{
		Name:         dto.Name,
		Vendor:       dto.Vendor,
		Description:  dto.Description,
		Amount:       dto.Amount,
		Cadence:      Cadence(dto.Cadence),
		DueDay:       dto.DueDay,
		ReminderDays: dto.ReminderDays,
		Active:       dto.Active,
	}
	if dto.Id != "" {
		id, err := uuid.Parse(dto.Id)
		if err != nil {
			return Bill{}, err
		}
		bill.Id = id
	}
	if dto.CategoryId != "" {
		categoryId, err := uuid.Parse(dto.CategoryId)
		if err != nil {
			return Bill{}, err
		}
		bill.CategoryId = categoryId
	}
	var err error
	if bill.StartDate, err = utils.ParseDate(dto.StartDate); err != nil {
		return Bill{}, err
	}
	if bill.EndDate, err = utils.ParseDate(dto.EndDate); err != nil {
		return Bill{}, err
	}
	if bill.LastPaymentDate, err = utils.ParseDate(dto.LastPaidDate); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCadence) || errors.Is(err, ErrInvalidDueDay) || errors.Is(err, ErrNegativeAmount)
}

func badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
