package app

import (
	"github.com/gorilla/mux"

	"github.com/fintrackr/fintrackr/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Auth
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/refresh", deps.AuthHandler.Refresh).Methods("POST")

	// User
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.DeleteUser).Methods("DELETE")
	r.HandleFunc("/api/user/available", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/username-availability", deps.UserHandler.IsUsernameAvailable).
		Queries("username", "{username}").Methods("GET")

	// Category
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Get).Methods("GET")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Expense
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Record).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Get).Methods("GET")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Bill
	r.HandleFunc("/api/bill", deps.BillHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/bill", deps.BillHandler.Register).Methods("POST")
	r.HandleFunc("/api/bill/due-soon", deps.BillHandler.DueSoon).Methods("GET")
	r.HandleFunc("/api/bill/overdue", deps.BillHandler.Overdue).Methods("GET")
	r.HandleFunc("/api/bill/{id}", deps.BillHandler.Get).Methods("GET")
	r.HandleFunc("/api/bill/{id}", deps.BillHandler.Update).Methods("PUT")
	r.HandleFunc("/api/bill/{id}", deps.BillHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/bill/{id}/payment", deps.BillHandler.MarkPaid).Methods("POST")

	// Budget
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/evaluation", deps.BudgetHandler.EvaluateAll).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/budget/{id}/evaluation", deps.BudgetHandler.Evaluate).Methods("GET")

	// Report
	r.HandleFunc("/api/report/overview", deps.ReportHandler.GetOverview).Methods("GET")
}
