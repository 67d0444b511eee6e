package app

import (
	"database/sql"

	"github.com/fintrackr/fintrackr/internal/config"
	"github.com/fintrackr/fintrackr/internal/event_bus"
	"github.com/fintrackr/fintrackr/internal/utils"
	"github.com/fintrackr/fintrackr/pkg/auth"
	"github.com/fintrackr/fintrackr/pkg/bill"
	"github.com/fintrackr/fintrackr/pkg/budget"
	"github.com/fintrackr/fintrackr/pkg/category"
	"github.com/fintrackr/fintrackr/pkg/expense"
	"github.com/fintrackr/fintrackr/pkg/report"
	"github.com/fintrackr/fintrackr/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	Authenticator auth.Authenticator
	AuthHandler   *auth.AuthHandler

	CategoryRepo    category.CategoryRepo
	CategoryService category.CategoryService
	CategoryHandler *category.CategoryHandler

	ExpenseRepo    expense.ExpenseRepo
	ExpenseService *expense.ExpenseServiceImpl
	ExpenseHandler *expense.ExpenseHandler

	BillRepo    bill.BillRepo
	BillService *bill.BillServiceImpl
	BillHandler *bill.BillHandler

	BudgetRepo    budget.BudgetRepo
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler
	AlertWatcher  *budget.AlertWatcher

	ReportService     *report.ReportServiceImpl
	CsvReportRenderer *report.CsvReportRendererImpl
	ReportHandler     *report.ReportHandler

	EventBus *event_bus.EventBus
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.Authenticator = auth.NewOAuthAuthenticator(cfg.Identity)
	deps.AuthHandler = auth.NewAuthHandler(deps.Authenticator)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryServiceImpl(deps.CategoryRepo)
	deps.CategoryHandler = category.NewCategoryHandler(deps.CategoryService)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseServiceImpl(deps.ExpenseRepo, deps.EventBus)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService)

	deps.BillRepo = bill.NewBillRepo(db)
	deps.BillService = bill.NewBillServiceImpl(deps.BillRepo, deps.EventBus, deps.Clock)
	deps.BillHandler = bill.NewBillHandler(deps.BillService, deps.Clock)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo, deps.ExpenseService)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)
	deps.AlertWatcher = budget.NewAlertWatcher(deps.BudgetService, deps.EventBus)

	deps.ReportService = report.NewReportServiceImpl(deps.BillService, deps.BudgetService, deps.Clock)
	deps.CsvReportRenderer = report.NewCsvReportRenderer()
	deps.ReportHandler = report.NewReportHandler(deps.ReportService, deps.CsvReportRenderer)

	return deps
}
