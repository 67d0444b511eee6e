package budget

import (
	log "github.com/sirupsen/logrus"

	"github.com/fintrackr/fintrackr/internal/event_bus"
)

// AlertWatcher re-evaluates the budgets watching a category whenever an
// expense lands in it and logs threshold crossings. Evaluation failures are
// logged and swallowed so the expense itself is never rejected.
type AlertWatcher struct {
	budgetService BudgetService
	unsubscribe   func()
}

func NewAlertWatcher(budgetService BudgetService, bus *event_bus.EventBus) *AlertWatcher {
	watcher := &AlertWatcher{budgetService: budgetService}
	watcher.unsubscribe = event_bus.SubscribeTyped[event_bus.ExpenseRecorded](bus, event_bus.ExpenseRecordedEvent,
		watcher.onExpenseRecorded)
	return watcher
}

func (w *AlertWatcher) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
}

func (w *AlertWatcher) onExpenseRecorded(e event_bus.EventT[event_bus.ExpenseRecorded]) error {
	evaluations, err := w.budgetService.EvaluateForCategory(e.Context(), e.Data.CategoryId)
	if err != nil {
		log.Errorf("could not evaluate budgets for category %s: %v", e.Data.CategoryId, err)
		return nil
	}
	for _, evaluation := range evaluations {
		switch evaluation.Evaluation.Status {
		case StatusExceeded:
			log.Warnf("budget %q exceeded: %.1f%% used, %s over the limit",
				evaluation.Budget.Name, evaluation.Evaluation.PercentUsed, evaluation.Evaluation.Remaining.Neg())
		case StatusDanger, StatusWarning:
			log.Warnf("budget %q at %.1f%% of its limit (%s remaining)",
				evaluation.Budget.Name, evaluation.Evaluation.PercentUsed, evaluation.Evaluation.Remaining)
		}
	}
	return nil
}
