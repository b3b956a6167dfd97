package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, budgetHandler *BudgetHandler, sectionHandler *SectionHandler, itemHandler *BudgetItemHandler, planHandler *PlanHandler, transactionHandler *TransactionHandler, salaryHandler *SalaryHandler, subscriptionHandler *SubscriptionHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/:year/summary", budgetHandler.GetYearlySummary)
	budgets.GET("/:year/:month", budgetHandler.GetBudget)
	budgets.GET("/:year/:month/ensure", budgetHandler.GetOrCreateBudget)

	// Section routes
	sections := api.Group("/sections")
	sections.POST("", sectionHandler.CreateSection)
	sections.PUT("/:id", sectionHandler.UpdateSection)
	sections.DELETE("/:id", sectionHandler.DeleteSection)

	// Budget item routes
	items := api.Group("/items")
	items.POST("", itemHandler.CreateItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.GET("/:id/plan", planHandler.GetPlanByBudgetItem)

	// Plan routes
	plans := api.Group("/plans")
	plans.POST("", planHandler.CreatePlan)
	plans.GET("", planHandler.GetPlansForMonth)
	plans.GET("/:id", planHandler.GetPlan)
	plans.PUT("/:id/items", planHandler.ReplacePlanItems)
	plans.DELETE("/:id", planHandler.DeletePlan)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/totals", transactionHandler.GetTotals)
	transactions.POST("/import", transactionHandler.ImportTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Salary routes
	salaries := api.Group("/salaries")
	salaries.POST("", salaryHandler.CreateSalary)
	salaries.GET("", salaryHandler.GetSalaries)
	salaries.GET("/:id", salaryHandler.GetSalary)
	salaries.PUT("/:id", salaryHandler.UpdateSalary)
	salaries.DELETE("/:id", salaryHandler.DeleteSalary)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", subscriptionHandler.CreateSubscription)
	subscriptions.GET("", subscriptionHandler.GetSubscriptions)
	subscriptions.GET("/:id", subscriptionHandler.GetSubscription)
	subscriptions.PUT("/:id", subscriptionHandler.UpdateSubscription)
	subscriptions.DELETE("/:id", subscriptionHandler.DeleteSubscription)
}
