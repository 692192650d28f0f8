package categories

import (
	"github.com/google/uuid"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// Default returns the category set a new workspace starts with: the three
// protected system categories plus a starter spread of spending buckets.
// IDs are generated fresh; the set is meant to be saved once at init.
func Default() []model.Category {
	return []model.Category{
		{ID: uuid.NewString(), Name: model.SystemUncategorized, IsSystem: true, Order: 0},
		{ID: uuid.NewString(), Name: model.SystemExcluded, IsSystem: true, Order: 1},
		{ID: uuid.NewString(), Name: model.SystemIncome, IsSystem: true, Matchable: true, Order: 2,
			Keywords: []string{"PAYROLL", "DIRECT DEPOSIT", "E-TRANSFER RECEIVED"}},
		{ID: uuid.NewString(), Name: "Groceries", Order: 10,
			Keywords: []string{"LOBLAWS", "METRO", "SOBEYS", "NO FRILLS", "FARM BOY"}},
		{ID: uuid.NewString(), Name: "Coffee", Order: 20,
			Keywords: []string{"TIM HORTONS", "STARBUCKS", "SECOND CUP"}},
		{ID: uuid.NewString(), Name: "Dining", Order: 30,
			Keywords: []string{"UBER EATS", "DOORDASH", "MCDONALD", "SUBWAY", "PIZZA"}},
		{ID: uuid.NewString(), Name: "Transport", Order: 40,
			Keywords: []string{"UBER", "PRESTO", "PETRO-CANADA", "SHELL", "ESSO"}},
		{ID: uuid.NewString(), Name: "Shopping", Order: 50,
			Keywords: []string{"AMAZON", "WALMART", "COSTCO", "CANADIAN TIRE"}},
		{ID: uuid.NewString(), Name: "Subscriptions", Order: 60,
			Keywords: []string{"NETFLIX", "SPOTIFY", "APPLE.COM"}},
		{ID: uuid.NewString(), Name: "Utilities", Order: 70,
			Keywords: []string{"HYDRO", "BELL CANADA", "ROGERS", "TELUS"}},
		{ID: uuid.NewString(), Name: "Health", Order: 80,
			Keywords: []string{"SHOPPERS DRUG MART", "PHARMA", "DENTAL"}},
	}
}
