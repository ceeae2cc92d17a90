package ledger

import "github.com/Veraticus/pocket-ledger/internal/model"

// DefaultCategories returns the categories a new ledger starts with.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "food", Name: "Food", Icon: "🍜", Type: model.RecordTypeExpense},
		{ID: "transport", Name: "Transport", Icon: "🚇", Type: model.RecordTypeExpense},
		{ID: "shopping", Name: "Shopping", Icon: "🛒", Type: model.RecordTypeExpense},
		{ID: "entertainment", Name: "Entertainment", Icon: "🎮", Type: model.RecordTypeExpense},
		{ID: "daily", Name: "Daily Necessities", Icon: "🧴", Type: model.RecordTypeExpense},
		{ID: "clothes", Name: "Clothing", Icon: "👔", Type: model.RecordTypeExpense},
		{ID: "beauty", Name: "Beauty", Icon: "💅", Type: model.RecordTypeExpense},
		{ID: "social", Name: "Social", Icon: "🎁", Type: model.RecordTypeExpense},
		{ID: "housing", Name: "Housing", Icon: "🏠", Type: model.RecordTypeExpense},
		{ID: "medical", Name: "Medical", Icon: "💊", Type: model.RecordTypeExpense},
		{ID: "education", Name: "Education", Icon: "📚", Type: model.RecordTypeExpense},
		{ID: "communication", Name: "Phone & Internet", Icon: "📱", Type: model.RecordTypeExpense},
		{ID: "travel", Name: "Travel", Icon: "✈️", Type: model.RecordTypeExpense},
		{ID: "pet", Name: "Pets", Icon: "🐱", Type: model.RecordTypeExpense},
		{ID: "other_expense", Name: "Other", Icon: "📝", Type: model.RecordTypeExpense},

		{ID: "salary", Name: "Salary", Icon: "💰", Type: model.RecordTypeIncome},
		{ID: "bonus", Name: "Bonus", Icon: "🎉", Type: model.RecordTypeIncome},
		{ID: "investment", Name: "Investment", Icon: "📈", Type: model.RecordTypeIncome},
		{ID: "parttime", Name: "Part-time", Icon: "💼", Type: model.RecordTypeIncome},
		{ID: "gift", Name: "Gift", Icon: "🧧", Type: model.RecordTypeIncome},
		{ID: "refund", Name: "Reimbursement", Icon: "📄", Type: model.RecordTypeIncome},
		{ID: "other_income", Name: "Other", Icon: "💵", Type: model.RecordTypeIncome},
	}
}

// DefaultAccounts returns the accounts a new ledger starts with.
func DefaultAccounts() []model.Account {
	return []model.Account{
		{ID: "cash", Name: "Cash", Icon: "💵"},
		{ID: "alipay", Name: "Alipay", Icon: "🔵"},
		{ID: "wechat", Name: "WeChat Pay", Icon: "🟢"},
		{ID: "bank", Name: "Bank Card", Icon: "💳"},
		{ID: "credit", Name: "Credit Card", Icon: "💎"},
	}
}
