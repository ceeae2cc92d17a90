// Package model defines the core domain models used throughout the application.
package model

// RecordType indicates whether money came in or went out.
type RecordType string

const (
	// RecordTypeExpense marks money leaving an account.
	RecordTypeExpense RecordType = "expense"
	// RecordTypeIncome marks money arriving in an account.
	RecordTypeIncome RecordType = "income"
)

// Valid reports whether t is one of the known record types.
func (t RecordType) Valid() bool {
	return t == RecordTypeExpense || t == RecordTypeIncome
}

// Category classifies records of a single type (e.g. food, salary).
type Category struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Icon string     `json:"icon"`
	Type RecordType `json:"type"`
}

// Account is a money source or destination label attached to a record.
// It carries no balance.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultIcon is used when a category is created without one.
const DefaultIcon = "📝"

// UnknownCategory stands in for a record whose category has been deleted.
var UnknownCategory = Category{Name: "Unknown", Icon: DefaultIcon}

// UnknownAccount stands in for a record whose account no longer exists.
var UnknownAccount = Account{Name: "Unknown", Icon: "❔"}

// LookupCategory finds a category by id. Dangling ids are normal: callers
// substitute UnknownCategory when ok is false.
func LookupCategory(categories []Category, id string) (Category, bool) {
	for _, cat := range categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// CategoryOrUnknown resolves id or falls back to the placeholder.
func CategoryOrUnknown(categories []Category, id string) Category {
	if cat, ok := LookupCategory(categories, id); ok {
		return cat
	}
	unknown := UnknownCategory
	unknown.ID = id
	return unknown
}

// LookupAccount finds an account by id.
func LookupAccount(accounts []Account, id string) (Account, bool) {
	for _, acc := range accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return Account{}, false
}

// AccountOrUnknown resolves id or falls back to the placeholder.
func AccountOrUnknown(accounts []Account, id string) Account {
	if acc, ok := LookupAccount(accounts, id); ok {
		return acc
	}
	unknown := UnknownAccount
	unknown.ID = id
	return unknown
}
