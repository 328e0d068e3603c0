package constants

const (
	// Ledger ids, also used as persistence keys
	LedgerSavings  = "savings"
	LedgerExpenses = "expenses"
)

const (
	// Internal categories hold bookkeeping transactions and are never user-visible tabs.
	CategoryDistributable = "__distributable__"
	CategoryTransferOut   = "__transfer_out__"
	CategorySalary        = "__salary__"

	// ReservedPrefix marks internal category names
	ReservedPrefix = "__"
)

const (
	// Note tags on bridge transactions
	NoteTransfer     = "__transfer__"
	NoteTransferBack = "__transfer_back__"
)

var DefaultSavingsCategories = []string{
	"Transport", "Travel", "Entertainment", "Investment", "Savings", "Others",
}

var DefaultExpenseCategories = []string{
	"Loans", "Housing", "Transport", "Healthcare", "Shopping", "Entertainment", "Others",
}

// CategoryLabels are display names for internal categories.
var CategoryLabels = map[string]string{
	CategoryDistributable: "Distributable",
	CategoryTransferOut:   "Transfer Out",
	CategorySalary:        "Income",
}

// CategoryLabel returns the display name of a category.
func CategoryLabel(category string) string {
	if label, ok := CategoryLabels[category]; ok {
		return label
	}
	return category
}
