package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"wealthfolio/internal/core"
)

// Balances holds the derived signed balance of each payment source plus the
// grand total. Transfers subtract from their source and add to their
// destination, so they net to zero in NetWorth.
type Balances struct {
	Bank       decimal.Decimal `json:"bank"`
	Cash       decimal.Decimal `json:"cash"`
	Investment decimal.Decimal `json:"investment"`
	NetWorth   decimal.Decimal `json:"netWorth"`
}

// Totals summarizes all transactions regardless of payment source.
//
// NetBalance subtracts every expense, investment included; NetExpense is the
// consumption figure shown to the user, which excludes the Investment
// category (asset allocation, not spending).
type Totals struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	NetBalance decimal.Decimal `json:"netBalance"`
	NetExpense decimal.Decimal `json:"netExpense"`
	Invested   decimal.Decimal `json:"invested"`
}

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthSummary holds one month's income/spend/invested figures.
type MonthSummary struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Invested decimal.Decimal `json:"invested"`
}

// BalanceFor computes the running balance of a single payment source across
// all transactions: income adds, expense subtracts, a transfer subtracts
// from its source and adds to its destination.
func BalanceFor(txs []core.Transaction, source core.PaymentSource) decimal.Decimal {
	bal := decimal.Zero
	for _, t := range txs {
		switch {
		case t.PaymentSource == source && t.Kind == core.Income:
			bal = bal.Add(t.Amount.Decimal)
		case t.PaymentSource == source && (t.Kind == core.Expense || t.Kind == core.Transfer):
			bal = bal.Sub(t.Amount.Decimal)
		}
		// A transfer whose destination equals its source runs both legs and
		// nets to zero.
		if t.Kind == core.Transfer && t.Destination() == source {
			bal = bal.Add(t.Amount.Decimal)
		}
	}
	return bal
}

// ComputeBalances derives every source balance and the total net worth.
func ComputeBalances(txs []core.Transaction) Balances {
	b := Balances{
		Bank:       BalanceFor(txs, core.Bank),
		Cash:       BalanceFor(txs, core.Cash),
		Investment: BalanceFor(txs, core.Investment),
	}
	b.NetWorth = b.Bank.Add(b.Cash).Add(b.Investment)
	return b
}

// ComputeTotals derives the all-time income/expense summary.
func ComputeTotals(txs []core.Transaction) Totals {
	t := Totals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		NetExpense: decimal.Zero,
		Invested:   decimal.Zero,
	}
	for _, tx := range txs {
		switch tx.Kind {
		case core.Income:
			t.Income = t.Income.Add(tx.Amount.Decimal)
		case core.Expense:
			t.Expense = t.Expense.Add(tx.Amount.Decimal)
			if tx.Category == core.InvestmentCategory {
				t.Invested = t.Invested.Add(tx.Amount.Decimal)
			} else {
				t.NetExpense = t.NetExpense.Add(tx.Amount.Decimal)
			}
		}
	}
	t.NetBalance = t.Income.Sub(t.Expense)
	return t
}

// ExpenseBreakdown groups non-investment expenses by category, highest
// first. Ties break by category name for stable output.
func ExpenseBreakdown(txs []core.Transaction) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Kind != core.Expense || t.Category == core.InvestmentCategory {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount.Decimal)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for cat, amount := range sums {
		out = append(out, CategoryAmount{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ComputeMonthSummary derives one month's income, consumption and invested
// figures. Month filtering is by the transaction's calendar month.
func ComputeMonthSummary(txs []core.Transaction, year, month int) MonthSummary {
	s := MonthSummary{
		Year:     year,
		Month:    month,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Invested: decimal.Zero,
	}
	for _, t := range txs {
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		switch {
		case t.Kind == core.Income:
			s.Income = s.Income.Add(t.Amount.Decimal)
		case t.Kind == core.Expense && t.Category == core.InvestmentCategory:
			s.Invested = s.Invested.Add(t.Amount.Decimal)
		case t.Kind == core.Expense:
			s.Expenses = s.Expenses.Add(t.Amount.Decimal)
		}
	}
	return s
}
