package assess

import (
	"fmt"
	"math"
)

// Expense category names used by the default policy.
const (
	CategoryCOGS      = "COGS"
	CategoryPayroll   = "Payroll"
	CategoryRent      = "Rent"
	CategoryMarketing = "Marketing"
)

// ExpenseCategory is one row of an expense allocation policy.
type ExpenseCategory struct {
	Name        string
	Weight      float64
	ITCEligible bool
}

// ExpensePolicy allocates total expenses across fixed categories.
// Weights are policy constants, not learned from input.
type ExpensePolicy []ExpenseCategory

// DefaultExpensePolicy is the allocation used when no other policy is configured.
var DefaultExpensePolicy = ExpensePolicy{
	{Name: CategoryCOGS, Weight: 0.45, ITCEligible: true},
	{Name: CategoryPayroll, Weight: 0.35, ITCEligible: false},
	{Name: CategoryRent, Weight: 0.15, ITCEligible: true},
	{Name: CategoryMarketing, Weight: 0.05, ITCEligible: true},
}

// Validate checks that the weights are non-negative and sum to 1.
func (p ExpensePolicy) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("expense policy has no categories")
	}

	seen := make(map[string]bool, len(p))
	total := 0.0
	for _, c := range p {
		if c.Name == "" {
			return fmt.Errorf("expense policy has an unnamed category")
		}
		if seen[c.Name] {
			return fmt.Errorf("expense policy lists %q twice", c.Name)
		}
		seen[c.Name] = true

		if c.Weight < 0 {
			return fmt.Errorf("expense category %q has negative weight %v", c.Name, c.Weight)
		}
		total += c.Weight
	}

	if math.Abs(total-1) > 1e-9 {
		return fmt.Errorf("expense policy weights sum to %v, want 1", total)
	}
	return nil
}

// Allocate splits expenses across the policy categories.
func (p ExpensePolicy) Allocate(expenses float64) map[string]float64 {
	breakdown := make(map[string]float64, len(p))
	for _, c := range p {
		breakdown[c.Name] = expenses * c.Weight
	}
	return breakdown
}

// ITCEligibleBase is the share of expenses on which input tax credit can be claimed.
func (p ExpensePolicy) ITCEligibleBase(expenses float64) float64 {
	base := 0.0
	for _, c := range p {
		if c.ITCEligible {
			base += expenses * c.Weight
		}
	}
	return base
}

// Weight returns the weight of the named category, or 0 if it is absent.
func (p ExpensePolicy) Weight(name string) float64 {
	for _, c := range p {
		if c.Name == name {
			return c.Weight
		}
	}
	return 0
}
