package department

import "errors"

var ErrNotFound = errors.New("department not found")

type Department struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

type BudgetAction string

const (
	ActionIncrease BudgetAction = "increase"
	ActionDecrease BudgetAction = "decrease"
)
