package finance

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("allocation not found")

type Allocation struct {
	ID              int64     `json:"id"`
	DepartmentID    int64     `json:"departmentId"`
	VendorID        int64     `json:"vendorId"`
	AmountAllocated float64   `json:"amountAllocated"`
	AllocationDate  time.Time `json:"allocationDate"`
}

// AllocationRow is the listing shape with department and vendor names
// joined in, newest first.
type AllocationRow struct {
	AllocationID    int64     `json:"allocationId"`
	DepartmentName  string    `json:"departmentName"`
	VendorName      string    `json:"vendorName"`
	AmountAllocated float64   `json:"amountAllocated"`
	AllocationDate  time.Time `json:"allocationDate"`
}

// AllocationWithExpenses groups expenses per allocation, coalescing a
// missing expense sum to 0.
type AllocationWithExpenses struct {
	AllocationID    int64   `json:"allocationId"`
	DepartmentName  string  `json:"departmentName"`
	VendorName      string  `json:"vendorName"`
	AmountAllocated float64 `json:"amountAllocated"`
	TotalExpenses   float64 `json:"totalExpenses"`
}

type Expense struct {
	ID           int64   `json:"id"`
	AllocationID int64   `json:"allocationId"`
	AmountSpent  float64 `json:"amountSpent"`
}

type CreateAllocationRequest struct {
	DepartmentID int64   `json:"departmentID" binding:"required"`
	VendorID     int64   `json:"vendorID" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
}

type RecordExpenseRequest struct {
	AllocationID int64   `json:"AllocationID" binding:"required"`
	AmountSpent  float64 `json:"AmountSpent" binding:"required"`
}

type AdjustBudgetRequest struct {
	DepartmentID int64   `json:"departmentID" binding:"required"`
	Action       string  `json:"action" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
}

// Dashboard keeps the store's definition of outstanding invoices:
// expenses exceeding the allocated budget, floored at 0.
type Dashboard struct {
	TotalBudget         float64 `json:"totalBudget"`
	TotalExpenses       float64 `json:"totalExpenses"`
	OutstandingInvoices float64 `json:"outstandingInvoices"`
}

func NewDashboard(totalBudget, totalExpenses float64) Dashboard {
	outstanding := totalExpenses - totalBudget

	if outstanding < 0 {
		outstanding = 0
	}

	return Dashboard{
		TotalBudget:         totalBudget,
		TotalExpenses:       totalExpenses,
		OutstandingInvoices: outstanding,
	}
}
