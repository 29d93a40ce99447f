package contract

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("contract not found")

// Approval statuses seen in the workflow. Writes are not restricted to
// this set; the allowed values are still being confirmed with clients.
const (
	StatusPending  = "Pending"
	StatusActive   = "Active"
	StatusRejected = "Rejected"
)

type Contract struct {
	ID                int64     `json:"id"`
	VendorID          int64     `json:"vendorId"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Terms             string    `json:"terms"`
	PerformanceRating *float64  `json:"performanceRating"`
}

// Approval is the one status record per contract, overwritten in place
// on every approve/reject call.
type Approval struct {
	ContractID   int64     `json:"contractId"`
	Status       string    `json:"status"`
	ApprovalDate time.Time `json:"approvalDate"`
	Notes        *string   `json:"notes"`
}

// Row is the contract listing shape: vendor name joined in, approval
// left-joined so contracts without a status record still appear.
type Row struct {
	ContractID        int64     `json:"contractId"`
	VendorName        string    `json:"vendorName"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Terms             string    `json:"terms"`
	PerformanceRating *float64  `json:"performanceRating"`
	Status            *string   `json:"status"`
	Notes             *string   `json:"notes"`
}

type CreateContractRequest struct {
	VendorID  int64  `json:"vendorID" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Terms     string `json:"terms" binding:"required"`
}

type ApproveContractRequest struct {
	ContractID int64  `json:"contractID" binding:"required"`
	Status     string `json:"status" binding:"required"`
	Notes      string `json:"notes"`
}

type DepartmentDashboard struct {
	ActiveContracts  int `json:"activeContracts"`
	PendingReview    int `json:"pendingReview"`
	CompletedReviews int `json:"completedReviews"`
}

type TeamDashboard struct {
	TotalActiveContracts     int `json:"totalActiveContracts"`
	ContractsUnderReview     int `json:"contractsUnderReview"`
	ContractsPendingApproval int `json:"contractsPendingApproval"`
}

type AdminDashboard struct {
	TotalUsers           int `json:"totalUsers"`
	TotalActiveContracts int `json:"totalActiveContracts"`
	PendingApprovals     int `json:"pendingApprovals"`
}
