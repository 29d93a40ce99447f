package procurement

import "errors"

var ErrNotFound = errors.New("purchase order not found")

// Order statuses observed in the data. Status updates accept any string
// for now; tightening the set would break existing clients.
const (
	StatusPending   = "Pending"
	StatusFulfilled = "Fulfilled"
)

type Order struct {
	ID          int64   `json:"id"`
	VendorID    int64   `json:"vendorId"`
	ItemDetails string  `json:"itemDetails"`
	Quantity    int     `json:"quantity"`
	TotalCost   float64 `json:"totalCost"`
	Status      string  `json:"status"`
}

// Row is the listing shape with the vendor name joined in and the cost
// rounded to two decimals for display.
type Row struct {
	POID        int64   `json:"poId"`
	VendorName  string  `json:"vendorName"`
	ItemDetails string  `json:"itemDetails"`
	Quantity    int     `json:"quantity"`
	TotalCost   float64 `json:"totalCost"`
	Status      string  `json:"status"`
}

type CreateOrderRequest struct {
	VendorID    int64   `json:"vendor" binding:"required"`
	ItemDetails string  `json:"itemDetails" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	TotalCost   float64 `json:"totalCost" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Completion summarises fulfilled vs total orders for one vendor.
type Completion struct {
	Total     int
	Fulfilled int
}

// Percentage is 0 for a vendor with no orders, never NaN.
func (c Completion) Percentage() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Fulfilled) / float64(c.Total) * 100
}
