package evaluation

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("evaluation not found")

type Evaluation struct {
	ID                 int64     `json:"id"`
	VendorID           int64     `json:"vendorId"`
	QualityRating      int       `json:"qualityRating"`
	PricingRating      int       `json:"pricingRating"`
	TimelinessRating   int       `json:"timelinessRating"`
	PerformanceSummary string    `json:"performanceSummary"`
	EvaluationDate     time.Time `json:"evaluationDate"`
}

// Row is the joined listing shape with the vendor name.
type Row struct {
	EvaluationID       int64     `json:"evaluationId"`
	VendorName         string    `json:"vendorName"`
	QualityRating      int       `json:"qualityRating"`
	PricingRating      int       `json:"pricingRating"`
	TimelinessRating   int       `json:"timelinessRating"`
	PerformanceSummary string    `json:"performanceSummary"`
	EvaluationDate     time.Time `json:"evaluationDate"`
}

// Snapshot is the latest evaluation's three ratings for one vendor.
type Snapshot struct {
	QualityRating    int `json:"qualityRating"`
	PricingRating    int `json:"pricingRating"`
	TimelinessRating int `json:"timelinessRating"`
}

type CreateEvaluationRequest struct {
	VendorID           int64  `json:"vendorId" binding:"required"`
	QualityRating      int    `json:"qualityRating" binding:"required,min=1,max=5"`
	PricingRating      int    `json:"pricingRating" binding:"required,min=1,max=5"`
	TimelinessRating   int    `json:"timelinessRating" binding:"required,min=1,max=5"`
	PerformanceSummary string `json:"performanceSummary" binding:"required"`
}
