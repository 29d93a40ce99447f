package notification

import "time"

type Notification struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	RelatedEntity string    `json:"relatedEntity"`
	Message       string    `json:"message"`
	Date          time.Time `json:"date"`
}

// Row is the listing shape: recipient identity is not exposed, only the
// notification itself, newest first.
type Row struct {
	NotificationID int64     `json:"notificationId"`
	Message        string    `json:"message"`
	Date           time.Time `json:"date"`
}

type SendRequest struct {
	UserID        int64  `json:"userID" binding:"required"`
	RelatedEntity string `json:"relatedEntity" binding:"required"`
	Message       string `json:"message" binding:"required"`
}
