package notifyservice

// Типы событий уведомлений
const (
	EventReservationCreated   = "reservation_created"
	EventReservationApproved  = "reservation_approved"
	EventReservationRejected  = "reservation_rejected"
	EventReservationCancelled = "reservation_cancelled"
)

// Event событие для отправки в NotifyService
type Event struct {
	Type          string `json:"type"`
	UserID        int64  `json:"user_id"`
	ReservationID int64  `json:"reservation_id"`
	FacilityName  string `json:"facility_name"`
	Date          string `json:"date"`       // YYYY-MM-DD
	StartTime     string `json:"start_time"` // HH:MM
	EndTime       string `json:"end_time"`   // HH:MM
}
