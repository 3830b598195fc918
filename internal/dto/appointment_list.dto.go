package dto

type AppointmentListDTO struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
	CustomerID      string  `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	ServiceName     string  `json:"service_name"`
	Price           float64 `json:"price"`
}
