package model

// DashboardStats is the admin dashboard aggregate for a caller-supplied
// "now". Every count defaults to zero when the store has no rows.
type DashboardStats struct {
	TodayRevenue       float64 `json:"today_revenue"`
	PatientsToday      int64   `json:"patients_today"`
	NewPatientsMonth   int64   `json:"new_patients_this_month"`
	AppointmentsBooked int64   `json:"appointments_booked"`
	TotalStaff         int64   `json:"total_staff"`
	TotalDoctors       int64   `json:"total_doctors"`
	TotalReceptionists int64   `json:"total_receptionists"`
	ActiveStaff        int64   `json:"active_staff"`
}

// ReceptionDashboard is the receptionist home view: today's schedule with
// persisted statuses, and the live queue with display statuses.
type ReceptionDashboard struct {
	AppointmentsToday int64              `json:"appointments_today"`
	TotalSlotsToday   int64              `json:"total_slots_today"`
	PatientsCheckedIn int64              `json:"patients_checked_in"`
	PatientsWaiting   int64              `json:"patients_waiting"`
	EstimatedRevenue  float64            `json:"estimated_revenue"`
	TodayAppointments []*AppointmentView `json:"today_appointments"`
	LiveQueue         []*AppointmentView `json:"live_queue"`
}

// DoctorDashboard splits the doctor's today-set into upcoming visits and
// the waiting queue. A checked-in patient appears on both lists.
type DoctorDashboard struct {
	DoctorName        string             `json:"doctor_name"`
	TodayAppointments []*AppointmentView `json:"today_appointments"`
	WaitingQueue      []*AppointmentView `json:"waiting_queue"`
}
