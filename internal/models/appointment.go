package models

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the lifecycle status of a booking.
// Values are kept in Spanish to match the collection data.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pendiente"
	StatusAccepted   AppointmentStatus = "aceptada"
	StatusRejected   AppointmentStatus = "rechazada"
	StatusCancelled  AppointmentStatus = "cancelada"
	StatusEnRoute    AppointmentStatus = "en_camino"
	StatusInProgress AppointmentStatus = "en_proceso"
	StatusCompleted  AppointmentStatus = "completada"
	StatusRated      AppointmentStatus = "calificada"
)

// statusTransitions is the legal edge table of the lifecycle.
// Cancellation is patient-driven and allowed until the service is underway;
// everything else is professional-driven, except the final rating flip.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:   {StatusEnRoute, StatusCancelled},
	StatusEnRoute:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {StatusRated},
}

// transitionActor maps a target status to the role that may drive it.
var transitionActor = map[AppointmentStatus]Role{
	StatusAccepted:   RoleProfessional,
	StatusRejected:   RoleProfessional,
	StatusEnRoute:    RoleProfessional,
	StatusInProgress: RoleProfessional,
	StatusCompleted:  RoleProfessional,
	StatusCancelled:  RolePatient,
	StatusRated:      RolePatient,
}

// CanTransition reports whether the edge from -> to exists in the lifecycle.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionActor returns the role allowed to drive a transition into target.
func TransitionActor(target AppointmentStatus) (Role, bool) {
	role, ok := transitionActor[target]
	return role, ok
}

// IsTerminal reports whether no further transition leaves the status.
func (s AppointmentStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Valid reports whether s is a known lifecycle status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled,
		StatusEnRoute, StatusInProgress, StatusCompleted, StatusRated:
		return true
	}
	return false
}

// Appointment represents a home-visit booking from a patient to a professional.
// Names and price are snapshotted at booking time so listings do not chase
// later profile edits.
type Appointment struct {
	BaseModel
	PatientID        string            `gorm:"size:80;index" json:"patientId"`
	ProfessionalID   string            `gorm:"size:80;index" json:"professionalId"`
	PatientName      string            `gorm:"size:200" json:"patientName"`
	ProfessionalName string            `gorm:"size:200" json:"professionalName"`
	ServiceType      string            `gorm:"size:100" json:"serviceType"`
	Address          string            `gorm:"size:255" json:"address"`
	Latitude         *float64          `json:"latitude,omitempty"`
	Longitude        *float64          `json:"longitude,omitempty"`
	ScheduledAt      time.Time         `gorm:"index" json:"scheduledAt"`
	PriceSnapshot    float64           `json:"price"`
	Notes            string            `gorm:"type:text" json:"notes"`
	Status           AppointmentStatus `gorm:"size:20;default:'pendiente';index" json:"status"`

	// Relations
	Patient      User `gorm:"foreignKey:PatientID" json:"-"`
	Professional User `gorm:"foreignKey:ProfessionalID" json:"-"`
}

// ScheduleDisplay derives the human-readable schedule string from the
// canonical timestamp. The timestamp is the source of truth, never the string.
func (a *Appointment) ScheduleDisplay() string {
	return fmt.Sprintf("%d de %s - %02d:%02d",
		a.ScheduledAt.Day(),
		spanishMonths[a.ScheduledAt.Month()],
		a.ScheduledAt.Hour(),
		a.ScheduledAt.Minute(),
	)
}

var spanishMonths = map[time.Month]string{
	time.January:   "Enero",
	time.February:  "Febrero",
	time.March:     "Marzo",
	time.April:     "Abril",
	time.May:       "Mayo",
	time.June:      "Junio",
	time.July:      "Julio",
	time.August:    "Agosto",
	time.September: "Septiembre",
	time.October:   "Octubre",
	time.November:  "Noviembre",
	time.December:  "Diciembre",
}
