package models

// CareLogEntry is the clinical log ("bitácora") written by the professional
// when a service completes. Entries are write-once; there is no update path.
type CareLogEntry struct {
	BaseModel
	PatientID        string `gorm:"size:80;index" json:"patientId"`
	AppointmentID    string `gorm:"size:80;uniqueIndex" json:"appointmentId"`
	ProfessionalID   string `gorm:"size:80;index" json:"professionalId"`
	ProfessionalName string `gorm:"size:200" json:"professionalName"`
	ServiceType      string `gorm:"size:100" json:"serviceType"`
	Notes            string `gorm:"type:text;not null" json:"notes"`

	// Relations
	Patient      User        `gorm:"foreignKey:PatientID" json:"-"`
	Professional User        `gorm:"foreignKey:ProfessionalID" json:"-"`
	Appointment  Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
