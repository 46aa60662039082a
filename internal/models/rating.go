package models

// Rating is the append-only record of a submitted review. The professional's
// {rating, review_count} aggregate is maintained in the same transaction, so
// the aggregate is a derived projection of these rows.
type Rating struct {
	BaseModel
	AppointmentID  string `gorm:"size:80;uniqueIndex" json:"appointmentId"`
	PatientID      string `gorm:"size:80;index" json:"patientId"`
	ProfessionalID string `gorm:"size:80;index" json:"professionalId"`
	Score          int    `gorm:"not null" json:"score"`
	Comment        string `gorm:"type:text" json:"comment"`

	// Relations
	Appointment  Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Patient      User        `gorm:"foreignKey:PatientID" json:"-"`
	Professional User        `gorm:"foreignKey:ProfessionalID" json:"-"`
}
