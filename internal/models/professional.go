package models

// VerificationStatus gates whether a professional profile is discoverable by patients.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pendiente"
	VerificationVerified VerificationStatus = "verificado"
)

// Specialty is ordered reference data seeded outside the app.
type Specialty struct {
	ID        string `gorm:"primaryKey;type:varchar(80)" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}

// ProfessionalProfile extends a User with the professional-only fields.
// Rating and ReviewCount form the aggregate maintained by the rating
// transaction; ReviewCount only ever increases.
type ProfessionalProfile struct {
	BaseModel
	UserID          string             `gorm:"size:80;uniqueIndex;not null" json:"userId"`
	SpecialtyID     string             `gorm:"size:80;index" json:"specialtyId"`
	SpecialtyName   string             `gorm:"size:100" json:"specialtyName"`
	LicenseNumber   string             `gorm:"size:100" json:"licenseNumber"`
	YearsExperience int                `json:"yearsExperience"`
	VisitPrice      float64            `json:"visitPrice"`
	ServicesOffered []string           `gorm:"serializer:json" json:"servicesOffered"`
	Verification    VerificationStatus `gorm:"size:20;default:'pendiente'" json:"verification"`
	Available       bool               `gorm:"default:false" json:"available"`
	Rating          float64            `gorm:"default:0" json:"rating"`
	ReviewCount     int                `gorm:"default:0" json:"reviewCount"`

	// Relations
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"-"`
}

// Discoverable reports whether patients may see this profile in listings.
func (p *ProfessionalProfile) Discoverable() bool {
	return p.Verification == VerificationVerified && p.Available
}

// OffersService reports whether the given service tag is in the offered list.
func (p *ProfessionalProfile) OffersService(service string) bool {
	for _, s := range p.ServicesOffered {
		if s == service {
			return true
		}
	}
	return false
}
