package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/signintech/gopdf"

	"mobilityplus-server/internal/models"
)

// Service renders a patient's care log as a downloadable PDF.
type Service struct {
	fontPaths []string
}

// NewService creates the report service. DejaVuSans covers the accented
// characters in Spanish service names and notes.
func NewService() *Service {
	return &Service{
		fontPaths: []string{
			"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
	}
}

// BuildCareLogPDF renders the patient's care log entries, newest first,
// and returns the document bytes.
func (s *Service) BuildCareLogPDF(patientName string, entries []models.CareLogEntry) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	fontLoaded := false
	var fontErr error
	for _, path := range s.fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Bitácora de Cuidados — MobilityPLUS")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Paciente: %s", patientName))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Generado: %s", time.Now().Format("02/01/2006 15:04")))
	pdf.Br(25)

	if len(entries) == 0 {
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Sin registros de cuidado.")
	}

	for _, entry := range entries {
		if err := pdf.SetFont("DejaVu", "", 13); err != nil {
			return nil, err
		}
		pdf.Cell(nil, fmt.Sprintf("%s — %s", entry.CreatedAt.Format("02/01/2006 15:04"), entry.ServiceType))
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		pdf.Cell(nil, fmt.Sprintf("Profesional: %s", entry.ProfessionalName))
		pdf.Br(13)

		lines, _ := pdf.SplitText(entry.Notes, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
