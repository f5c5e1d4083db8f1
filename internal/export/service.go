package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/biodata-intake/internal/repository"
)

// Service is a tiny façade over the profile repository that produces
// XLSX bytes for exports.
type Service struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

func NewService(profiles repository.ProfileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{profiles: profiles, logger: logger}
}

// ExportProfilesXLSX returns an XLSX workbook (as bytes) listing accepted
// profiles, newest first. limit <= 0 exports everything.
func (s *Service) ExportProfilesXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	profiles, err := s.profiles.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Profiles"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"First Name",
		"Last Name",
		"Gender",
		"Date of Birth",
		"Height",
		"Marital Status",
		"Religion",
		"Caste",
		"Subcaste",
		"Mother Tongue",
		"Education",
		"Occupation",
		"Company",
		"Income",
		"Location",
		"Citizenship",
		"Phone",
		"Family Details",
		"Partner Preferences",
		"Accepted At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, sp := range profiles {
		p := sp.Profile
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, p.FirstName)
		write(2, p.LastName)
		write(3, p.Gender)
		write(4, p.DatetimeOfBirth)
		write(5, p.Height)
		write(6, p.MaritalStatus)
		write(7, p.Religion)
		write(8, p.Caste)
		write(9, p.Subcaste)
		write(10, p.MotherTongue)
		write(11, p.Education)
		write(12, p.Occupation)
		write(13, p.Company)
		write(14, p.Income)
		write(15, p.CurrentLocation)
		write(16, p.Citizenship)
		write(17, p.PhoneNumber)
		write(18, truncate(p.FamilyDetails, 140))
		write(19, truncate(p.PartnerPrefs, 140))
		write(20, sp.CreatedAt.Format("2006-01-02"))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "B", 16) // names
	_ = f.SetColWidth(sheet, "D", "D", 14) // dob
	_ = f.SetColWidth(sheet, "K", "M", 24) // education, work
	_ = f.SetColWidth(sheet, "O", "O", 28) // location
	_ = f.SetColWidth(sheet, "R", "S", 48) // long text

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(profiles),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
