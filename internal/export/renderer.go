// Package export renders the committed registrations into downloadable
// artifacts: a tabular PDF report and an Excel workbook. Both refuse to
// render an empty dataset so no corrupt or empty file ever leaves the
// service.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/onamfest/house-registration/internal/model"
)

// ErrNoData is returned when there are no registrations to export.
// Handlers surface it as a no-data message instead of a file.
var ErrNoData = errors.New("no registration data available for export")

const reportTitle = "Onam Procession 2025"

// PDFFilename returns the deterministic, date-stamped download name of
// the PDF report.
func PDFFilename(now time.Time) string {
	return fmt.Sprintf("onam_registrations_%s.pdf", now.Format("2006-01-02"))
}

// WorkbookFilename returns the deterministic, date-stamped download name
// of the Excel workbook.
func WorkbookFilename(now time.Time) string {
	return fmt.Sprintf("onam_registrations_%s.xlsx", now.Format("2006-01-02"))
}

// RenderPDF produces the registration report: a header, a per-house
// summary and the full participant table ordered as the caller supplies
// it (house, then creation time).
func RenderPDF(regs []model.Registration, statuses []model.HouseStatus, generatedAt time.Time) ([]byte, error) {
	if len(regs) == 0 {
		return nil, ErrNoData
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle+" Registration Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(204, 102, 0)
	pdf.CellFormat(0, 10, reportTitle, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, "Registration Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on: %s", generatedAt.Format("2006-01-02 15:04:05 MST")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Participants: %d", len(regs)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Registration Summary by House:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, st := range statuses {
		line := fmt.Sprintf("%s: %d/%d registered", st.House, st.ParticipantsCount, model.TeamSize)
		if st.IsCompleted {
			line = fmt.Sprintf("%s: Complete", st.House)
		}
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Participant table. Widths add up to the printable width of an A4
	// page with default margins.
	headers := []string{"Name", "College ID", "House", "Class", "Registered On"}
	widths := []float64{55, 35, 30, 35, 35}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(245, 158, 84)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	fill := false
	for _, reg := range regs {
		pdf.SetFillColor(254, 243, 199)
		row := []string{reg.Name, reg.CollegeID, reg.House, reg.Class, reg.CreatedAt.Format("2006-01-02")}
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderWorkbook produces the Excel workbook: a Summary sheet, a full
// Participants sheet, and one sheet per house holding only that house's
// rows. Houses with no registrations get no sheet.
func RenderWorkbook(regs []model.Registration, statuses []model.HouseStatus, generatedAt time.Time) ([]byte, error) {
	if len(regs) == 0 {
		return nil, ErrNoData
	}

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	const summary = "Summary"
	if err := wb.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	summaryRows := [][]interface{}{
		{reportTitle + " - Registration Summary"},
		{"Generated on:", generatedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total Participants:", len(regs)},
		{},
		{"House", "Status", "Participants", "Completed At"},
	}
	for _, st := range statuses {
		stText := "Incomplete"
		if st.IsCompleted {
			stText = "Complete"
		}
		completed := "Not completed"
		if st.CompletedAt != nil {
			completed = st.CompletedAt.Format("2006-01-02 15:04:05")
		}
		summaryRows = append(summaryRows, []interface{}{st.House, stText, st.ParticipantsCount, completed})
	}
	if err := writeRows(wb, summary, summaryRows); err != nil {
		return nil, err
	}

	const participants = "Participants"
	if _, err := wb.NewSheet(participants); err != nil {
		return nil, err
	}
	partRows := [][]interface{}{
		{"Name", "College ID", "House", "Class", "Registration Batch", "Registered On"},
	}
	for _, reg := range regs {
		partRows = append(partRows, []interface{}{
			reg.Name, reg.CollegeID, reg.House, reg.Class, reg.RegistrationBatch,
			reg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	if err := writeRows(wb, participants, partRows); err != nil {
		return nil, err
	}

	for _, house := range model.Houses {
		var houseRows [][]interface{}
		for _, reg := range regs {
			if reg.House != house {
				continue
			}
			houseRows = append(houseRows, []interface{}{
				reg.Name, reg.CollegeID, reg.Class, reg.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		if len(houseRows) == 0 {
			continue
		}
		if _, err := wb.NewSheet(house); err != nil {
			return nil, err
		}
		rows := [][]interface{}{
			{fmt.Sprintf("%s House Participants", house)},
			{"Name", "College ID", "Class", "Registered On"},
		}
		rows = append(rows, houseRows...)
		if err := writeRows(wb, house, rows); err != nil {
			return nil, err
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeRows fills a sheet starting at A1, one slice per row.
func writeRows(wb *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
