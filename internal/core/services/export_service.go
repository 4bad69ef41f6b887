package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
	portssvc "github.com/SscSPs/karangnongko_farm/internal/core/ports/services"
	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
)

const (
	rosterSheet   = "Daftar Kambing"
	icsProductID  = "-//Karangnongko Farm//Check-in Journal//ID"
	icsUIDSuffix  = "@karangnongko-farm"
	exportStampFm = "20060102"
)

var rosterHeaders = []string{"ID", "Kandang", "Berat (kg)", "Umur (bulan)", "Jenis Kelamin", "Status"}

type exportService struct {
	BaseService
	goats    portssvc.GoatReaderSvc
	checkins portssvc.CheckinReaderSvc
	now      Clock
}

// NewExportService renders the roster as XLSX and the journal as an iCalendar feed.
func NewExportService(goats portssvc.GoatReaderSvc, checkins portssvc.CheckinReaderSvc, clock Clock) portssvc.ExportSvc {
	if clock == nil {
		clock = time.Now
	}
	return &exportService{goats: goats, checkins: checkins, now: clock}
}

func (s *exportService) ExportGoatsXLSX(ctx context.Context, barnFilter string) (*bytes.Buffer, string, error) {
	goats, err := s.goats.ListGoats(ctx, barnFilter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}
	f.SetColWidth(rosterSheet, "A", "A", 10)
	f.SetColWidth(rosterSheet, "B", "F", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C6E0B4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(rosterSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(rosterHeaders), 1)
	f.SetCellStyle(rosterSheet, "A1", last, headerStyle)

	for i, g := range goats {
		row := i + 2
		weight, _ := g.Weight.Float64()
		values := []any{g.ID, string(g.Barn), weight, g.Age, string(g.Gender), string(g.Status)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(rosterSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.LogError(ctx, err, "Failed to write roster workbook")
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	if barnFilter == "" {
		barnFilter = domain.BarnFilterAll
	}
	filename := fmt.Sprintf("daftar-kambing_%s_%s.xlsx", barnFilter, s.now().Format(exportStampFm))
	s.LogInfo(ctx, "Roster exported", slog.Int("rows", len(goats)), slog.String("barn", barnFilter))
	return buf, filename, nil
}

func (s *exportService) ExportCheckinsICS(ctx context.Context) (*bytes.Buffer, string, error) {
	entries, err := s.checkins.ListCheckins(ctx)
	if err != nil {
		return nil, "", err
	}

	stamp := s.now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetName("Check-in Harian")

	for _, e := range entries {
		day, err := time.Parse(domain.DateLayout, e.Date)
		if err != nil {
			s.LogDebug(ctx, "Skipping check-in with unparseable date", slog.String("date", e.Date))
			continue
		}
		event := cal.AddEvent(e.Date + icsUIDSuffix)
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Check-in: %s", e.Mood))
		event.SetDescription(fmt.Sprintf("Pencapaian: %s\nKendala: %s\nLangkah berikutnya: %s",
			e.Accomplishments, e.Challenges, e.NextSteps))
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.LogError(ctx, err, "Failed to serialize check-in calendar")
		return nil, "", fmt.Errorf("serialize calendar: %w", err)
	}
	filename := fmt.Sprintf("checkins_%s.ics", s.now().Format(exportStampFm))
	return buf, filename, nil
}
