package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Results"

// ExportFile is a rendered spreadsheet ready to be served as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService flattens stored submissions into a single-sheet xlsx workbook.
type ExportService struct {
	subs      *SubmissionService
	questions *QuestionService
}

// NewExportService creates a new ExportService.
func NewExportService(subs *SubmissionService, questions *QuestionService) *ExportService {
	return &ExportService{subs: subs, questions: questions}
}

// BuildXLSX produces one row per submission: a fixed Date/DeviceID column
// pair followed by one column per distinct question id in first-occurrence
// order across the processed rows. Headers use the question's current prompt
// text when it resolves, else the raw id (the question may have been deleted
// or edited since the answers were collected).
func (s *ExportService) BuildXLSX(ctx context.Context) (*ExportFile, error) {
	submissions, err := s.subs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	textByID := make(map[string]string)
	for _, q := range s.questions.ListOrDefaults(ctx) {
		textByID[q.ID] = q.Text
	}

	// First-occurrence column order, not question display order.
	var columns []string
	seen := make(map[string]struct{})
	for _, sub := range submissions {
		for _, ans := range sub.Answers {
			if _, ok := seen[ans.QuestionID]; !ok {
				seen[ans.QuestionID] = struct{}{}
				columns = append(columns, ans.QuestionID)
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	header := []any{"Date", "DeviceID"}
	for _, qid := range columns {
		if text, ok := textByID[qid]; ok && text != "" {
			header = append(header, text)
		} else {
			header = append(header, qid)
		}
	}
	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, sub := range submissions {
		row := []any{sub.CreatedAt.Format(time.RFC3339), sub.DeviceID}
		answerByID := make(map[string]any, len(sub.Answers))
		for _, ans := range sub.Answers {
			answerByID[ans.QuestionID] = ans.Answer
		}
		for _, qid := range columns {
			row = append(row, answerByID[qid]) // nil leaves the cell empty
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("ImmunoSurvey_Rezultati_%s.xlsx", time.Now().Format("2006-01-02")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func writeRow(f *excelize.File, rowNum int, values []any) error {
	for col, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
