package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/valdisnipers-collab/immuno-survey/internal/model"
	"github.com/xuri/excelize/v2"
)

func exportFixture(t *testing.T, submissions []model.Submission) *ExportService {
	t.Helper()

	store := newStubSubmissionStore()
	for i := range submissions {
		store.subs = append(store.subs, submissions[i])
		store.existing[submissions[i].DeviceID] = true
	}
	subs := NewSubmissionService(store, newStubVotedFlags(), zerolog.Nop())

	qstore := newStubQuestionStore()
	for _, q := range model.DefaultQuestions() {
		qstore.questions[q.ID] = q
	}
	return NewExportService(subs, newQuestionService(qstore))
}

func readSheet(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("read Results sheet: %v", err)
	}
	return rows
}

func TestBuildXLSXHeadersAndValues(t *testing.T) {
	ts := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc := exportFixture(t, []model.Submission{
		{
			ID:        1,
			CreatedAt: ts,
			DeviceID:  "c0ffee42",
			Answers: []model.AnswerEntry{
				{QuestionID: "demo_gender", Answer: "male"},
				{QuestionID: "demo_immunity", Answer: 7},
			},
		},
	})

	file, err := svc.BuildXLSX(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(file.Filename, "ImmunoSurvey_Rezultati_") || !strings.HasSuffix(file.Filename, ".xlsx") {
		t.Fatalf("filename = %q", file.Filename)
	}

	rows := readSheet(t, file.Data)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}

	header := rows[0]
	if header[0] != "Date" || header[1] != "DeviceID" {
		t.Fatalf("fixed columns = %v", header[:2])
	}
	// Question columns carry the current prompt text.
	if header[2] != "Tavs dzimums:" {
		t.Fatalf("header[2] = %q", header[2])
	}
	if header[3] != "Kā Tu novērtē savu imunitāti?" {
		t.Fatalf("header[3] = %q", header[3])
	}

	row := rows[1]
	if row[0] != ts.Format(time.RFC3339) {
		t.Fatalf("date cell = %q", row[0])
	}
	if row[1] != "c0ffee42" {
		t.Fatalf("device cell = %q", row[1])
	}
	if row[2] != "male" || row[3] != "7" {
		t.Fatalf("answer cells = %v", row[2:])
	}
}

func TestBuildXLSXFirstOccurrenceColumnOrder(t *testing.T) {
	ts := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc := exportFixture(t, []model.Submission{
		{
			ID: 1, CreatedAt: ts, DeviceID: "aa000001",
			Answers: []model.AnswerEntry{
				{QuestionID: "demo_immunity", Answer: 4},
			},
		},
		{
			ID: 2, CreatedAt: ts, DeviceID: "aa000002",
			Answers: []model.AnswerEntry{
				{QuestionID: "demo_gender", Answer: "female"},
				{QuestionID: "demo_immunity", Answer: 9},
			},
		},
	})

	file, err := svc.BuildXLSX(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	rows := readSheet(t, file.Data)
	header := rows[0]

	// demo_immunity appeared first across rows, so its column comes first
	// even though demo_gender sits earlier in the question display order.
	if header[2] != "Kā Tu novērtē savu imunitāti?" || header[3] != "Tavs dzimums:" {
		t.Fatalf("column order = %v", header[2:])
	}

	// Row one has no gender answer; its cell stays empty.
	if len(rows[1]) > 3 && rows[1][3] != "" {
		t.Fatalf("missing answer rendered as %q", rows[1][3])
	}
}

func TestBuildXLSXUnknownQuestionFallsBackToID(t *testing.T) {
	ts := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	svc := exportFixture(t, []model.Submission{
		{
			ID: 1, CreatedAt: ts, DeviceID: "aa000001",
			Answers: []model.AnswerEntry{
				{QuestionID: "q_1712051200000", Answer: "brīvs teksts"},
			},
		},
	})

	file, err := svc.BuildXLSX(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	rows := readSheet(t, file.Data)
	// Deleted question: the raw id survives as the header.
	if rows[0][2] != "q_1712051200000" {
		t.Fatalf("header[2] = %q", rows[0][2])
	}
}

func TestBuildXLSXEmptyExport(t *testing.T) {
	svc := exportFixture(t, nil)

	file, err := svc.BuildXLSX(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	rows := readSheet(t, file.Data)
	if len(rows) != 1 {
		t.Fatalf("empty export should still carry the header row, got %d rows", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "DeviceID" {
		t.Fatalf("header = %v", rows[0])
	}
}
