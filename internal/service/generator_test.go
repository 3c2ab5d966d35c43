package service

import (
	"testing"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"go.uber.org/zap"
)

// mathSubject — понедельник 10:00-11:00 с 1 по 14 января 2024
// (2024-01-01 — понедельник, в интервале два понедельника)
func mathSubject() model.Subject {
	return model.Subject{
		Name:      "Math",
		Price:     1000,
		Duration:  60,
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
		Schedule: model.WeeklySchedule{
			1: {Enabled: true, Ranges: []model.TimeRange{{Start: "10:00", End: "11:00"}}},
		},
	}
}

func testNow() time.Time {
	return time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
}

func TestGenerateMondayLessons(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	lessons, skipped := g.Generate([]model.Subject{mathSubject()}, nil, testNow())
	if skipped != 0 {
		t.Fatalf("expected no skipped subjects, got %d", skipped)
	}
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}

	first, second := lessons[0], lessons[1]
	if got := first.DateTime.Format("2006-01-02 15:04"); got != "2024-01-01 10:00" {
		t.Errorf("first lesson at %s, want 2024-01-01 10:00", got)
	}
	if got := second.DateTime.Format("2006-01-02 15:04"); got != "2024-01-08 10:00" {
		t.Errorf("second lesson at %s, want 2024-01-08 10:00", got)
	}

	for i, l := range lessons {
		if !l.IsAutoGenerated {
			t.Errorf("lesson %d: expected IsAutoGenerated", i)
		}
		if l.EventType != model.LessonUnpaid {
			t.Errorf("lesson %d: EventType = %q, want unpaid", i, l.EventType)
		}
		if l.PaymentAmount != 1000 {
			t.Errorf("lesson %d: PaymentAmount = %d, want 1000", i, l.PaymentAmount)
		}
		if !l.HasPassed {
			t.Errorf("lesson %d: expected HasPassed with now=2024-01-10", i)
		}
	}
}

// Нумерация дней закреплена как в time.Weekday: индекс 1 — понедельник.
// Расписание на индексе 0 попадает на воскресенье
func TestGenerateWeekdayConvention(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	subject := mathSubject()
	subject.Schedule = model.WeeklySchedule{
		0: {Enabled: true, Ranges: []model.TimeRange{{Start: "10:00", End: "11:00"}}},
	}

	lessons, _ := g.Generate([]model.Subject{subject}, nil, testNow())
	if len(lessons) != 2 {
		t.Fatalf("expected 2 Sunday lessons, got %d", len(lessons))
	}
	for i, l := range lessons {
		if l.DateTime.Weekday() != time.Sunday {
			t.Errorf("lesson %d on %s, want Sunday", i, l.DateTime.Weekday())
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	subjects := []model.Subject{mathSubject()}

	first, _ := g.Generate(subjects, nil, testNow())
	second, _ := g.Generate(subjects, first, testNow())

	if len(second) != len(first) {
		t.Fatalf("regeneration changed lesson count: %d -> %d", len(first), len(second))
	}

	ids := make(map[string]bool, len(first))
	for _, l := range first {
		ids[l.ID.String()] = true
	}
	for _, l := range second {
		if !ids[l.ID.String()] {
			t.Errorf("regeneration produced new id %s for existing occurrence", l.ID)
		}
	}
}

func TestGenerateUpdatesExistingInPlace(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	subject := mathSubject()

	first, _ := g.Generate([]model.Subject{subject}, nil, testNow())

	// Цена предмета меняется, существующие записи должны обновиться без дублей
	subject.Price = 1500
	second, _ := g.Generate([]model.Subject{subject}, first, testNow())

	if len(second) != 2 {
		t.Fatalf("expected 2 lessons after price change, got %d", len(second))
	}
	for i, l := range second {
		if l.PaymentAmount != 1500 {
			t.Errorf("lesson %d: PaymentAmount = %d, want 1500", i, l.PaymentAmount)
		}
		if l.ID != first[i].ID {
			t.Errorf("lesson %d: id changed on regeneration", i)
		}
	}
}

// Запись без ведущего нуля обозначает тот же слот: "9:30" в сохранённом
// уроке и "09:30" в расписании не должны порождать дубль
func TestGenerateDedupAcrossClockSpellings(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	subject := mathSubject()
	subject.Schedule = model.WeeklySchedule{
		1: {Enabled: true, Ranges: []model.TimeRange{{Start: "9:30", End: "11:00"}}},
	}

	first, _ := g.Generate([]model.Subject{subject}, nil, testNow())
	if len(first) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(first))
	}
	for i, l := range first {
		if l.StartTime != "09:30" {
			t.Errorf("lesson %d: StartTime = %q, want canonical 09:30", i, l.StartTime)
		}
	}

	first[0].StartTime = "9:30"
	second, _ := g.Generate([]model.Subject{subject}, first, testNow())
	if len(second) != 2 {
		t.Fatalf("spelling variant created a duplicate: got %d lessons", len(second))
	}
	if second[0].ID != first[0].ID {
		t.Error("existing occurrence not matched across spellings")
	}
}

func TestGenerateHasPassedStrict(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	subject := mathSubject()

	// now ровно в момент первого урока: урок ещё не прошёл (строгое <)
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	lessons, _ := g.Generate([]model.Subject{subject}, nil, now)

	if lessons[0].HasPassed {
		t.Error("lesson at exactly now must not be marked as passed")
	}
	if lessons[1].HasPassed {
		t.Error("future lesson must not be marked as passed")
	}
}

func TestGenerateSkipsInvalidSubjects(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	subjects := []model.Subject{
		{Name: "", Price: 1000}, // без имени
		{ // без дат
			Name:     "NoDates",
			Schedule: model.WeeklySchedule{1: {Enabled: true, Ranges: []model.TimeRange{{Start: "10:00", End: "11:00"}}}},
		},
		{ // без активных дней
			Name:      "NoDays",
			StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
			Schedule:  model.WeeklySchedule{1: {Enabled: false, Ranges: []model.TimeRange{{Start: "10:00", End: "11:00"}}}},
		},
		mathSubject(),
	}

	lessons, skipped := g.Generate(subjects, nil, testNow())
	if skipped != 3 {
		t.Errorf("expected 3 skipped subjects, got %d", skipped)
	}
	if len(lessons) != 2 {
		t.Errorf("expected 2 lessons from the valid subject, got %d", len(lessons))
	}
}

func TestGenerateSkipsMalformedRanges(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	subject := mathSubject()
	subject.Schedule = model.WeeklySchedule{
		1: {Enabled: true, Ranges: []model.TimeRange{
			{Start: "10:00", End: ""},      // нет конца
			{Start: "", End: "11:00"},      // нет начала
			{Start: "12:00", End: "13:00"}, // единственный корректный
		}},
	}

	lessons, skipped := g.Generate([]model.Subject{subject}, nil, testNow())
	if skipped != 0 {
		t.Errorf("malformed ranges must not skip the whole subject, skipped = %d", skipped)
	}
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons from the valid range, got %d", len(lessons))
	}
	for i, l := range lessons {
		if l.StartTime != "12:00" {
			t.Errorf("lesson %d: StartTime = %q, want 12:00", i, l.StartTime)
		}
	}
}

func TestGenerateKeepsManualLessons(t *testing.T) {
	g := NewGenerator(zap.NewNop())

	manual := model.Lesson{
		DateTime:      time.Date(2024, time.January, 3, 15, 0, 0, 0, time.UTC),
		StartTime:     "15:00",
		EndTime:       "16:00",
		SubjectName:   "Math",
		PaymentAmount: 500,
	}

	lessons, _ := g.Generate([]model.Subject{mathSubject()}, []model.Lesson{manual}, testNow())
	if len(lessons) != 3 {
		t.Fatalf("expected manual lesson plus 2 generated, got %d", len(lessons))
	}
	if lessons[0].PaymentAmount != 500 {
		t.Error("manual lesson must not be touched by generation")
	}
}
