package service

import (
	"testing"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/google/uuid"
)

func lessonAt(day int, hour int, amount int) model.Lesson {
	return model.Lesson{
		ID:            uuid.New(),
		DateTime:      time.Date(2024, time.January, day, hour, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		SubjectName:   "Math",
		PaymentAmount: amount,
	}
}

func prepaymentAt(day int, amount int) model.Prepayment {
	return model.Prepayment{
		ID:       uuid.New(),
		Amount:   amount,
		DateTime: time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
	}
}

// Сценарий из двух понедельников: предоплата 2500 покрывает оба урока по 1000
func TestReconcileCoversBothLessons(t *testing.T) {
	lessons := []model.Lesson{lessonAt(1, 10, 1000), lessonAt(8, 10, 1000)}
	prepayments := []model.Prepayment{prepaymentAt(1, 2500)}

	out := Reconcile(lessons, prepayments)

	if out[0].EventType != model.LessonPaid || out[0].RemainingPrepayment != 1500 {
		t.Errorf("lesson 1: got %q remaining %d, want paid remaining 1500",
			out[0].EventType, out[0].RemainingPrepayment)
	}
	if out[1].EventType != model.LessonPaid || out[1].RemainingPrepayment != 500 {
		t.Errorf("lesson 2: got %q remaining %d, want paid remaining 500",
			out[1].EventType, out[1].RemainingPrepayment)
	}
}

// Недостаточная предоплата: баланс не трогается, оба урока не оплачены
func TestReconcileInsufficientBalance(t *testing.T) {
	lessons := []model.Lesson{lessonAt(1, 10, 1000), lessonAt(8, 10, 1000)}
	prepayments := []model.Prepayment{prepaymentAt(1, 800)}

	out := Reconcile(lessons, prepayments)

	for i := range out {
		if out[i].EventType != model.LessonUnpaid {
			t.Errorf("lesson %d: got %q, want unpaid", i, out[i].EventType)
		}
		if out[i].RemainingPrepayment != 800 {
			t.Errorf("lesson %d: remaining %d, want 800 (untouched)", i, out[i].RemainingPrepayment)
		}
	}
}

// Урок ценой ровно в баланс оплачивается полностью, остаток ноль
func TestReconcileExactBoundary(t *testing.T) {
	lessons := []model.Lesson{lessonAt(1, 10, 1000)}
	prepayments := []model.Prepayment{prepaymentAt(1, 1000)}

	out := Reconcile(lessons, prepayments)

	if out[0].EventType != model.LessonPaid {
		t.Errorf("got %q, want paid", out[0].EventType)
	}
	if out[0].RemainingPrepayment != 0 {
		t.Errorf("remaining = %d, want 0", out[0].RemainingPrepayment)
	}
}

// Предоплата с датой ровно в момент урока успевает первой
func TestReconcilePrepaymentWinsTies(t *testing.T) {
	lesson := lessonAt(1, 10, 1000)
	prepayment := model.Prepayment{
		ID:       uuid.New(),
		Amount:   1000,
		DateTime: lesson.DateTime,
	}

	out := Reconcile([]model.Lesson{lesson}, []model.Prepayment{prepayment})

	if out[0].EventType != model.LessonPaid {
		t.Errorf("got %q, want paid: prepayment at the same instant applies first", out[0].EventType)
	}
}

// Отменённый урок не списывает баланс и не влияет на остальные
func TestReconcileCancelledIsBalanceNeutral(t *testing.T) {
	cancelled := lessonAt(8, 10, 1000)
	cancelled.IsCancelled = true

	withCancelled := []model.Lesson{lessonAt(1, 10, 1000), cancelled, lessonAt(15, 10, 1000)}
	without := []model.Lesson{withCancelled[0], withCancelled[2]}
	prepayments := []model.Prepayment{prepaymentAt(1, 2500)}

	outWith := Reconcile(withCancelled, prepayments)
	outWithout := Reconcile(without, prepayments)

	if outWith[1].EventType != model.LessonCancelled {
		t.Errorf("cancelled lesson: got %q, want cancelled", outWith[1].EventType)
	}
	if outWith[1].RemainingPrepayment != 1500 {
		t.Errorf("cancelled lesson remaining = %d, want 1500 (no debit)", outWith[1].RemainingPrepayment)
	}

	if outWith[0].RemainingPrepayment != outWithout[0].RemainingPrepayment {
		t.Error("cancelling a lesson changed the first lesson's remaining balance")
	}
	if outWith[2].RemainingPrepayment != outWithout[1].RemainingPrepayment {
		t.Error("cancelling a lesson changed the last lesson's remaining balance")
	}
}

// Сумма предоплат равна сумме оплаченных уроков плюс финальный остаток
func TestReconcileConservation(t *testing.T) {
	lessons := []model.Lesson{
		lessonAt(1, 10, 700),
		lessonAt(3, 10, 1200),
		lessonAt(8, 10, 900),
		lessonAt(10, 10, 400),
	}
	prepayments := []model.Prepayment{prepaymentAt(1, 2000), prepaymentAt(2, 500)}

	out := Reconcile(lessons, prepayments)

	totalPrepaid := 0
	for _, p := range prepayments {
		totalPrepaid += p.Amount
	}

	paidSum := 0
	finalRemaining := 0
	for _, l := range out {
		if l.EventType == model.LessonPaid {
			paidSum += l.PaymentAmount
		}
	}
	// Остаток после последнего по дате урока
	finalRemaining = out[len(out)-1].RemainingPrepayment

	if totalPrepaid != paidSum+finalRemaining {
		t.Errorf("conservation violated: prepaid %d != paid %d + remaining %d",
			totalPrepaid, paidSum, finalRemaining)
	}
}

// Баланс никогда не уходит в минус
func TestReconcileBalanceNeverNegative(t *testing.T) {
	lessons := []model.Lesson{
		lessonAt(1, 10, 500),
		lessonAt(2, 10, 5000),
		lessonAt(3, 10, 200),
	}
	prepayments := []model.Prepayment{prepaymentAt(1, 600)}

	out := Reconcile(lessons, prepayments)

	for i, l := range out {
		if l.RemainingPrepayment < 0 {
			t.Errorf("lesson %d: negative remaining %d", i, l.RemainingPrepayment)
		}
	}
	// 600 - 500 = 100; урок за 5000 не оплачен и не трогает баланс;
	// 100 хватает на урок за 200? нет — тоже не оплачен
	if out[1].EventType != model.LessonUnpaid || out[1].RemainingPrepayment != 100 {
		t.Errorf("lesson 2: got %q remaining %d, want unpaid remaining 100",
			out[1].EventType, out[1].RemainingPrepayment)
	}
	if out[2].EventType != model.LessonUnpaid || out[2].RemainingPrepayment != 100 {
		t.Errorf("lesson 3: got %q remaining %d, want unpaid remaining 100",
			out[2].EventType, out[2].RemainingPrepayment)
	}
}

// Выход сохраняет порядок входа, сортировка — внутреннее дело алгоритма
func TestReconcilePreservesInputOrder(t *testing.T) {
	lessons := []model.Lesson{lessonAt(8, 10, 1000), lessonAt(1, 10, 1000)}
	prepayments := []model.Prepayment{prepaymentAt(1, 1000)}

	out := Reconcile(lessons, prepayments)

	if !out[0].DateTime.Equal(lessons[0].DateTime) || !out[1].DateTime.Equal(lessons[1].DateTime) {
		t.Fatal("output order differs from input order")
	}
	// Хронологически первый (вход[1]) оплачивается, поздний — нет
	if out[1].EventType != model.LessonPaid {
		t.Errorf("earliest lesson: got %q, want paid", out[1].EventType)
	}
	if out[0].EventType != model.LessonUnpaid {
		t.Errorf("latest lesson: got %q, want unpaid", out[0].EventType)
	}
}

// Старые значения статуса и остатка на входе игнорируются
func TestReconcileIgnoresStaleFields(t *testing.T) {
	lesson := lessonAt(1, 10, 1000)
	lesson.EventType = model.LessonPaid
	lesson.RemainingPrepayment = 99999

	out := Reconcile([]model.Lesson{lesson}, nil)

	if out[0].EventType != model.LessonUnpaid {
		t.Errorf("got %q, want unpaid: stale paid status must be recomputed", out[0].EventType)
	}
	if out[0].RemainingPrepayment != 0 {
		t.Errorf("remaining = %d, want 0", out[0].RemainingPrepayment)
	}
}

// Повторная сверка тех же входов даёт тот же результат
func TestReconcileIdempotent(t *testing.T) {
	lessons := []model.Lesson{lessonAt(1, 10, 700), lessonAt(8, 10, 900)}
	prepayments := []model.Prepayment{prepaymentAt(1, 1000)}

	first := Reconcile(lessons, prepayments)
	second := Reconcile(first, prepayments)

	for i := range first {
		if first[i].EventType != second[i].EventType ||
			first[i].RemainingPrepayment != second[i].RemainingPrepayment {
			t.Errorf("lesson %d: reconcile is not idempotent: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// Вход не мутируется
func TestReconcileDoesNotMutateInput(t *testing.T) {
	lessons := []model.Lesson{lessonAt(1, 10, 1000)}
	prepayments := []model.Prepayment{prepaymentAt(1, 1000)}

	_ = Reconcile(lessons, prepayments)

	if lessons[0].EventType != "" || lessons[0].RemainingPrepayment != 0 {
		t.Error("Reconcile mutated its input slice")
	}
}

// Предоплаты позже последнего урока не попадают в баланс этого прохода
func TestReconcileLatePrepaymentUnapplied(t *testing.T) {
	lessons := []model.Lesson{lessonAt(1, 10, 1000)}
	prepayments := []model.Prepayment{prepaymentAt(5, 3000)}

	out := Reconcile(lessons, prepayments)

	if out[0].EventType != model.LessonUnpaid {
		t.Errorf("got %q, want unpaid: prepayment after the lesson must not apply", out[0].EventType)
	}
	if out[0].RemainingPrepayment != 0 {
		t.Errorf("remaining = %d, want 0", out[0].RemainingPrepayment)
	}
}

// Урок, добавленный вручную, должен "пройти" при очередной сверке:
// признак пересчитывается по дате, а не замораживается при создании
func TestRefreshPassageFlipsManualLesson(t *testing.T) {
	manual := lessonAt(10, 10, 800)
	manual.IsAutoGenerated = false
	manual.HasPassed = false

	lessons := []model.Lesson{manual}
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	changed := RefreshPassage(lessons, now)
	if len(changed) != 1 || changed[0] != 0 {
		t.Fatalf("changed = %v, want [0]", changed)
	}
	if !lessons[0].HasPassed {
		t.Fatal("expected HasPassed after the lesson time")
	}

	stats := ComputeStats(Reconcile(lessons, nil))
	if stats.CompletedLessons != 1 {
		t.Errorf("CompletedLessons = %d, want 1", stats.CompletedLessons)
	}
	if stats.Debt != 800 {
		t.Errorf("Debt = %d, want 800", stats.Debt)
	}
}

// Урок ровно в момент now ещё не прошёл (строгое <)
func TestRefreshPassageStrictBoundary(t *testing.T) {
	lessons := []model.Lesson{lessonAt(10, 10, 800)}
	now := time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC)

	if changed := RefreshPassage(lessons, now); changed != nil {
		t.Fatalf("changed = %v, want none", changed)
	}
	if lessons[0].HasPassed {
		t.Error("lesson exactly at now must not be passed")
	}
}

// Признак снимается в обратную сторону, если дата урока в будущем
func TestRefreshPassageClearsFlag(t *testing.T) {
	future := lessonAt(20, 10, 800)
	future.HasPassed = true

	lessons := []model.Lesson{future}
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	if changed := RefreshPassage(lessons, now); len(changed) != 1 {
		t.Fatalf("changed = %v, want one index", changed)
	}
	if lessons[0].HasPassed {
		t.Error("future lesson must not stay passed")
	}
}

// Корректные признаки не порождают изменений и лишних записей в базу
func TestRefreshPassageNoopWhenCurrent(t *testing.T) {
	passed := lessonAt(1, 10, 800)
	passed.HasPassed = true
	upcoming := lessonAt(20, 10, 800)

	lessons := []model.Lesson{passed, upcoming}
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	if changed := RefreshPassage(lessons, now); changed != nil {
		t.Errorf("changed = %v, want none", changed)
	}
}
