package app

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Debouncer откладывает пересчёт после серии быстрых правок.
// В один момент времени ожидает выполнения не больше одной задачи:
// новое планирование отменяет ещё не сработавшее предыдущее.
// Гарантии выполнения до следующего чтения нет — читатели обязаны
// считать данные возможно устаревшими до завершения пересчёта
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	logger  *zap.Logger
}

func NewDebouncer(delay time.Duration, logger *zap.Logger) *Debouncer {
	return &Debouncer{
		delay:  delay,
		logger: logger,
	}
}

// Schedule планирует выполнение fn после задержки, отменяя
// ранее запланированную и ещё не сработавшую задачу
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.logger.Debug("Pending task superseded")
	}

	d.pending = fn
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// fire выполняет запланированную задачу по срабатыванию таймера
func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Flush синхронно выполняет отложенную задачу, если она есть.
// Используется в тестах и при завершении работы
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop отменяет отложенную задачу без выполнения
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.timer = nil
}
