// Package scheduling вычисляет свободные слоты приёма по расписанию врача.
// Функции чистые: результат зависит только от аргументов, без обращений к
// хранилищу.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic/internal/domain"
)

// FreeSlots возвращает начала свободных слотов ("HH:MM") по возрастанию.
// Слот занят, если он пересекает перерыв или если на него попадает активная
// (pending или confirmed) запись. Отменённые и завершённые записи слот не
// блокируют. Некорректное окно или неположительная длительность дают пустой
// список, не ошибку.
func FreeSlots(s domain.Schedule, appts []domain.Appointment) []string {
	start, err := parseClock(s.StartTime)
	if err != nil {
		return []string{}
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		return []string{}
	}
	if s.SlotDuration <= 0 || start >= end {
		return []string{}
	}

	breakStart, breakEnd := -1, -1
	if s.BreakStart != nil && s.BreakEnd != nil {
		bs, errS := parseClock(*s.BreakStart)
		be, errE := parseClock(*s.BreakEnd)
		if errS == nil && errE == nil && bs < be {
			breakStart, breakEnd = bs, be
		}
	}

	busy := make([]int, 0, len(appts))
	for _, a := range appts {
		if !a.Status.IsActive() {
			continue
		}
		busy = append(busy, a.AppointmentTime.Hour()*60+a.AppointmentTime.Minute())
	}

	slots := []string{}
	for cur := start; cur+s.SlotDuration <= end; cur += s.SlotDuration {
		if breakStart >= 0 && cur < breakEnd && breakStart < cur+s.SlotDuration {
			continue
		}
		taken := false
		for _, m := range busy {
			if m >= cur && m < cur+s.SlotDuration {
				taken = true
				break
			}
		}
		if taken {
			continue
		}
		slots = append(slots, formatClock(cur))
	}
	return slots
}

// IsBookable проверяет, можно ли записаться на предложенное время: расписание
// доступно и является рабочим днём, время не в прошлом и входит в свободные
// слоты.
func IsBookable(s domain.Schedule, appts []domain.Appointment, proposed, now time.Time) bool {
	if !s.IsAvailable || !s.IsWorkingDay {
		return false
	}
	if proposed.Before(now) {
		return false
	}
	want := proposed.Format("15:04")
	for _, slot := range FreeSlots(s, appts) {
		if slot == want {
			return true
		}
	}
	return false
}

// ValidateSchedule проверяет согласованность окна и перерыва. Возвращает
// ошибку, оборачивающую domain.ErrInvalidSchedule.
func ValidateSchedule(s domain.Schedule) error {
	start, err := parseClock(s.StartTime)
	if err != nil {
		return fmt.Errorf("%w: время начала %q", domain.ErrInvalidSchedule, s.StartTime)
	}
	end, err := parseClock(s.EndTime)
	if err != nil {
		return fmt.Errorf("%w: время окончания %q", domain.ErrInvalidSchedule, s.EndTime)
	}
	if start >= end {
		return fmt.Errorf("%w: начало должно быть раньше окончания", domain.ErrInvalidSchedule)
	}
	if s.SlotDuration <= 0 {
		return fmt.Errorf("%w: длительность слота должна быть положительной", domain.ErrInvalidSchedule)
	}
	if (s.BreakStart == nil) != (s.BreakEnd == nil) {
		return fmt.Errorf("%w: перерыв должен иметь начало и окончание", domain.ErrInvalidSchedule)
	}
	if s.BreakStart != nil {
		bs, err := parseClock(*s.BreakStart)
		if err != nil {
			return fmt.Errorf("%w: начало перерыва %q", domain.ErrInvalidSchedule, *s.BreakStart)
		}
		be, err := parseClock(*s.BreakEnd)
		if err != nil {
			return fmt.Errorf("%w: окончание перерыва %q", domain.ErrInvalidSchedule, *s.BreakEnd)
		}
		if bs >= be {
			return fmt.Errorf("%w: начало перерыва должно быть раньше его окончания", domain.ErrInvalidSchedule)
		}
		if bs < start || be > end {
			return fmt.Errorf("%w: перерыв должен находиться внутри рабочего окна", domain.ErrInvalidSchedule)
		}
	}
	return nil
}

// parseClock разбирает "HH:MM" (допустим хвост ":SS" из базы) в минуты от
// полуночи.
func parseClock(v string) (int, error) {
	parts := strings.Split(v, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("некорректное время %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("некорректное время %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("некорректное время %q", v)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("некорректное время %q", v)
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
