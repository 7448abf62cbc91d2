package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const numberPrefix = "APT"

// AppointmentNumber строит номер записи вида APT-20240315-0001.
func AppointmentNumber(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", numberPrefix, date.Format("20060102"), seq)
}

// NumberPrefix возвращает общий для даты префикс номера, включая
// завершающий дефис.
func NumberPrefix(date time.Time) string {
	return fmt.Sprintf("%s-%s-", numberPrefix, date.Format("20060102"))
}

// sequenceOf извлекает порядковый номер из номера записи.
func sequenceOf(number string) (int, error) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, fmt.Errorf("некорректный номер записи %q", number)
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("некорректный номер записи %q", number)
	}
	return seq, nil
}
