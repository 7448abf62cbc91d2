package domain

import "errors"

var (
	ErrNotFound            = errors.New("запись не найдена")
	ErrForbidden           = errors.New("доступ запрещён")
	ErrEmailTaken          = errors.New("email уже занят")
	ErrPolicyTaken         = errors.New("полис ОМС уже зарегистрирован")
	ErrInvalidCredentials  = errors.New("неверный email или пароль")
	ErrInvalidToken        = errors.New("недействительный токен")
	ErrInvalidSchedule     = errors.New("некорректное расписание")
	ErrScheduleExists      = errors.New("расписание на эту дату уже существует")
	ErrSlotUnavailable     = errors.New("выбранное время недоступно")
	ErrSlotTaken           = errors.New("это время уже занято")
	ErrNumberingConflict   = errors.New("конфликт нумерации записей")
	ErrInvalidStatusChange = errors.New("недопустимая смена статуса записи")
	ErrDraftExpired        = errors.New("черновик записи устарел")
	ErrDraftIncomplete     = errors.New("не все шаги записи заполнены")
)
