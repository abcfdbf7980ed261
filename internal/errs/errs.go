package errs

import "errors"

// Базовые виды ошибок движка. Слои выше оборачивают их через fmt.Errorf
// и проверяют через errors.Is при маппинге на HTTP-коды.
var (
	// ErrValidation - некорректные или неполные входные данные (400)
	ErrValidation = errors.New("validation error")

	// ErrInvalidCoordinates - координаты вне диапазонов [-90,90]/[-180,180] (400)
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrNotLinked - запись отслеживания для карты не существует (404)
	ErrNotLinked = errors.New("tracking record not linked")

	// ErrNotFound - запрошенный объект не найден (404)
	ErrNotFound = errors.New("not found")

	// ErrAlreadyActive - карта уже выдана и находится в обращении (409)
	ErrAlreadyActive = errors.New("card already active")

	// ErrReasonRequired - перевод emergency -> active требует явной причины (400)
	ErrReasonRequired = errors.New("reason required")

	// ErrStorage - временный сбой хранилища, запрос можно повторить (5xx)
	ErrStorage = errors.New("storage error")
)
