// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Удобно использовать в логировании для единообразного вывода ошибок.
// Для nil возвращает значение "<nil>", а не панику.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(msg),
	}
}
