package domain

import "strings"

// ValidationErrors — полный список нарушений правил валидации.
// Возвращается фабрикой как данные: вызывающая сторона получает все нарушения
// за один вызов, а не первое попавшееся.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// Unwrap позволяет проверять отдельные нарушения через errors.Is.
func (v ValidationErrors) Unwrap() []error {
	return v
}

// Messages возвращает тексты нарушений в порядке проверки правил.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return msgs
}
