package usecase

import "errors"

var (
	// ErrNothingToSave is returned when a save is requested before a
	// template with items has been configured.
	ErrNothingToSave = errors.New("no configured session to save")

	// ErrQuestionTypeInUse guards question type deletion while template
	// items still reference the type.
	ErrQuestionTypeInUse = errors.New("question type is referenced by template items")

	// ErrLastTemplate keeps at least one template around for the practice
	// screen's default selection.
	ErrLastTemplate = errors.New("cannot delete the last template")

	// ErrInvalidBackup is returned when an import payload fails structural
	// validation; nothing is written in that case.
	ErrInvalidBackup = errors.New("invalid backup payload")
)
