package repository

import "errors"

// ErrNotFound - в хранилище ещё нет сохранённой коллекции
var ErrNotFound = errors.New("коллекция задач не найдена")

// ErrMalformed - сохранённое значение не разбирается как массив задач
var ErrMalformed = errors.New("сохранённая коллекция задач повреждена")
