package domain

import (
	"math"
	"strings"
)

// Validate checks the form and returns an entry ready for persistence.
//
// Text fields are checked in form order and the first blank one is reported.
// A running timer blocks submission even when a manual duration is set,
// since its result is not known yet.
func Validate(in FormInput) (ValidEntry, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{ColumnName, in.Name},
		{ColumnRequestedDept, in.RequestedDept},
		{ColumnTask, in.Task},
	} {
		if IsBlank(f.value) {
			return ValidEntry{}, &ValidationError{Kind: KindMissingField, Field: f.name}
		}
	}

	if in.TimerState == TimerRunning {
		return ValidEntry{}, &ValidationError{Kind: KindTimerRunning}
	}
	if math.IsNaN(in.DurationMin) || math.IsInf(in.DurationMin, 0) || in.DurationMin <= 0 {
		return ValidEntry{}, &ValidationError{Kind: KindNonPositiveDuration}
	}

	return ValidEntry{
		Name:          in.Name,
		RequestedDept: in.RequestedDept,
		Task:          in.Task,
		DurationMin:   in.DurationMin,
	}, nil
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
