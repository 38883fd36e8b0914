package config

import "fmt"

// InvalidSettingError reports a setting whose value cannot be used.
type InvalidSettingError struct {
	Key   string
	Value any
	Err   error
}

func (e *InvalidSettingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %v: %v", e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %v", e.Key, e.Value)
}

func (e *InvalidSettingError) Unwrap() error {
	return e.Err
}
