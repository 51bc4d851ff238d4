package service

import (
	"errors"
	"os"
)

type Mode int

const (
	ModeDev Mode = iota
	ModeProd
)

var (
	ErrBunNotFound  = errors.New("bun executable not found in PATH; the compiler service requires bun")
	ErrServiceStart = errors.New("failed to start compiler service process")
)

func GetMode() Mode {
	if os.Getenv("MIMIR_DEV") == "1" {
		return ModeDev
	}
	return ModeProd
}

func IsDev() bool {
	return GetMode() == ModeDev
}
