package service

import "time"

type CreateStats struct {
	ChargeMs  float64
	DBWriteMs float64
}

type QueryStats struct {
	DBMs float64
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
