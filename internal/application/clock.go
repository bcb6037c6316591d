package application

import "time"

// Clock abstracts time for use-cases so timestamps are testable
type Clock interface {
	Now() time.Time
}

// SystemClock is the production implementation backed by time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
