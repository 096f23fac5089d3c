package responsible_test

import (
	"context"
	"time"
)

func ctxBackground() context.Context {
	return context.Background()
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
