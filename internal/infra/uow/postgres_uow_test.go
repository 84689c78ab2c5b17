//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"wedding-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgErrCodeSerializationFailure}, want: true},
		{name: "deadlock", err: errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "failed to save booking"), want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestShouldRetryStopsAtMax(t *testing.T) {
	err := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	assert.True(t, shouldRetry(err, 0, 3))
	assert.False(t, shouldRetry(err, 3, 3))
}

func TestCalculateBackoffBounds(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := range 3 {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5)
	}
}
