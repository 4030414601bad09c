package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	deadlock := &pq.Error{Code: "40P01"}

	// Цепочка обертывания репозиторий -> usecase, как в боевом коде
	wrapped := fmt.Errorf("reserve_slot: internal error: failed to get reservations: %w",
		fmt.Errorf("reservation.repository: failed to execute query: GetActiveByFacilityAndDate - execute query: %w", serialization))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: serialization, want: true},
		{name: "deadlock detected", err: deadlock, want: true},
		{name: "wrapped through repo and usecase", err: wrapped, want: true},
		{name: "wrapped commit error", err: fmt.Errorf("%w: %w", ErrCommitTx, serialization), want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "stringified driver error", err: fmt.Errorf("execute query: %v", serialization), want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
