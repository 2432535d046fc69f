package exchange

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "typed", err: NewError("Positions", KindAuth, errors.New("bad key")), want: KindAuth},
		{name: "wrapped typed", err: fmt.Errorf("cycle: %w", NewError("Balance", KindRateLimit, nil)), want: KindRateLimit},
		{name: "deadline", err: context.DeadlineExceeded, want: KindNetwork},
		{name: "plain", err: errors.New("boom"), want: KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestNewErrorKeepsInnerKind(t *testing.T) {
	inner := NewError("LoadMarkets", KindNotFound, errors.New("no symbol"))
	outer := NewError("AmountToPrecision", KindUnknown, inner)

	assert.Equal(t, KindNotFound, outer.Kind)
	assert.ErrorIs(t, outer, inner)
	assert.Contains(t, outer.Error(), "AmountToPrecision")
}

func TestKindRetryable(t *testing.T) {
	assert.True(t, KindNetwork.Retryable())
	assert.True(t, KindRateLimit.Retryable())
	assert.False(t, KindAuth.Retryable())
	assert.False(t, KindRejected.Retryable())
}
