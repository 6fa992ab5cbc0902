package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusNew, StatusPreparing, StatusReady, StatusCompleted, StatusServed, StatusPending, StatusCancelled} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("Delivered"))
	assert.False(t, IsValidStatus("new")) // case sensitive
	assert.False(t, IsValidStatus(""))
}

func TestIsDoneStatus(t *testing.T) {
	assert.True(t, IsDoneStatus(StatusServed))
	assert.True(t, IsDoneStatus(StatusCompleted))
	assert.False(t, IsDoneStatus(StatusNew))
	assert.False(t, IsDoneStatus(StatusReady))
	assert.False(t, IsDoneStatus(StatusCancelled))
}

func TestNewOrderNumber(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "ORD1787999400000", NewOrderNumber(at))
}

func TestIsDiscreteUnit(t *testing.T) {
	assert.True(t, IsDiscreteUnit("pcs"))
	assert.True(t, IsDiscreteUnit("piece"))
	assert.False(t, IsDiscreteUnit("ml"))
	assert.False(t, IsDiscreteUnit("g"))
	assert.False(t, IsDiscreteUnit(""))
}
