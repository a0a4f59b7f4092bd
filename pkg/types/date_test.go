package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateFromString(t *testing.T) {
	d, err := NewDateFromString("2025-12-19")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-19", d.String())
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.December, d.Month())

	_, err = NewDateFromString("19-12-2025")
	assert.Error(t, err)

	_, err = NewDateFromString("2025-13-01")
	assert.Error(t, err)
}

func TestDate_AddDays_CrossesMonthBoundary(t *testing.T) {
	d := NewDate(2025, time.July, 31)
	assert.Equal(t, "2025-08-01", d.AddDays(1).String())
	assert.Equal(t, "2025-07-30", d.AddDays(-1).String())
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2025, time.July, 1)
	b := NewDate(2025, time.July, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(a))
	assert.Equal(t, 1, a.DaysUntil(b))
}

func TestNullDate_Scan(t *testing.T) {
	var nd NullDate
	require.NoError(t, nd.Scan(time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)))
	assert.True(t, nd.Valid)
	assert.Equal(t, "2025-07-04", nd.Date.String())

	require.NoError(t, nd.Scan(nil))
	assert.False(t, nd.Valid)
}
