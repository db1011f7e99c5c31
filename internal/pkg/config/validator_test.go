package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	for _, s := range []string{"0 * * * *", "30 5 * * *", "*/15 9-17 * * 1-5", "@daily"} {
		assert.NoError(t, ValidateCronSchedule(s), s)
	}
	for _, s := range []string{"", "* * *", "61 * * * *", "0 0 0 * * *"} {
		assert.Error(t, ValidateCronSchedule(s), s)
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, tz := range []string{"UTC", "Asia/Tokyo", "America/New_York"} {
		assert.NoError(t, ValidateTimezone(tz), tz)
	}
	for _, tz := range []string{"", "Mars/Olympus"} {
		assert.Error(t, ValidateTimezone(tz), tz)
	}
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(time.Minute, time.Minute, time.Hour))
	assert.NoError(t, ValidateDuration(time.Hour, time.Minute, time.Hour))
	assert.ErrorContains(t, ValidateDuration(time.Second, time.Minute, time.Hour), "below minimum")
	assert.ErrorContains(t, ValidateDuration(2*time.Hour, time.Minute, time.Hour), "exceeds maximum")
	assert.ErrorContains(t, ValidateDuration(time.Minute, time.Hour, time.Minute), "invalid range")
}

func TestValidateIntRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(1024, 1024, 65535))
	assert.ErrorContains(t, ValidateIntRange(80, 1024, 65535), "below minimum")
	assert.ErrorContains(t, ValidateIntRange(70000, 1024, 65535), "exceeds maximum")
	assert.ErrorContains(t, ValidateIntRange(1, 10, 5), "invalid range")
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
