package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, splitList(" a@x.com, ,b@x.com "))
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("WEEKLY_REPORT_RECIPIENTS", "ops@example.com,lead@example.com")
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("WEEKLY_REPORT_HOUR", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, time.Hour, cfg.PasswordResetExpiry)
	assert.Equal(t, 17, cfg.WeeklyReportHour)
	assert.Equal(t, "sun", cfg.WeeklyReportDay)
	assert.Equal(t, []string{"ops@example.com", "lead@example.com"}, cfg.WeeklyReportRecipients)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
	assert.False(t, cfg.CloudinaryEnabled())
}
