package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeTrackerService/internal/tracker"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"WEB_PORT", "STORAGE", "WEEK_START", "ALLOW_ZERO_DURATION", "LOCALE", "LOCALE_FILE", "TIMEZONE", "DSN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.WebPort)
	assert.Equal(t, StorageFile, cfg.Storage)
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.False(t, cfg.AllowZeroDuration)
	assert.Equal(t, tracker.DefaultTimezone, cfg.Timezone)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE", "Redis")
	t.Setenv("WEEK_START", "sunday")
	t.Setenv("ALLOW_ZERO_DURATION", "true")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.True(t, cfg.AllowZeroDuration)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("WeekStart", func(t *testing.T) {
		t.Setenv("WEEK_START", "funday")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Storage", func(t *testing.T) {
		t.Setenv("STORAGE", "floppy")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("PostgresWithoutDSN", func(t *testing.T) {
		t.Setenv("STORAGE", "postgres")
		t.Setenv("DSN", "")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestTrackerConfig(t *testing.T) {
	cfg := Config{Timezone: "UTC", Locale: "zh", WeekStart: time.Sunday, AllowZeroDuration: true}
	tc, err := cfg.TrackerConfig()
	require.NoError(t, err)
	assert.Equal(t, "UTC", tc.Location.String())
	assert.Equal(t, tracker.ChineseLocale, tc.Locale)
	assert.Equal(t, time.Sunday, tc.WeekStart)
	assert.True(t, tc.AllowZero)

	cfg.Locale = "klingon"
	_, err = cfg.TrackerConfig()
	assert.Error(t, err)
}

func TestLoadLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locale.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
today: Aujourd'hui
yesterday: Hier
weekdays: [dim., lun., mar., mer., jeu., ven., sam.]
dateFormat: "%[3]s %[2]d/%[1]d"
`), 0644))

	locale, err := LoadLocale(path)
	require.NoError(t, err)
	assert.Equal(t, "Aujourd'hui", locale.Today)
	assert.Equal(t, "Hier", locale.Yesterday)
	assert.Equal(t, "lun.", locale.Weekdays[time.Monday])

	clock := tracker.NewFixedClock(time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC))
	tu := tracker.NewTimeUtils(clock, time.UTC, locale)
	assert.Equal(t, "ven. 8/3", tu.DisplayName(tracker.NewDate(2024, time.March, 8)))

	cfg := Config{Timezone: "UTC", Locale: "en", LocaleFile: path}
	tc, err := cfg.TrackerConfig()
	require.NoError(t, err)
	assert.Equal(t, locale, tc.Locale)
}

func TestLoadLocaleErrors(t *testing.T) {
	_, err := LoadLocale(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "short.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weekdays: [a, b]\n"), 0644))
	_, err = LoadLocale(path)
	assert.Error(t, err)
}
