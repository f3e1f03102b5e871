package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lakisicaslt/lakisicaslt/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"KeyringService", config.KeyringService},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"GraphQLEndpoint", config.GraphQLEndpoint},
		{"GraphQLQuery", config.GraphQLQuery},
		{"EnvToken", config.EnvToken},
		{"OutFileDark", config.OutFileDark},
		{"OutFileLight", config.OutFileLight},
		{"DefaultUser", config.DefaultUser},
		{"DefaultTrail", config.DefaultTrail},
		{"DefaultLanguage", config.DefaultLanguage},
		{"DefaultPort", config.DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage,
		"the default language must be supported")
	assert.Contains(t, []string{config.TrailModeSnake, config.TrailModeRecent}, config.DefaultTrail)
	assert.Greater(t, config.MaxRecentTrail, 1, "a trail needs at least two points")
	assert.Greater(t, config.MaxCampfires, 0)
	assert.Greater(t, config.RefreshInterval, time.Minute,
		"refreshing faster than this would hammer the API for no visual gain")
}

// TestGeometry_Consistency guards the invariants the renderer and the trail
// builder both rely on.
func TestGeometry_Consistency(t *testing.T) {
	assert.Equal(t, config.CellSize+config.CellGap, config.CellPitch,
		"the pitch is the cell plus its gap; the covering walk steps by it")
	assert.Equal(t, 7, config.GridRows, "one row per weekday")
	assert.Greater(t, config.PaddingTop, 0)
	assert.Greater(t, config.FooterHeight, config.CellSize,
		"the footer must fit the legend swatches")
}

// TestAnimationClamp verifies the duration window is well-formed.
func TestAnimationClamp(t *testing.T) {
	assert.Greater(t, config.TrailSecondsPerPoint, 0.0)
	assert.Greater(t, config.MinTrailSeconds, 0.0)
	assert.Greater(t, config.MaxTrailSeconds, config.MinTrailSeconds)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Contribution-Caravan/"),
		"UserAgent must start with the app slug")
}

// TestRoutes_MatchOutputFiles keeps serve mode and file mode pointing at the
// same artifact names.
func TestRoutes_MatchOutputFiles(t *testing.T) {
	assert.Equal(t, "/"+config.OutFileDark, config.RouteDark)
	assert.Equal(t, "/"+config.OutFileLight, config.RouteLight)
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	// A year of daily counts is a few kilobytes of JSON; the cap only needs
	// to stop runaway streams.
	assert.Greater(t, int64(config.MaxHTTPResponseSize), int64(1024*1024))
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1024*1024*1024))
}

// TestGraphQLQuery_Shape pins the fields the response mapper depends on.
func TestGraphQLQuery_Shape(t *testing.T) {
	for _, field := range []string{"$login", "contributionCalendar", "totalContributions", "date", "contributionCount", "weekday"} {
		assert.Contains(t, config.GraphQLQuery, field)
	}
}
