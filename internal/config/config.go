package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client against the GitHub API.
var UserAgent = "Contribution-Caravan/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Contribution Caravan"
	AppID             = "com.github.lakisicaslt.caravan"
	KeyringService    = "com.github.lakisicaslt.caravan"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "caravan.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// FilePermShared represents -rw-r--r--, used for the rendered SVG files
	// which are meant to be committed and served publicly.
	FilePermShared fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// DirPermShared represents drwxr-xr-x, used for the output directory.
	DirPermShared fs.FileMode = 0755

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagUser        = "user"
	FlagTrail       = "trail"
	FlagOut         = "out"
	FlagLang        = "lang"
	FlagServe       = "serve"
	FlagPort        = "port"
	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescUser    = "GitHub login whose contribution calendar is rendered"
	FlagDescTrail   = "Trail strategy: 'snake' (full covering walk) or 'recent' (latest active days)"
	FlagDescOut     = "Directory where the rendered SVG files are written"
	FlagDescLang    = "Language for text labels embedded in the SVG (en, fr)"
	FlagDescServe   = "Serve the rendered SVGs over HTTP instead of writing files"
	FlagDescPort    = "Port for the HTTP server in serve mode"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultUser   = "lakisicaslt"
	DefaultOutDir = "dist"
	DefaultPort   = "18081"

	// Label languages (ISO 639-1).
	LangEnglish     = "en"
	LangFrench      = "fr"
	DefaultLanguage = LangEnglish

	// Trail strategies. The repository history carried both variants; the
	// strategy is a runtime choice rather than a hardcoded one.
	TrailModeSnake  = "snake"
	TrailModeRecent = "recent"
	DefaultTrail    = TrailModeSnake

	// MaxRecentTrail caps the 'recent' trail to the latest N active days.
	MaxRecentTrail = 90

	// MaxCampfires bounds the number of campfire decorations.
	MaxCampfires = 4

	// RefreshInterval is how often serve mode re-fetches the calendar.
	RefreshInterval = 1 * time.Hour
)

// SupportedLanguages defines the list of available label languages.
var SupportedLanguages = []string{LangEnglish, LangFrench}

// -----------------------------------------------------------------------------
// Credential Resolution
// -----------------------------------------------------------------------------

const (
	// EnvToken is checked first; the OS keyring is the fallback.
	EnvToken = "GITHUB_TOKEN"
)

// -----------------------------------------------------------------------------
// GitHub API
// -----------------------------------------------------------------------------

const (
	GraphQLEndpoint = "https://api.github.com/graphql"

	// GraphQLQuery retrieves one year of daily contribution counts grouped
	// into week columns. The weekday index is requested explicitly so that
	// sparse boundary weeks can be placed into the correct row.
	GraphQLQuery = `query($login:String!){user(login:$login){contributionsCollection{contributionCalendar{totalContributions weeks{contributionDays{date contributionCount weekday}}}}}}`

	AuthSchemeBearer = "bearer"
)

// -----------------------------------------------------------------------------
// Output Files
// -----------------------------------------------------------------------------

const (
	OutFileDark  = "caravan-dark.svg"
	OutFileLight = "caravan-light.svg"
)

// -----------------------------------------------------------------------------
// SVG Geometry
// -----------------------------------------------------------------------------

const (
	// Grid cell geometry. CellPitch is the center-to-center distance and the
	// step length of the covering walk.
	CellSize  = 12
	CellGap   = 3
	CellPitch = CellSize + CellGap
	CellRound = 2

	// GridRows is fixed by the weekday layout of the contribution calendar.
	GridRows = 7

	// Canvas padding around the grid. PaddingTop leaves room for the sky,
	// FooterHeight for the ground strip and the legend.
	PaddingX     = 24
	PaddingTop   = 36
	FooterHeight = 44
)

// -----------------------------------------------------------------------------
// Animation Timing
// -----------------------------------------------------------------------------

const (
	// TrailSecondsPerPoint scales the loop duration with the trail length so
	// the caravan moves at a roughly constant speed regardless of grid width.
	TrailSecondsPerPoint = 0.12

	// Duration clamp. A trail animation shorter than the minimum looks
	// frantic; longer than the maximum looks stalled.
	MinTrailSeconds = 10.0
	MaxTrailSeconds = 45.0
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 8 * 1024 * 1024 // 8MB; a year of daily counts is tiny
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteDark           = "/" + OutFileDark
	RouteLight          = "/" + OutFileLight
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAuthorization   = "Authorization"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeSVG             = "image/svg+xml; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrTokenMissing   = "credential error: no GitHub token in " + EnvToken + " or the OS keyring"
	ErrUserEmpty      = "configuration error: GitHub user is empty"
	ErrFetcherMissing = "internal error: contribution fetcher is not initialized"
	ErrTrailMode      = "configuration error: unsupported trail mode"
	ErrLangUnknown    = "configuration error: unsupported language"
	ErrFetchStatus    = "GitHub API returned unexpected status"
	ErrFetchGraphQL   = "GitHub API reported errors"
	ErrFetchDecode    = "failed to decode GitHub API response"
	ErrUserNotFound   = "GitHub user not found"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrWriteFile      = "failed to write SVG file"
	ErrCreateOutDir   = "could not create output directory"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Caravan is rendering, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	// FallbackCellLabel is used when no localizer is injected into the engine.
	FallbackCellLabel = "%d contributions on %s"

	// FallbackTitle is used for the SVG title when no localizer is injected.
	FallbackTitle = "Contribution caravan for %s"

	FallbackLegendLess = "Less"
	FallbackLegendMore = "More"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgRunStarted    = "Generation started"
	MsgRunSuccess    = "Generation successful"
	MsgFetchStart    = "Fetching contribution calendar"
	MsgFetchDone     = "Contribution calendar received"
	MsgSkippedDay    = "Skipping malformed day record"
	MsgFilesWritten  = "SVG files written"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Served SVG cache updated"
	MsgRefreshStart  = "Periodic refresh started"
	MsgRefreshFail   = "Periodic refresh failed, keeping previous render"
	MsgWorkerStop    = "Refresh worker stopping due to context cancellation"
	MsgTokenFromEnv  = "Token resolved from environment"
	MsgTokenKeyring  = "Token resolved from OS keyring"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyTheme     = "theme"
	LogKeyWeeks     = "weeks"
	LogKeyDays      = "total_days"
	LogKeyActive    = "active_days"
	LogKeyMax       = "max_count"
	LogKeyTrailPts  = "trail_points"
	LogKeyFires     = "campfires"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompEngine  = "engine"
	CompFetcher = "fetcher"
	CompRender  = "render"
	CompServer  = "server"
	CompWorker  = "worker"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyTitle      = "svg_title"
	TKeyCellLabel  = "cell_label"
	TKeyLegendLess = "legend_less"
	TKeyLegendMore = "legend_more"
)
