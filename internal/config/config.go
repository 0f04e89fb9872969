package config

import "time"

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard sources.
var UserAgent = "Birthday-Left/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "birthday-left"
	KeyringService = "com.github.tartampluch.birthday-left"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeUsage   = 1 // Missing positional arguments or invalid flags
	ExitCodeParse   = 2 // Date, timezone or vCard could not be resolved
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagFormat    = "format"
	FlagVCard     = "vcard"
	FlagVCardUser = "vcard-user"

	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stderr"
	FlagDescFormat    = "Output format: text, json, yaml or ics"
	FlagDescVCard     = "Read the birthdate from a vCard file or http(s) URL"
	FlagDescVCardUser = "Basic auth user for a vCard URL (password is read from the OS keyring)"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"

	// Usage is printed to stderr on argument-count failures.
	Usage = `Usage:
  birthday-left [flags] <name> <birthdate> <timezone> [reftime]
  birthday-left [flags] --vcard <file|url> <name> <timezone> [reftime]

Arguments:
  name       display name of the person
  birthdate  birth date, optionally with a time of day (e.g. 1990-06-15)
  timezone   IANA timezone identifier (e.g. America/New_York)
  reftime    instant to evaluate as "now" (default: now)

Use -- before the arguments when a name starts with a dash:
  birthday-left -- -Ann 1990-06-15 Europe/Paris

Flags:
`

	MinArgs      = 3 // name, birthdate, timezone
	MinArgsVCard = 2 // name, timezone
)

// -----------------------------------------------------------------------------
// Output Formats
// -----------------------------------------------------------------------------

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatICS  = "ics"

	DefaultFormat = FormatText
	JSONIndent    = "  "
)

// -----------------------------------------------------------------------------
// Reference Time & Date Formats
// -----------------------------------------------------------------------------

const (
	// ReferenceNow is the literal reftime value meaning "current system time".
	ReferenceNow = "now"

	// DateFormatFullDash is used for birth dates in reports and logs.
	DateFormatFullDash = "2006-01-02"
	// DateFormatReport is used for instants in structured reports.
	DateFormatReport = time.RFC3339
)

// -----------------------------------------------------------------------------
// Person Input Fields (ParseError.Field)
// -----------------------------------------------------------------------------

const (
	FieldName      = "name"
	FieldBirthDate = "birthdate"
	FieldTimeZone  = "timezone"
	FieldReference = "reftime"
	FieldVCard     = "vcard"
)

// TimeZoneLocal is the name time.LoadLocation resolves to the host zone.
const TimeZoneLocal = "Local"

// -----------------------------------------------------------------------------
// Translation Keys (Message Catalog)
// -----------------------------------------------------------------------------

const (
	TKeyUnitYears    = "unit_years"
	TKeyUnitMonths   = "unit_months"
	TKeyUnitDays     = "unit_days"
	TKeyUnitHours    = "unit_hours"
	TKeyUnitMinutes  = "unit_minutes"
	TKeyAgeYearsOld  = "age_years_old"
	TKeySentenceNow  = "sentence_birthday"
	TKeySentenceNext = "sentence_upcoming"
	TKeyEvtSummary   = "event_summary"

	ListSeparator   = ", "
	DefaultLanguage = "en"
	LocalesDir      = "locales"
	LocalePrefix    = "active."
	LocaleExt       = ".json"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Birthday Left//Engine//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "birthdayleft"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropDescription = "DESCRIPTION"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	VCardNoYearPrefix = "--"

	// UID Generation
	FormatUIDInput = "%s|%s|%d"
	FormatUID      = "%s@%s"
)

// -----------------------------------------------------------------------------
// Network & Limits
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	AcceptVCard         = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MaxSkippedCards     = 100 // Give up on a stream that keeps failing to decode
)

// VCardMediaTypes are the Content-Types a remote address book may be served with.
var VCardMediaTypes = []string{
	"text/vcard",
	"text/x-vcard",
	"text/directory",
	"text/plain",
	"application/octet-stream",
}

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrNameEmpty       = "name must not be empty"
	ErrTimeZoneEmpty   = "timezone must not be empty"
	ErrTimeZoneLocal   = "timezone must be an IANA identifier, not Local"
	ErrBeforeBirth     = "reference time precedes birth date"
	ErrNoVCardMatch    = "no vCard with a birthday found for"
	ErrNoBirthYear     = "birth year unknown in vCard BDAY"
	ErrVCardOpen       = "failed to open vCard source"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrNotVCard        = "response is not a vCard document"
	ErrUnknownFormat   = "unknown output format"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrReportEncode    = "failed to encode report"
	ErrWriteOutput     = "failed to write output"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrKeyringLookup   = "password lookup in keyring failed"
	ErrTooFewArguments = "too few arguments"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgCalcDone       = "Birthday window computed"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgVCardMatch     = "vCard matched"
	MsgVCardOpen      = "Reading vCard source"
	MsgVCardFetch     = "Initiating vCard download"
	MsgVCardStatus    = "Server returned error status"
	MsgVCardType      = "Server returned a non-vCard document"
	MsgVCardLength    = "vCards downloading"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgKeyringMissing = "No keyring password stored for user"
	MsgWriteOutput    = "Writing output"
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
	LogKeyKey       = "key"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyZone      = "timezone"
	LogKeyReference = "reference"
	LogKeyAge       = "age"
	LogKeyBirthday  = "is_birthday"
	LogKeyBoundary  = "boundary"
	LogKeyFormat    = "format"
	LogKeyUser      = "user"
	LogKeySource    = "source"
	LogKeyLength    = "content_length"

	LogKeyContentType = "content_type"

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
	CompVCard   = "vcard"
	CompFetcher = "fetcher"
	CompRender  = "render"
	CompExport  = "export"
)
