package core

// propdoc-section: Common Configuration
const (

	// propdoc-prop: name of the application | timeaxis
	PropAppName = "app.name"
)

// propdoc-section: Logging Configuration
const (

	// propdoc-prop: log level | info
	PropLoggingLevel = "logging.level"

	// propdoc-prop: path to the rolling log file, logs are written to stdout when it's empty
	PropLoggingRollingFile = "logging.rolling.file"

	// propdoc-prop: max size of each rolling log file in mb | 50
	PropLoggingRollingFileMaxSize = "logging.rolling.max-size"

	// propdoc-prop: max age of rolling log files in days, 0 means no limit | 0
	PropLoggingRollingFileMaxAge = "logging.rolling.max-age"

	// propdoc-prop: max number of rolling log files kept | 10
	PropLoggingRollingFileMaxBackups = "logging.rolling.max-backups"
)

// propdoc-section: Calendar Configuration
const (

	// propdoc-prop: IANA timezone used for wall-clock arithmetic, `Local` means the host's zone | UTC
	PropCalendarTimezone = "calendar.timezone"

	// propdoc-prop: BCP-47 locale tag, decides names, localized formats and the first day of week | en
	PropCalendarLocale = "calendar.locale"
)

// propdoc-section: Adapter Configuration
const (

	// propdoc-prop: prefix of the format table overrides, e.g., `adapter.formats.day: "MMM D"`
	PropAdapterFormats = "adapter.formats"
)

// propdoc-section: Axis Configuration
const (

	// propdoc-prop: max number of ticks generated for a single axis | 1000
	PropAxisMaxTicks = "axis.max-ticks"
)

// propdoc-section: Web Server Configuration
const (

	// propdoc-prop: http server host | 127.0.0.1
	PropServerHost = "server.host"

	// propdoc-prop: http server port | 8080
	PropServerPort = "server.port"

	// propdoc-prop: time wait (in second) before http server shutdown | 5
	PropServerGracefulShutdownTimeSec = "server.gracefulShutdownTimeSec"
)

// propdoc-section: Metrics Configuration
const (

	// propdoc-prop: enable metrics collection and the prometheus endpoint | true
	PropMetricsEnabled = "metrics.enabled"

	// propdoc-prop: route for the prometheus endpoint | /metrics
	PropPromRoute = "metrics.route"
)

func init() {
	SetDefProp(PropAppName, "timeaxis")
	SetDefProp(PropLoggingLevel, "info")
	SetDefProp(PropLoggingRollingFileMaxSize, 50)
	SetDefProp(PropLoggingRollingFileMaxAge, 0)
	SetDefProp(PropLoggingRollingFileMaxBackups, 10)
	SetDefProp(PropCalendarTimezone, "UTC")
	SetDefProp(PropCalendarLocale, "en")
	SetDefProp(PropAxisMaxTicks, 1000)
	SetDefProp(PropServerHost, "127.0.0.1")
	SetDefProp(PropServerPort, 8080)
	SetDefProp(PropServerGracefulShutdownTimeSec, 5)
	SetDefProp(PropMetricsEnabled, true)
	SetDefProp(PropPromRoute, "/metrics")
}
