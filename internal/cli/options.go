package cli

// RunOptions carries everything the run command collects from flags.
type RunOptions struct {
	ConfigPath string
	Overrides  []string
	LogLevel   string
	LogJSON    bool

	// Algorithm falls back to the configured default when empty.
	Algorithm string
	// Size is ignored when Values is set; 0 means the configured default.
	Size int
	// Speed of 0 means the configured default.
	Speed  int
	Seed   uint64
	Values []int

	JSON  bool
	Quiet bool
	// Interactive enables pause/stop keys when stdin is a terminal.
	Interactive bool

	MetricsAddr string
	RedisAddr   string
	LockKey     string
}
