package cmd

// LogConfig holds the logging flags shared by every command.
type LogConfig struct {
	Level     string `help:"Log level (trace, debug, info, warn, error)" enum:"trace,debug,info,warn,error" default:"info" env:"DOSMOUSE_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" env:"DOSMOUSE_LOG_FILE"`
	TraceFile string `help:"Write raw INT 33h register traces to this file" env:"DOSMOUSE_TRACE_FILE"`
}

// CLI is the root command structure parsed by Kong.
type CLI struct {
	Config string    `help:"Path to a configuration file (json, yaml or toml)" type:"path"`
	Log    LogConfig `embed:"" prefix:"log."`

	Run   Run           `cmd:"" default:"withargs" help:"Run a scripted mouse session against a headless machine"`
	Funcs Funcs         `cmd:"" help:"List the INT 33h functions the driver implements"`
	Cfg   ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
