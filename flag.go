package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level")
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag     logLevelFlag
	logFileFlag   = flag.Bool("logfile", true, "Write logs to a file instead of the console")
	serverFlag    = flag.String("server", "", "Connect to this server URL and make it the default")
	showDirsFlag  = flag.Bool("show-dirs", false, "Show directories where user data is stored")
	uninstallFlag = flag.Bool("uninstall", false, "Uninstalls the app by deleting all user files")
	versionFlag   = flag.Bool("version", false, "Show the version and exit")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}
