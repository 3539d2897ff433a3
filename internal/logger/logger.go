package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the global zerolog logger. Development builds get a
// console writer; anything else logs JSON. When file is set, output is also
// written to a size-rotated log file.
func Init(env, level, file string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stderr
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	if file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
