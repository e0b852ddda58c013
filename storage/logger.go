package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	"github.com/safedep/dry/log"
)

// LogLevel controls how much SQL the store logs.
type LogLevel int

const (
	LogSilent LogLevel = iota
	LogError
	LogWarn
	LogInfo
)

// SQL log level names accepted by ParseSQLLogLevel.
const (
	SQLLogSilent = "silent"
	SQLLogError  = "error"
	SQLLogWarn   = "warn"
	SQLLogInfo   = "info"
)

var sqlLogLevels = map[string]LogLevel{
	SQLLogSilent: LogSilent,
	SQLLogError:  LogError,
	SQLLogWarn:   LogWarn,
	SQLLogInfo:   LogInfo,
}

// slowQueryThreshold is the duration above which statements are logged at
// warn level.
const slowQueryThreshold = 500 * time.Millisecond

// ParseSQLLogLevel maps a configured level name to a LogLevel. It is the
// single authority on which names are valid.
func ParseSQLLogLevel(name string) (LogLevel, error) {
	level, ok := sqlLogLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LogSilent, fmt.Errorf("invalid sql log level: %q (must be silent, error, warn, or info)", name)
	}
	return level, nil
}

// withLogging wraps drv so statements are reported through the application
// log. A silent level returns drv unchanged.
func withLogging(drv dialect.Driver, level LogLevel) dialect.Driver {
	if level <= LogSilent {
		return drv
	}
	return &logDriver{Driver: drv, level: level}
}

type logDriver struct {
	dialect.Driver
	level LogLevel
}

func (d *logDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	logStatement(d.level, query, args, time.Since(start), err)
	return err
}

func (d *logDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	logStatement(d.level, query, args, time.Since(start), err)
	return err
}

func (d *logDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		if d.level >= LogError {
			log.Errorf("sql: begin transaction: %v", err)
		}
		return nil, err
	}
	if d.level >= LogInfo {
		log.Debugf("sql: begin transaction")
	}
	return &logTx{Tx: tx, level: d.level}, nil
}

type logTx struct {
	dialect.Tx
	level LogLevel
}

func (t *logTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := t.Tx.Exec(ctx, query, args, v)
	logStatement(t.level, query, args, time.Since(start), err)
	return err
}

func (t *logTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := t.Tx.Query(ctx, query, args, v)
	logStatement(t.level, query, args, time.Since(start), err)
	return err
}

func (t *logTx) Commit() error {
	err := t.Tx.Commit()
	if err != nil && t.level >= LogError {
		log.Errorf("sql: commit: %v", err)
	} else if t.level >= LogInfo {
		log.Debugf("sql: commit")
	}
	return err
}

func (t *logTx) Rollback() error {
	err := t.Tx.Rollback()
	if t.level >= LogInfo {
		log.Debugf("sql: rollback")
	}
	return err
}

func logStatement(level LogLevel, query string, args any, elapsed time.Duration, err error) {
	switch {
	case err != nil && level >= LogError:
		log.Errorf("sql: %s %v [%s]: %v", query, args, elapsed, err)
	case elapsed > slowQueryThreshold && level >= LogWarn:
		log.Warnf("sql: slow query (>%s) %s %v [%s]", slowQueryThreshold, query, args, elapsed)
	case level >= LogInfo:
		log.Debugf("sql: %s %v [%s]", query, args, elapsed)
	}
}
