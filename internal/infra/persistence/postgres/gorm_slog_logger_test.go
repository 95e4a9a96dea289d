package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"dropradar/config"
	deliverycontext "dropradar/internal/delivery/context"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func fixedSQL() (string, int64) {
	return "INSERT INTO drops VALUES (...)", 3
}

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestStoreLogger_UsesContextLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	storeLog := newGormSlogLogger(newBufferLogger(&base), &config.Config{})

	tickLogger := newBufferLogger(&scoped).With(
		slog.String("request_id", "req-7"),
		slog.String("tick_id", "tick-7"),
	)
	ctx := deliverycontext.WithLogger(context.Background(), tickLogger)

	storeLog.Trace(ctx, time.Now(), fixedSQL, errors.New("duplicate key"))

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), `msg="Store query failed"`)
	assert.Contains(t, scoped.String(), "request_id=req-7")
	assert.Contains(t, scoped.String(), "tick_id=tick-7")
	assert.Contains(t, scoped.String(), `error="duplicate key"`)
}

func TestStoreLogger_FallsBackToBaseLogger(t *testing.T) {
	var base bytes.Buffer
	storeLog := newGormSlogLogger(newBufferLogger(&base), &config.Config{})

	storeLog.Trace(context.Background(), time.Now(), fixedSQL, errors.New("connection reset"))

	assert.Contains(t, base.String(), `msg="Store query failed"`)
}

func TestStoreLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		begin    time.Time
		err      error
		expected string
	}{
		{name: "record not found is ignored", begin: time.Now(), err: gorm.ErrRecordNotFound, expected: ""},
		{name: "fast query is silent outside debug", begin: time.Now(), expected: ""},
		{name: "fast query is traced in debug", debug: true, begin: time.Now(), expected: `msg="Store query"`},
		{name: "slow query warns", begin: time.Now().Add(-time.Second), expected: `msg="Store query slow"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug
			storeLog := newGormSlogLogger(newBufferLogger(&buf), cfg)

			storeLog.Trace(context.Background(), tt.begin, fixedSQL, tt.err)

			if tt.expected == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestStoreLogger_SilentMode(t *testing.T) {
	var buf bytes.Buffer
	storeLog := newGormSlogLogger(newBufferLogger(&buf), &config.Config{}).LogMode(gormlogger.Silent)

	storeLog.Trace(context.Background(), time.Now().Add(-time.Second), fixedSQL, errors.New("boom"))
	storeLog.Error(context.Background(), "failed: %s", "boom")

	assert.Empty(t, buf.String())
}
