package slot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/thebtf/promptdeck/internal/config"
	dbgorm "github.com/thebtf/promptdeck/internal/db/gorm"
)

// Options selects and configures a slot backend.
type Options struct {
	Backend     string
	Dir         string // file backend directory
	DBPath      string // sqlite database file
	PostgresDSN string
	RedisAddr   string
	MaxConns    int
}

// Open creates the slot store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Slot, error) {
	log.Debug().Str("backend", opts.Backend).Msg("Opening slot store")

	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case "", BackendFile:
		return NewFile(opts.Dir)
	case BackendSQLite, BackendPostgres:
		store, err := dbgorm.NewStore(dbgorm.Config{
			Driver:   opts.Backend,
			Path:     opts.DBPath,
			DSN:      opts.PostgresDSN,
			MaxConns: opts.MaxConns,
			LogLevel: logger.Silent,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s slot store: %w", opts.Backend, err)
		}
		return dbgorm.NewSlotStore(store), nil
	case BackendRedis:
		r := NewRedis(opts.RedisAddr)
		conn, err := r.pool.GetContext(ctx)
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("open redis slot store: %w", err)
		}
		_ = conn.Close()
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// OptionsFromConfig maps promptdeck settings onto slot options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Backend:     cfg.Storage,
		Dir:         cfg.SlotDir,
		DBPath:      cfg.DBPath,
		PostgresDSN: cfg.PostgresDSN,
		RedisAddr:   cfg.RedisAddr,
		MaxConns:    cfg.MaxConns,
	}
}
