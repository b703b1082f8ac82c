package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"timeTrackerService/internal/config"
	"timeTrackerService/internal/tracker"
)

const maxDBAttempts = 10

// openPersistence builds the configured storage backend. A Redis backend
// that cannot be reached falls back to in-memory storage.
func openPersistence(cfg config.Config) (tracker.Persistence, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Printf("Using in-memory storage, records will not survive a restart")
		return tracker.NewMemoryPersistence(), nil

	case config.StorageFile:
		fp, err := tracker.NewFilePersistence(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		log.Printf("Using file storage at %s", cfg.DataFile)
		return fp, nil

	case config.StorageRedis:
		rp, err := tracker.NewRedisPersistence(cfg.RedisAddr)
		if err != nil {
			log.Printf("Warning: failed to initialize Redis persistence, falling back to in-memory: %v", err)
			return tracker.NewMemoryPersistence(), nil
		}
		return rp, nil

	case config.StoragePostgres:
		conn := connectToDB(cfg.DSN)
		if conn == nil {
			return nil, fmt.Errorf("can't connect to Postgres")
		}
		pg := tracker.NewPostgresPersistence(conn, cfg.PGTable)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	}

	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

func connectToDB(dsn string) *pgxpool.Pool {
	var lastErr error
	for attempt := 1; attempt <= maxDBAttempts; attempt++ {
		connection, err := openDB(dsn)
		if err == nil {
			log.Printf("Connected to Postgres!")
			return connection
		}
		lastErr = err
		log.Printf("Postgres is not yet ready (attempt %d/%d)", attempt, maxDBAttempts)

		log.Println("Backing off for two seconds...")
		time.Sleep(2 * time.Second)
	}

	log.Println(lastErr)
	return nil
}

func openDB(dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
