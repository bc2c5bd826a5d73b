package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// Config carries the connection parameters. Populated from the environment
// by the config package; never read from globals here.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// DB is the process-owned database handle. It is created once at startup and
// passed by injection to everything that needs it; there is no package-level
// instance.
type DB struct {
	gorm *gorm.DB

	closeOnce sync.Once
	closeErr  error
}

// Connect opens the database. It pings first over a plain pgx connection so
// an unreachable server fails fast with a clear error, then opens the GORM
// handle used everywhere else.
func Connect(cfg Config) (*DB, error) {
	if err := ping(cfg.DSN()); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	gormLogger := logger.New(
		log.Default(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ Database connected successfully")
	return &DB{gorm: db}, nil
}

func ping(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Gorm exposes the underlying handle for services and handlers.
func (d *DB) Gorm() *gorm.DB {
	return d.gorm
}

// Migrate creates or updates the schema, including the composite unique
// index on votes that backs the one-vote-per-target invariant.
func (d *DB) Migrate() error {
	err := d.gorm.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.Vote{},
		&models.Interaction{},
		&models.Collection{},
	)
	if err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// Health checks the health of the database connection by pinging the database.
func (d *DB) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := make(map[string]string)

	sqlDB, err := d.gorm.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db error: %v", err)
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

// Close releases the connection pool. Idempotent.
func (d *DB) Close() error {
	d.closeOnce.Do(func() {
		sqlDB, err := d.gorm.DB()
		if err != nil {
			d.closeErr = err
			return
		}
		log.Println("Disconnected from database")
		d.closeErr = sqlDB.Close()
	})
	return d.closeErr
}
