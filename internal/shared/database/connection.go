package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"techquiz-server/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// maxDatabaseNameLength is MongoDB's limit on database names in bytes
const maxDatabaseNameLength = 63

// ConnectionConfig holds the settings used to open the process-wide MongoDB client
type ConnectionConfig struct {
	URI            string
	AppName        string
	ConnectTimeout time.Duration
}

// Connection owns the MongoDB client and hands out database handles.
// Callers open it once at startup and Close it on shutdown.
type Connection struct {
	client    *mongo.Client
	databases map[string]*mongo.Database
	mu        sync.RWMutex
	logger    logger.Logger
	config    ConnectionConfig
}

// Connect opens a client against cfg.URI and verifies it with a primary ping
func Connect(ctx context.Context, cfg ConnectionConfig, log logger.Logger) (*Connection, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb URI cannot be empty")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.AppName != "" {
		clientOpts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.WithComponent("database").Info("MongoDB connection established successfully")

	return NewConnection(client, cfg, log), nil
}

// NewConnection wraps an already connected client
func NewConnection(client *mongo.Client, cfg ConnectionConfig, log logger.Logger) *Connection {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Connection{
		client:    client,
		databases: make(map[string]*mongo.Database),
		logger:    log.WithComponent("database"),
		config:    cfg,
	}
}

// Client returns the underlying driver client
func (c *Connection) Client() *mongo.Client {
	return c.client
}

// Database returns the (cached) handle for the named database
func (c *Connection) Database(name string) (*mongo.Database, error) {
	if err := ValidateDatabaseName(name); err != nil {
		return nil, err
	}

	c.mu.RLock()
	if db, exists := c.databases[name]; exists {
		c.mu.RUnlock()
		return db, nil
	}
	c.mu.RUnlock()

	// Double-check locking pattern
	c.mu.Lock()
	defer c.mu.Unlock()

	if db, exists := c.databases[name]; exists {
		return db, nil
	}

	db := c.client.Database(name)
	c.databases[name] = db

	c.logger.WithFields(map[string]interface{}{
		"database_name": name,
	}).Debug("Opened database handle")

	return db, nil
}

// Ping checks that the primary is reachable
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close disconnects the client and forgets cached database handles
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	c.databases = make(map[string]*mongo.Database)
	c.mu.Unlock()

	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}

	c.logger.Info("MongoDB connection closed")
	return nil
}

// ValidateDatabaseName applies MongoDB's naming restrictions for databases
func ValidateDatabaseName(name string) error {
	if name == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if len(name) > maxDatabaseNameLength {
		return fmt.Errorf("database name too long (max %d bytes)", maxDatabaseNameLength)
	}

	if strings.ContainsAny(name, "/\\. \"$*<>:|?\x00") {
		return fmt.Errorf("database name %q contains invalid characters", name)
	}

	return nil
}
