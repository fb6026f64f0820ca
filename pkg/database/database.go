// Package database provides the MongoDB connection used by the telemetry
// archive. The bot's configuration never lives here; the archive is an
// append-only history of what the engines did.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
)

// Database manages the MongoDB connection.
type Database struct {
	client          *mongo.Client
	db              *mongo.Database
	IsConnected     bool
	reconnectTicker *time.Ticker
	stopReconnect   chan struct{}
	mu              sync.RWMutex
	collections     map[string]*mongo.Collection
}

var (
	database *Database
	dbOnce   sync.Once
)

// Init initializes the global database instance.
func Init(mongoURL, dbName string) (*Database, error) {
	var err error
	dbOnce.Do(func() {
		database = NewDatabase()
		err = database.Connect(mongoURL, dbName)
	})
	return database, err
}

// Get returns the global database instance.
func Get() *Database {
	return database
}

// NewDatabase creates a new Database instance.
func NewDatabase() *Database {
	return &Database{
		IsConnected:   false,
		stopReconnect: make(chan struct{}),
		collections:   make(map[string]*mongo.Collection),
	}
}

// Connect establishes a connection to MongoDB.
func (d *Database) Connect(mongoURL, dbName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.IsConnected {
		return nil
	}

	logger.System("데이터베이스에 연결을 시도합니다...", "DB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Critical("데이터베이스 연결에 실패했습니다.", "DB")
		d.scheduleReconnect(mongoURL, dbName)
		return err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Critical("데이터베이스 연결 확인에 실패했습니다.", "DB")
		d.scheduleReconnect(mongoURL, dbName)
		return err
	}

	d.client = client
	d.db = client.Database(dbName)
	d.IsConnected = true

	logger.Success("데이터베이스에 연결되었습니다.", "DB")

	if d.reconnectTicker != nil {
		d.reconnectTicker.Stop()
		d.reconnectTicker = nil
	}
	return nil
}

// scheduleReconnect starts periodic reconnection attempts. Caller holds d.mu.
func (d *Database) scheduleReconnect(mongoURL, dbName string) {
	d.IsConnected = false

	if d.reconnectTicker == nil {
		d.reconnectTicker = time.NewTicker(15 * time.Second)
		go func() {
			for {
				select {
				case <-d.reconnectTicker.C:
					logger.Info("데이터베이스 재연결을 시도합니다...", "DB")
					if err := d.Connect(mongoURL, dbName); err == nil {
						return
					}
				case <-d.stopReconnect:
					return
				}
			}
		}()
	}
}

// Disconnect closes the database connection.
func (d *Database) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reconnectTicker != nil {
		d.reconnectTicker.Stop()
	}
	close(d.stopReconnect)

	if d.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.client.Disconnect(ctx); err != nil {
			return err
		}
		d.IsConnected = false
		logger.Warn("데이터베이스 연결이 종료되었습니다.", "DB")
	}
	return nil
}

// Ping measures the database response time.
func (d *Database) Ping() (time.Duration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.IsConnected || d.client == nil {
		return 0, fmt.Errorf("not connected to database")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// GetStatus returns the database connection status.
func (d *Database) GetStatus() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.client == nil {
		return "🔴 | 오프라인", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return "🔴 | 오프라인", false
	}
	return "🟢 | 온라인", true
}

// GetCollection returns a MongoDB collection.
func (d *Database) GetCollection(name string) *mongo.Collection {
	d.mu.RLock()
	if col, exists := d.collections[name]; exists {
		d.mu.RUnlock()
		return col
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	col := d.db.Collection(name)
	d.collections[name] = col
	return col
}

// Client returns the underlying MongoDB client.
func (d *Database) Client() *mongo.Client {
	return d.client
}

// DB returns the underlying MongoDB database.
func (d *Database) DB() *mongo.Database {
	return d.db
}
