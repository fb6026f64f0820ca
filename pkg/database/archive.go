package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/telemetry"
)

const archiveCollection = "events"

// Archive persists telemetry events to MongoDB. It implements telemetry.Sink;
// writes happen off the caller's goroutine and failures are queued for a retry
// when the connection comes back.
type Archive struct {
	db *Database

	queueMu sync.Mutex
	queue   []telemetry.Event
}

// NewArchive creates an archive backed by db.
func NewArchive(db *Database) *Archive {
	return &Archive{db: db}
}

// Publish stores the event. Never blocks the caller.
func (a *Archive) Publish(evt telemetry.Event) {
	go a.insert(evt)
}

func (a *Archive) insert(evt telemetry.Event) {
	col := a.db.GetCollection(archiveCollection)
	if col == nil || !a.db.IsConnected {
		a.enqueue(evt)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := col.InsertOne(ctx, evt); err != nil {
		logger.Warn(fmt.Sprintf("이벤트 저장 실패, 재시도 대기열에 추가합니다: %v", err), "Archive")
		a.enqueue(evt)
	}
}

func (a *Archive) enqueue(evt telemetry.Event) {
	a.queueMu.Lock()
	a.queue = append(a.queue, evt)
	a.queueMu.Unlock()
}

// Flush retries every queued event once. Call after a reconnect.
func (a *Archive) Flush() {
	a.queueMu.Lock()
	if len(a.queue) == 0 {
		a.queueMu.Unlock()
		return
	}
	pending := a.queue
	a.queue = nil
	a.queueMu.Unlock()

	logger.System(fmt.Sprintf("보류 중인 이벤트 %d건을 저장합니다...", len(pending)), "Archive")
	for _, evt := range pending {
		a.insert(evt)
	}
}

// Pending reports how many events await a retry.
func (a *Archive) Pending() int {
	a.queueMu.Lock()
	defer a.queueMu.Unlock()
	return len(a.queue)
}
