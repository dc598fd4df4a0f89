package services

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Activity actions recorded in the audit log.
const (
	ActionPost          = "post"
	ActionComment       = "comment"
	ActionLike          = "like"
	ActionDislike       = "dislike"
	ActionDeletePost    = "delete_post"
	ActionDeleteComment = "delete_comment"
)

// ActivityLog is an append-only audit sink for every mutating action.
// Appends are fire-and-forget: a failed write never fails the request.
type ActivityLog struct {
	logger *log.Logger
}

var (
	activityLog  *ActivityLog
	activityOnce sync.Once
)

// GetActivityLog returns the singleton writing to ACTIVITY_LOG_FILE
// (default safety_logs.txt). If the file cannot be opened the sink
// falls back to stderr.
func GetActivityLog() *ActivityLog {
	activityOnce.Do(func() {
		path := os.Getenv("ACTIVITY_LOG_FILE")
		if path == "" {
			path = "safety_logs.txt"
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("Failed to open activity log %s, falling back to stderr: %v", path, err)
			activityLog = &ActivityLog{logger: log.New(os.Stderr, "", log.LstdFlags)}
		} else {
			activityLog = &ActivityLog{logger: log.New(file, "", log.LstdFlags)}
		}
	})
	return activityLog
}

func NewActivityLog(logger *log.Logger) *ActivityLog {
	return &ActivityLog{logger: logger}
}

// Record appends one audit line for an action performed by anonName.
func (a *ActivityLog) Record(anonName, device, ip, action, content string) {
	a.logger.Println(fmt.Sprintf("[%s]: Device: %s; IP Address: %s; Action: %s; Content: %s",
		anonName, device, ip, action, content))
}
