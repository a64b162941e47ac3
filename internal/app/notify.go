package app

import (
	"context"
	"sync"
)

// Notifier surfaces the outcome of a form action to the user.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Level distinguishes success from error notifications.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifications collects toasts in memory until the caller renders them.
type Notifications struct {
	mu    sync.Mutex
	items []Notification
}

func (n *Notifications) Success(_ context.Context, msg string) { n.add(LevelSuccess, msg) }

func (n *Notifications) Error(_ context.Context, msg string) { n.add(LevelError, msg) }

func (n *Notifications) add(level Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{Level: level, Message: msg})
}

// Drain returns the collected toasts and clears the collector.
func (n *Notifications) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}

// Last returns the most recent toast of the given level.
func (n *Notifications) Last(level Level) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.items) - 1; i >= 0; i-- {
		if n.items[i].Level == level {
			return n.items[i].Message, true
		}
	}
	return "", false
}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string) {}
func (nopNotifier) Error(context.Context, string)   {}
