package cli

import (
	"context"
	"fmt"
)

// Notifications re-fetches the feed and prints it, newest first as the
// backend orders it. Read entries are prefixed with a blank marker, unread
// ones with an asterisk.
func (a *App) Notifications(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}

	if err := a.feed.Refresh(ctx); err != nil {
		printlnFn("Could not refresh notifications, showing the last known list.")
	}

	list := a.feed.Notifications()
	if len(list) == 0 {
		printlnFn("No notifications.")
		return nil
	}

	for _, n := range list {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s [%s] %s", marker, n.ID, n.Title))
		if n.Message != "" {
			printlnFn("      " + n.Message)
		}
	}
	printlnFn(fmt.Sprintf("%d unread", a.feed.UnreadCount()))
	return nil
}

// ReadNotification marks one notification as read.
func (a *App) ReadNotification(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.feed.MarkAsRead(ctx, id)
	printlnFn(fmt.Sprintf("%d unread", a.feed.UnreadCount()))
	return nil
}

// ReadAllNotifications marks the whole feed as read.
func (a *App) ReadAllNotifications(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.feed.MarkAllAsRead(ctx)
	a.toasts.Success("All caught up", "")
	printlnFn("All notifications marked as read.")
	return nil
}

// Toasts prints the currently visible toasts in insertion order.
func (a *App) Toasts(ctx context.Context) error {
	list := a.toasts.Toasts()
	if len(list) == 0 {
		printlnFn("No active toasts.")
		return nil
	}
	for _, t := range list {
		line := fmt.Sprintf("[%s] %s", t.Kind, t.Title)
		if t.Message != "" {
			line += ": " + t.Message
		}
		printlnFn(line)
	}
	return nil
}
