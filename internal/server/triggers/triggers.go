// Package triggers derives push notifications from document writes.
package triggers

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/server/models"
	"github.com/dmitrijs2005/housekeeper/internal/shared"
)

// Change describes one successful write. Before is nil for a created
// document, After is nil for a deleted one. Members lists the current
// members of the household the path belongs to.
type Change struct {
	Path    string
	Actor   string
	Before  models.Document
	After   models.Document
	Members []string
	At      time.Time
}

type target int

const (
	targetOther target = iota
	targetHousehold
	targetChore
	targetNote
)

// classify returns the household id of a household-scoped path and what the
// path points at.
func classify(path string) (householdID string, t target) {
	segs := strings.Split(path, "/")
	if len(segs) < 2 || segs[0] != "households" {
		return "", targetOther
	}
	switch {
	case len(segs) == 2:
		return segs[1], targetHousehold
	case len(segs) == 4 && segs[2] == "chores":
		return segs[1], targetChore
	case len(segs) == 4 && segs[2] == "notes":
		return segs[1], targetNote
	}
	return segs[1], targetOther
}

// HouseholdID returns the household a path belongs to, or "".
func HouseholdID(path string) string {
	id, _ := classify(path)
	return id
}

// Detect returns one notification per recipient. The actor is never notified
// about their own write.
func Detect(c Change) []shared.Notification {
	householdID, t := classify(c.Path)
	if c.After == nil {
		return nil
	}

	var out []shared.Notification
	add := func(recipient string, n shared.Notification) {
		if recipient == "" || recipient == c.Actor {
			return
		}
		n.Recipient = recipient
		n.HouseholdID = householdID
		n.CreatedAt = c.At
		out = append(out, n)
	}

	switch t {
	case targetChore:
		chore := choreNotification(c.Path, c.After)

		assignee := c.After.String("assignedTo")
		if assignee != "" && (c.Before == nil || c.Before.String("assignedTo") != assignee) {
			n := chore
			n.Type = shared.EventChoreAssigned
			n.Title = "New chore assigned"
			n.Message = fmt.Sprintf("You have been assigned %q", chore.ChoreTitle)
			add(assignee, n)
		}

		if c.Before != nil && !c.Before.Bool("isCompleted") && c.After.Bool("isCompleted") {
			n := chore
			n.Type = shared.EventChoreCompleted
			n.Title = "Chore completed"
			n.Message = fmt.Sprintf("%q has been completed", chore.ChoreTitle)
			add(c.After.String("createdBy"), n)
		}

	case targetNote:
		if c.Before != nil {
			break
		}
		author := c.After.String("createdBy")
		n := shared.Notification{
			Type:    shared.EventNewNote,
			Title:   "New note",
			Message: c.After.String("title"),
			NoteID:  lastSegment(c.Path),
		}
		for _, m := range c.Members {
			if m != author {
				add(m, n)
			}
		}

	case targetHousehold:
		if c.Before == nil {
			break
		}
		existing := c.Before.Strings("memberIds")
		name := c.After.String("name")
		for _, joined := range c.After.Strings("memberIds") {
			if slices.Contains(existing, joined) {
				continue
			}
			n := shared.Notification{
				Type:    shared.EventNewMember,
				Title:   "New member",
				Message: fmt.Sprintf("A new member joined %s", name),
			}
			for _, m := range existing {
				if m != joined {
					add(m, n)
				}
			}
		}
	}

	return out
}

func choreNotification(path string, d models.Document) shared.Notification {
	n := shared.Notification{
		ChoreID:    lastSegment(path),
		ChoreTitle: d.String("title"),
	}
	if v, ok := d["dueDate"].(float64); ok {
		n.DueDate = int64(v)
	}
	return n
}

func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
