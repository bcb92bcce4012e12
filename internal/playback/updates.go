package playback

import (
	"fmt"

	"github.com/desertthunder/crate/internal/models"
)

// ProgressUpdate represents a progress event during a queue run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Queue phase
	Step    int    // Current item number within the queue
	Total   int    // Total items in the queue
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Queue phase enumeration
type Phase int

const (
	QueueStart Phase = iota
	PlayItem
	ItemDone
	ItemFailed
	QueueDone
)

func (p Phase) String() string {
	switch p {
	case QueueStart:
		return "queue_start"
	case PlayItem:
		return "play_item"
	case ItemDone:
		return "item_done"
	case ItemFailed:
		return "item_failed"
	case QueueDone:
		return "queue_done"
	default:
		return ""
	}
}

func queueStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueStart,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Playing %d song(s)...", total),
	}
}

func playItemUpdate(step, total int, item models.PlayableItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PlayItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Now playing: %s", step, total, item.Title),
		Data:    item,
	}
}

func itemDoneUpdate(step, total int, item models.PlayableItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ItemDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, item.Title),
		Data:    item,
	}
}

func itemFailedUpdate(step, total int, item models.PlayableItem, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ItemFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, item.Title, err),
		Data:    item,
	}
}

func queueDoneUpdate(step, total int, result *RunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   QueueDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Queue finished: %d played, %d failed", result.Played, result.Failed),
		Data:    result,
	}
}
