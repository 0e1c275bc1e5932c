package interaction

import (
	"fmt"

	"github.com/dtg01100/video-browser/internal/notify"
	"github.com/rs/zerolog"
)

// Action names a user action. The values match the handler names used by the
// page scripts so logs stay greppable across front ends.
type Action string

const (
	ActionPlayVideo           Action = "playVideo"
	ActionAddToFavorites      Action = "addToFavorites"
	ActionRemoveFromFavorites Action = "removeFromFavorites"
	ActionAddToHistory        Action = "addToHistory"
	ActionSearch              Action = "search"
	ActionUpdateSetting       Action = "updateSetting"
	ActionUpdateSource        Action = "updateSource"
	ActionDeleteSource        Action = "deleteSource"
	ActionSwitchSource        Action = "switchSource"
	ActionAddSource           Action = "addSource"
)

// Notifier shows a transient message.
type Notifier interface {
	Notify(text string, severity notify.Severity)
}

// Dispatcher turns actions into notifications. It is the seam where a real
// backend would be called; today every action only announces itself.
type Dispatcher struct {
	notifier Notifier
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher reporting through n.
func NewDispatcher(n Notifier, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{notifier: n, logger: logger}
}

// Dispatch emits exactly one notification for the action.
func (d *Dispatcher) Dispatch(action Action, target, value string) {
	d.logger.Info().
		Str("action", string(action)).
		Str("target", target).
		Str("value", value).
		Msg("action dispatched")

	d.notifier.Notify(Message(action, target, value), notify.SeverityInfo)
}

// Message describes an action for the user.
func Message(action Action, target, value string) string {
	switch action {
	case ActionPlayVideo:
		return "Playing video: " + target
	case ActionAddToFavorites:
		return "Added to favorites: " + target
	case ActionRemoveFromFavorites:
		return "Removed from favorites: " + target
	case ActionAddToHistory:
		return "Added to history: " + target
	case ActionSearch:
		return "Search: " + target
	case ActionUpdateSetting:
		return fmt.Sprintf("Setting updated: %s = %s", target, value)
	case ActionUpdateSource:
		return "Editing source: " + target
	case ActionDeleteSource:
		return "Deleting source: " + target
	case ActionSwitchSource:
		return "Switching source: " + target
	case ActionAddSource:
		if target != "" {
			return "Adding source: " + target
		}
		return "Adding source"
	default:
		return fmt.Sprintf("%s: %s", action, target)
	}
}

// PlayVideo announces playback of video id.
func (d *Dispatcher) PlayVideo(id string) { d.Dispatch(ActionPlayVideo, id, "") }

// AddToFavorites marks video id as a favourite.
func (d *Dispatcher) AddToFavorites(id string) { d.Dispatch(ActionAddToFavorites, id, "") }

// RemoveFromFavorites drops video id from the favourites.
func (d *Dispatcher) RemoveFromFavorites(id string) {
	d.Dispatch(ActionRemoveFromFavorites, id, "")
}

// AddToHistory records video id in the watch history.
func (d *Dispatcher) AddToHistory(id string) { d.Dispatch(ActionAddToHistory, id, "") }

// Search announces a search for query.
func (d *Dispatcher) Search(query string) { d.Dispatch(ActionSearch, query, "") }

// UpdateSource asks to edit source id.
func (d *Dispatcher) UpdateSource(id string) { d.Dispatch(ActionUpdateSource, id, "") }

// DeleteSource asks to remove source id.
func (d *Dispatcher) DeleteSource(id string) { d.Dispatch(ActionDeleteSource, id, "") }

// SwitchSource makes source id the active one.
func (d *Dispatcher) SwitchSource(id string) { d.Dispatch(ActionSwitchSource, id, "") }

// UpdateSetting announces a new value for the setting key.
func (d *Dispatcher) UpdateSetting(key, value string) {
	d.Dispatch(ActionUpdateSetting, key, value)
}

// AddSource announces a new source. name may be empty.
func (d *Dispatcher) AddSource(name string) {
	d.Dispatch(ActionAddSource, name, "")
}
