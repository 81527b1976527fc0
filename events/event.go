package events

import "reflect"

// Event is the interface that all game events must implement.
type Event interface {
	EventName() string // Returns a unique name for the event type
}

// EventHandler is notified of every event a game emits.
type EventHandler func(event Event)

// GetGameID reads the GameID field of an event struct, or "" when absent.
func GetGameID(event Event) string {
	val := reflect.ValueOf(event)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return ""
	}
	field := val.FieldByName("GameID")
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}
