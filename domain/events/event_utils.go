package events

import "reflect"

// ExtractMatchID pulls the MatchID field out of any event that carries one
func ExtractMatchID(event Event) string {
	val := reflect.ValueOf(event)

	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		matchID := val.FieldByName("MatchID")
		if matchID.IsValid() && matchID.Kind() == reflect.String {
			return matchID.String()
		}
	}

	return ""
}
