// Type definitions for the UI layer
package ui

// Focus is the widget receiving typed keys
type Focus int

const (
	FocusServer Focus = iota
	FocusUser
	FocusPassword
	FocusDatabase
	FocusEditor
	FocusResults
)

// focusOrder is the tab cycle
var focusOrder = []Focus{FocusServer, FocusUser, FocusPassword, FocusDatabase, FocusEditor, FocusResults}

func (f Focus) String() string {
	switch f {
	case FocusServer:
		return "server"
	case FocusUser:
		return "user"
	case FocusPassword:
		return "password"
	case FocusDatabase:
		return "database"
	case FocusEditor:
		return "editor"
	case FocusResults:
		return "results"
	default:
		return "unknown"
	}
}
