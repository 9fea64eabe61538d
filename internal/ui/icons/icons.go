package icons

const (
	// Connection Icons (Nerd Font)
	IconServer   = "󰒋"
	IconDatabase = "󰆼"
	IconUser     = ""

	// Utility Icons
	IconLock    = "󰌾"
	IconSuccess = "✓"
	IconError   = "⚠"
	IconSelect  = "▸"
	IconPreview = "󰈈"
	IconExecute = "▶"
)

// ModeIcon returns the glyph for a query mode name ("preview", "execute")
func ModeIcon(mode string) string {
	if mode == "preview" {
		return IconPreview
	}
	return IconExecute
}

// StatusIcon returns the glyph for a history status
func StatusIcon(status string) string {
	if status == "error" {
		return IconError
	}
	return IconSuccess
}
