package console

import "strings"

// Messages holds the user-facing texts the console produces itself.
// Backend error texts are shown verbatim and never pass through here.
type Messages struct {
	ConnectFailed  string
	QueryFailed    string
	PreviewFailed  string
	SelectDatabase string
}

// Portuguese is the default message set
var Portuguese = Messages{
	ConnectFailed:  "Erro ao conectar com o servidor",
	QueryFailed:    "Erro ao executar a query",
	PreviewFailed:  "Erro ao executar pré-visualização",
	SelectDatabase: "Selecione um banco de dados",
}

// English message set
var English = Messages{
	ConnectFailed:  "Could not reach the server",
	QueryFailed:    "Could not execute the query",
	PreviewFailed:  "Could not run the preview",
	SelectDatabase: "Select a database",
}

// MessagesFor picks a message set by locale, defaulting to Portuguese
func MessagesFor(locale string) Messages {
	l := strings.ToLower(strings.TrimSpace(locale))
	if l == "en" || strings.HasPrefix(l, "en-") || strings.HasPrefix(l, "en_") {
		return English
	}
	return Portuguese
}

// transportFailure returns the generic text for a failed call
func (m Messages) transportFailure(mode Mode) string {
	if mode == ModePreview {
		return m.PreviewFailed
	}
	return m.QueryFailed
}
