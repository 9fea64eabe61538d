package ui

import "github.com/nhath/fastquery/internal/console"

// uiLabels are the UI strings around the form; outcome texts live in console.Messages
type uiLabels struct {
	Title       string
	Server      string
	User        string
	Password    string
	Database    string
	NoDatabases string
	Query       string
	Connecting  string
	Running     string
	Rows        string
	Saved       string
}

var portugueseLabels = uiLabels{
	Title:       "Fast Query",
	Server:      "Servidor",
	User:        "Usuário",
	Password:    "Senha",
	Database:    "Banco",
	NoDatabases: "conecte para listar os bancos",
	Query:       "Query",
	Connecting:  "Conectando...",
	Running:     "Executando...",
	Rows:        "linhas",
	Saved:       "Servidor salvo",
}

var englishLabels = uiLabels{
	Title:       "Fast Query",
	Server:      "Server",
	User:        "User",
	Password:    "Password",
	Database:    "Database",
	NoDatabases: "connect to list databases",
	Query:       "Query",
	Connecting:  "Connecting...",
	Running:     "Running...",
	Rows:        "rows",
	Saved:       "Server saved",
}

func (m Model) labels() uiLabels {
	if m.state.Messages() == console.English {
		return englishLabels
	}
	return portugueseLabels
}
