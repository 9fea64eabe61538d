package backend

// Credentials are sent with every request; the backend has no session.
type Credentials struct {
	Server   string `json:"servidor"`
	User     string `json:"usuario"`
	Password string `json:"senha"`
}

// QueryRequest is the body of /query and /preview
type QueryRequest struct {
	Credentials
	Database string `json:"banco"`
	Query    string `json:"query"`
}

// ConnectReply is the outcome of /conectar: Connected or Failure
type ConnectReply interface {
	isConnectReply()
}

// QueryReply is the outcome of /query and /preview: *ResultSet or Failure
type QueryReply interface {
	isQueryReply()
}

// Connected lists the databases visible to the supplied login
type Connected struct {
	Databases []string
}

// Failure is an application-reported error (success:false)
type Failure struct {
	Error string
}

// ResultSet is either a table (Columns non-nil) or a status Message.
// A nil cell is SQL NULL.
type ResultSet struct {
	Columns []string
	Rows    [][]any
	Message string
}

func (Connected) isConnectReply() {}
func (Failure) isConnectReply()   {}
func (Failure) isQueryReply()     {}
func (*ResultSet) isQueryReply()  {}

// IsTable reports whether the result carries columns
func (r *ResultSet) IsTable() bool {
	return r != nil && r.Columns != nil
}

// RowCount returns the number of rows in a tabular result
func (r *ResultSet) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// wire shapes; Success is a pointer so a missing field is detectable
type connectWire struct {
	Success *bool    `json:"success"`
	Bancos  []string `json:"bancos"`
	Error   string   `json:"error"`
}

type queryWire struct {
	Success *bool    `json:"success"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Message *string  `json:"message"`
	Error   string   `json:"error"`
}
