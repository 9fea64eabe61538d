package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newBackend serves body with status for every request and records the
// last request path and JSON body.
func newBackend(t *testing.T, status int, body string) (*httptest.Server, *map[string]any, *string) {
	t.Helper()
	var got map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		got = map[string]any{}
		_ = json.Unmarshal(raw, &got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got, &path
}

func TestConnectSuccess(t *testing.T) {
	srv, body, path := newBackend(t, http.StatusOK, `{"success":true,"bancos":["db1","db2"]}`)
	c := NewClient(srv.URL+"/", 0)

	reply, err := c.Connect(context.Background(), Credentials{Server: `localhost\SQLEXPRESS`, User: "sa", Password: "x"})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	connected, ok := reply.(Connected)
	if !ok {
		t.Fatalf("reply = %#v, want Connected", reply)
	}
	if len(connected.Databases) != 2 || connected.Databases[0] != "db1" || connected.Databases[1] != "db2" {
		t.Errorf("Databases = %v", connected.Databases)
	}
	if *path != "/conectar" {
		t.Errorf("path = %q, want /conectar", *path)
	}
	want := map[string]any{"servidor": `localhost\SQLEXPRESS`, "usuario": "sa", "senha": "x"}
	for k, v := range want {
		if (*body)[k] != v {
			t.Errorf("body[%s] = %v, want %v", k, (*body)[k], v)
		}
	}
}

func TestConnectMissingListIsEmpty(t *testing.T) {
	srv, _, _ := newBackend(t, http.StatusOK, `{"success":true}`)
	reply, err := NewClient(srv.URL, 0).Connect(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	connected := reply.(Connected)
	if connected.Databases == nil || len(connected.Databases) != 0 {
		t.Errorf("Databases = %#v, want empty non-nil", connected.Databases)
	}
}

func TestConnectFailure(t *testing.T) {
	srv, _, _ := newBackend(t, http.StatusOK, `{"success":false,"error":"Login failed for user 'sa'."}`)
	reply, err := NewClient(srv.URL, 0).Connect(context.Background(), Credentials{})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	f, ok := reply.(Failure)
	if !ok || f.Error != "Login failed for user 'sa'." {
		t.Errorf("reply = %#v", reply)
	}
}

func TestQueryEndpoints(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client, QueryRequest) (QueryReply, error)
		path string
	}{
		{"execute", func(c *Client, r QueryRequest) (QueryReply, error) { return c.Query(context.Background(), r) }, "/query"},
		{"preview", func(c *Client, r QueryRequest) (QueryReply, error) { return c.Preview(context.Background(), r) }, "/preview"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, body, path := newBackend(t, http.StatusOK, `{"success":true,"columns":["col1","col2"],"rows":[[1,null],["a",2.5]]}`)
			req := QueryRequest{
				Credentials: Credentials{Server: "srv", User: "sa", Password: "x"},
				Database:    "db1",
				Query:       "SELECT 1",
			}
			reply, err := tt.call(NewClient(srv.URL, 0), req)
			if err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if *path != tt.path {
				t.Errorf("path = %q, want %q", *path, tt.path)
			}
			if (*body)["banco"] != "db1" || (*body)["query"] != "SELECT 1" || (*body)["servidor"] != "srv" {
				t.Errorf("body = %v", *body)
			}
			rs, ok := reply.(*ResultSet)
			if !ok {
				t.Fatalf("reply = %#v, want *ResultSet", reply)
			}
			if !rs.IsTable() || len(rs.Columns) != 2 || rs.RowCount() != 2 {
				t.Fatalf("result = %#v", rs)
			}
			if got := FormatRow(rs.Rows[0], "-"); got[0] != "1" || got[1] != "-" {
				t.Errorf("row 0 = %v, want [1 -]", got)
			}
			if got := FormatRow(rs.Rows[1], "-"); got[0] != "a" || got[1] != "2.5" {
				t.Errorf("row 1 = %v, want [a 2.5]", got)
			}
		})
	}
}

func TestQueryMessage(t *testing.T) {
	srv, _, _ := newBackend(t, http.StatusOK, `{"success":true,"message":"3 row(s) affected"}`)
	reply, err := NewClient(srv.URL, 0).Query(context.Background(), QueryRequest{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	rs := reply.(*ResultSet)
	if rs.IsTable() {
		t.Errorf("message result reported as table")
	}
	if rs.Message != "3 row(s) affected" {
		t.Errorf("Message = %q", rs.Message)
	}
}

func TestApplicationFailureOnErrorStatus(t *testing.T) {
	srv, _, _ := newBackend(t, http.StatusBadRequest, `{"success":false,"error":"syntax error"}`)
	reply, err := NewClient(srv.URL, 0).Preview(context.Background(), QueryRequest{})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if f, ok := reply.(Failure); !ok || f.Error != "syntax error" {
		t.Errorf("reply = %#v, want Failure{syntax error}", reply)
	}
}

func TestTransportFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"html error page", http.StatusBadGateway, "<html>bad gateway</html>"},
		{"not json", http.StatusOK, "ok"},
		{"missing success", http.StatusOK, `{"bancos":["db1"]}`},
		{"server error without text", http.StatusInternalServerError, `{"success":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newBackend(t, tt.status, tt.body)
			_, err := NewClient(srv.URL, 0).Connect(context.Background(), Credentials{})
			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("err = %v, want *TransportError", err)
			}
			if te.Op != OpConnect {
				t.Errorf("Op = %s, want connect", te.Op)
			}
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Query(context.Background(), QueryRequest{})
	var te *TransportError
	if !errors.As(err, &te) || te.Op != OpQuery {
		t.Fatalf("err = %v, want query TransportError", err)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "-"},
		{"text", "text"},
		{json.Number("42"), "42"},
		{float64(3), "3"},
		{true, "true"},
		{[]any{json.Number("1"), "a"}, `[1,"a"]`},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in, "-"); got != tt.want {
			t.Errorf("FormatCell(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
