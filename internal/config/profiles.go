package config

import (
	"fmt"
	"strings"
)

// Server is a saved connection target. Passwords are never stored.
type Server struct {
	Name   string `toml:"name"`
	Server string `toml:"server"` // e.g. localhost\SQLEXPRESS
	User   string `toml:"user"`
}

// Label returns a short display form: name (user@server)
func (s Server) Label() string {
	target := s.Server
	if s.User != "" {
		target = s.User + "@" + s.Server
	}
	if s.Name == "" || s.Name == s.Server {
		return target
	}
	return fmt.Sprintf("%s (%s)", s.Name, target)
}

// GetServer retrieves a saved server by name
func (c *Config) GetServer(name string) (*Server, error) {
	for i := range c.Servers {
		if c.Servers[i].Name == name {
			return &c.Servers[i], nil
		}
	}
	return nil, fmt.Errorf("server not found: %s", name)
}

// AddServer adds a new saved server to the config
func (c *Config) AddServer(s Server) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = s.Server
	}
	if s.Name == "" {
		return fmt.Errorf("server name is required")
	}
	for _, existing := range c.Servers {
		if existing.Name == s.Name {
			return fmt.Errorf("server already exists: %s", s.Name)
		}
	}
	c.Servers = append(c.Servers, s)
	return c.Save()
}

// RememberServer saves server/user unless an identical entry exists
func (c *Config) RememberServer(server, user string) error {
	if strings.TrimSpace(server) == "" {
		return nil
	}
	for _, existing := range c.Servers {
		if existing.Server == server && existing.User == user {
			return nil
		}
	}
	name := server
	if user != "" {
		name = user + "@" + server
	}
	return c.AddServer(Server{Name: name, Server: server, User: user})
}

// DeleteServer removes a saved server from the config
func (c *Config) DeleteServer(name string) error {
	for i := range c.Servers {
		if c.Servers[i].Name == name {
			c.Servers = append(c.Servers[:i], c.Servers[i+1:]...)
			return c.Save()
		}
	}
	return fmt.Errorf("server not found: %s", name)
}

// ListServers returns all saved server names
func (c *Config) ListServers() []string {
	names := make([]string, len(c.Servers))
	for i, s := range c.Servers {
		names[i] = s.Name
	}
	return names
}
