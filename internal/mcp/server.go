// Package mcp provides an MCP (Model Context Protocol) server for
// neuron, exposing the conversation engine to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/mindloop/neuron/internal/engine"
	"github.com/mindloop/neuron/internal/graph"
	"github.com/mindloop/neuron/internal/loader"
	"github.com/mindloop/neuron/internal/memory"
)

// Server wraps the MCP SDK server around one conversation session.
type Server struct {
	server  *sdk.Server
	session *engine.Session
	store   memory.Store
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "neuron")
	Version string // Server version

	GraphPath   string // Graph .brain file
	LexiconPath string // Lexicon .brain file
	DBPath      string // SQLite episodic store; empty means in-memory
	Seed        int64  // Generator seed; 0 derives from the clock
}

// NewServer loads the brain and creates an MCP server with neuron tools.
func NewServer(ctx context.Context, cfg *Config) (*Server, error) {
	g, err := loader.LoadGraph(cfg.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	lex, err := loader.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	var store memory.Store
	if cfg.DBPath != "" {
		s, err := memory.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open episodic store: %w", err)
		}
		store = s
	} else {
		store = memory.NewInMemoryStore()
	}

	mem, err := memory.New(ctx, store, memory.Options{})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init memory: %w", err)
	}

	session := engine.New(g, lex, mem, engine.Options{Seed: cfg.Seed})

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:  mcpServer,
		session: session,
		store:   store,
	}
	s.registerTools()

	return s, nil
}

// newServerWith wires a server around an existing session; tests use
// this to skip file loading.
func newServerWith(session *engine.Session, store memory.Store) *Server {
	return &Server{
		server:  sdk.NewServer(&sdk.Implementation{Name: "neuron", Version: "test"}, nil),
		session: session,
		store:   store,
	}
}

// registerTools registers all neuron MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "neuron_converse",
		Description: "Send one utterance to the brain and get its generated reply plus the thought trace",
	}, s.handleConverse)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "neuron_stats",
		Description: "Get brain statistics: node/edge counts, current modulators, memory usage",
	}, s.handleStats)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "neuron_validate",
		Description: "Validate the loaded brain graph for structural problems (dangling references, missing goals)",
	}, s.handleValidate)
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// sessionGraph gives handlers typed access to the live graph.
func (s *Server) sessionGraph() *graph.Graph {
	return s.session.Graph()
}
