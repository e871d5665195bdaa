// Copyright © 2025 The Lantern authors

// Package lsp exposes the diagnostics hub to editors over the Language
// Server Protocol. Document notifications feed the buffer store,
// registered providers produce messages dispatched into the diagnostics
// store, and store subscriptions publish the aggregated per-file unions
// back to the client. Definition and signature-help requests route
// through the provider registry by the file's grammar.
package lsp

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/lanternhq/lantern/buffer"
	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/fixer"
	"github.com/lanternhq/lantern/marker"
	"github.com/lanternhq/lantern/provider"
)

const serverName = "lantern-lsp"

const defaultDebounceDelay = 300 * time.Millisecond

// Server is the lantern language server.
type Server struct {
	handler  protocol.Handler
	glspSrv  *glspserver.Server
	rootURI  string
	rootPath string

	docs     *buffer.Store
	store    *diagnostics.Store
	updater  *diagnostics.Updater
	tracker  *marker.Tracker
	fixes    *fixer.Applicator
	registry *provider.Registry

	// grammars maps file extensions (with dot) to grammar names used
	// for provider matching.
	grammars map[string]string

	debounceDelay time.Duration

	// Debouncers for didChange notifications, one per open document.
	debounceMu sync.Mutex
	debounce   map[string]*provider.Debouncer

	// Per-document publish subscriptions on the updater.
	subMu sync.Mutex
	subs  map[string]*diagnostics.Subscription

	// Store handles keyed by diagnoser, allocated on first dispatch.
	handleMu sync.Mutex
	handles  map[provider.Diagnoser]*diagnostics.Provider

	// Notification function captured from the latest request context,
	// needed to publish diagnostics after a debounce fires.
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server)

// WithRegistry injects the provider registry the server consults.
func WithRegistry(reg *provider.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithStore injects an externally owned diagnostics store, letting an
// embedder share one store between the server and other observers.
func WithStore(store *diagnostics.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithGrammar maps a file extension (including the dot) to a grammar
// name for provider matching.
func WithGrammar(ext, grammar string) Option {
	return func(s *Server) { s.grammars[ext] = grammar }
}

// WithDebounceDelay overrides the didChange quiescence window.
func WithDebounceDelay(d time.Duration) Option {
	return func(s *Server) { s.debounceDelay = d }
}

// New creates a lantern LSP server.
func New(opts ...Option) *Server {
	s := &Server{
		docs:          buffer.NewStore(),
		grammars:      make(map[string]string),
		debounceDelay: defaultDebounceDelay,
		debounce:      make(map[string]*provider.Debouncer),
		subs:          make(map[string]*diagnostics.Subscription),
		handles:       make(map[provider.Diagnoser]*diagnostics.Provider),
		exitFn:        os.Exit,
	}
	for _, o := range opts {
		o(s)
	}
	if s.store == nil {
		s.store = diagnostics.NewStore()
	}
	if s.registry == nil {
		s.registry = provider.NewRegistry()
	}
	s.updater = diagnostics.NewUpdater(s.store)
	s.tracker = marker.NewTracker()
	s.docs.OnEdit(func(e buffer.Edit) {
		s.tracker.ApplyEdit(e.Path, e.OldRange, e.NewText)
	})
	s.docs.OnClose(s.tracker.DropFile)
	s.fixes = fixer.New(s.docs, s.store, fixer.WithTracker(s.tracker))

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentDefinition:    s.textDocumentDefinition,
		TextDocumentSignatureHelp: s.textDocumentSignatureHelp,
		TextDocumentCodeAction:    s.textDocumentCodeAction,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// Store returns the server's diagnostics store.
func (s *Server) Store() *diagnostics.Store {
	return s.store
}

// Fixes returns the applicator that edits open documents and clears the
// corresponding store messages.
func (s *Server) Fixes() *fixer.Applicator {
	return s.fixes
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)

	if params.RootURI != nil {
		s.rootURI = *params.RootURI
		s.rootPath = uriToPath(s.rootURI)
	} else if params.RootPath != nil {
		s.rootPath = *params.RootPath
		s.rootURI = pathToURI(s.rootPath)
	}

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}

	capabilities.SignatureHelpProvider = &protocol.SignatureHelpOptions{
		TriggerCharacters:   []string{"(", ","},
		RetriggerCharacters: []string{","},
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.debounceMu.Lock()
	for _, d := range s.debounce {
		d.Stop()
	}
	s.debounce = make(map[string]*provider.Debouncer)
	s.debounceMu.Unlock()

	s.subMu.Lock()
	for _, sub := range s.subs {
		sub.Dispose()
	}
	s.subs = make(map[string]*diagnostics.Subscription)
	s.subMu.Unlock()

	return nil
}

func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

// captureNotify stores the notification function from the context for
// async use.
func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

// handleFor returns the store handle for a diagnoser, allocating it on
// first use.
func (s *Server) handleFor(d provider.Diagnoser) *diagnostics.Provider {
	s.handleMu.Lock()
	defer s.handleMu.Unlock()
	h, ok := s.handles[d]
	if !ok {
		h = diagnostics.NewProvider(d.Info().Name)
		s.handles[d] = h
	}
	return h
}

// requestContext is the context under which provider queries run. The
// stdio transport has no per-request cancellation, so this is the
// background context for now.
func (s *Server) requestContext() context.Context {
	return context.Background()
}

func boolPtr(b bool) *bool {
	return &b
}
