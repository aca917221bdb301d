// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/sqlserve/internal/logger"
	"github.com/bastiangx/sqlserve/pkg/complete"
)

// InputHandler processes user input from stdin, providing ranked
// suggestions. Each line names a suggestion kind plus optional scope,
// followed by the partial text to complete.
type InputHandler struct {
	engine        *complete.Engine
	log           *log.Logger
	suggestLimit  int
	defaultSchema string
	requestCount  int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *complete.Engine, limit int, defaultSchema string) *InputHandler {
	return &InputHandler{
		engine:        engine,
		log:           logger.Default("cli"),
		suggestLimit:  limit,
		defaultSchema: defaultSchema,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to the handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.log.Print("SQLServe CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("format: KIND [schema=S] [tables=a,b] [unique] [srf] PARTIAL")
	h.log.Print("kinds: keyword table view column function schema datatype alias database")
	h.log.Print("or: prefix P to list keywords starting with P")
	h.log.Print("type a line and press Enter to see the suggestions (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput parses one line into a suggestion request and prints the
// ranked matches.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	if h.requestCount%50 == 0 {
		if c, ok := h.engine.Provider().(interface{ Invalidate() }); ok {
			c.Invalidate()
		}
	}

	fields := strings.Fields(line)
	if fields[0] == "prefix" && len(fields) > 1 {
		words := h.engine.Keywords().WithPrefix(fields[1])
		h.log.Printf("%d keywords start with '%s': %s", len(words), fields[1], strings.Join(words, " "))
		return
	}
	kind, ok := complete.ParseKind(fields[0])
	if !ok {
		h.log.Errorf("Unknown kind: %s", fields[0])
		return
	}

	suggestion := complete.Suggestion{Kind: kind, Schema: h.defaultSchema}
	text := ""
	for _, field := range fields[1:] {
		switch {
		case strings.HasPrefix(field, "schema="):
			suggestion.Schema = strings.TrimPrefix(field, "schema=")
		case strings.HasPrefix(field, "tables="):
			for _, name := range strings.Split(strings.TrimPrefix(field, "tables="), ",") {
				ref := complete.TableRef{Name: name}
				if schema, table, found := strings.Cut(name, "."); found {
					ref = complete.TableRef{Schema: schema, Name: table}
				}
				suggestion.Tables = append(suggestion.Tables, ref)
			}
		case strings.HasPrefix(field, "aliases="):
			suggestion.Aliases = strings.Split(strings.TrimPrefix(field, "aliases="), ",")
		case field == "unique":
			suggestion.UniqueOnly = true
		case field == "srf":
			suggestion.SetReturning = true
		default:
			text = field
		}
	}

	start := time.Now()
	h.log.Debug("Processing request for", "text", text, "kind", kind)

	span := complete.Span{Start: 0, End: len(text)}
	matches, err := h.engine.Matches(context.Background(), suggestion, text, span)
	elapsed := time.Since(start)
	if err != nil {
		h.log.Errorf("Completing %s: %v", kind, err)
		return
	}
	h.log.Debugf("Took [ %v ] for text '%s'", elapsed, text)

	if len(matches) == 0 {
		h.log.Warnf("No suggestions found for text: '%s'", text)
		return
	}
	if len(matches) > h.suggestLimit {
		matches = matches[:h.suggestLimit]
	}

	h.log.Printf("Found %d suggestions for text '%s':", len(matches), text)
	for i, m := range matches {
		clText := fmt.Sprintf("\033[38;5;75m%s\033[0m", m.Text)
		h.log.Printf("%2d. %-40s (%s)", i+1, clText, m.Label)
	}
}
