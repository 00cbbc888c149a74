// Command interline resolves word-level correspondences between an
// original-language text and its aligned translations, and serves highlight
// broadcasts to render surfaces.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Interline/core/align"
	"github.com/FocuswithJustin/Interline/core/cache"
	"github.com/FocuswithJustin/Interline/core/panels"
	"github.com/FocuswithJustin/Interline/core/quote"
	"github.com/FocuswithJustin/Interline/core/token"
	"github.com/FocuswithJustin/Interline/internal/api"
	"github.com/FocuswithJustin/Interline/internal/loader"
	"github.com/FocuswithJustin/Interline/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for interline.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" help:"Log format (json, text)"`

	Match   MatchCmd   `cmd:"" help:"Locate a quote's tokens in an original-language stream"`
	Align   AlignCmd   `cmd:"" help:"Resolve a quote's aligned tokens in a target stream"`
	Panels  PanelsCmd  `cmd:"" help:"Panel registry operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// initLogging applies the global logging flags.
func initLogging() error {
	level, err := logging.ParseLevel(CLI.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(CLI.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// MatchCmd locates a quote occurrence in a tokenized stream.
type MatchCmd struct {
	Stream     string `arg:"" help:"Tokenized stream file (.json, .json.xz, .xml, .sqlite)" type:"path"`
	Quote      string `name:"quote" short:"q" required:"" help:"Quote text; parts separated by '&'"`
	Occurrence int    `name:"occurrence" short:"n" default:"1" help:"1-based occurrence of the first part"`
	Ref        string `name:"ref" short:"r" required:"" help:"Reference range, e.g. \"3JN 1:1\" or \"TIT 1:15-2:2\""`
}

// Run executes the match command.
func (c *MatchCmd) Run(ctx *kong.Context) error {
	if err := initLogging(); err != nil {
		return err
	}
	chapters, err := loader.Load(c.Stream)
	if err != nil {
		return err
	}
	ref, err := token.ParseQuoteReference(c.Ref)
	if err != nil {
		return err
	}

	matcher := quote.NewWithCache(cache.NewDefaultSearchTextCache())
	result := matcher.FindOriginalTokens(chapters, c.Quote, c.Occurrence, ref)
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("match failed: %s", result.Error)
	}
	return nil
}

// AlignCmd matches a quote in the original stream and resolves the aligned
// tokens in a target stream.
type AlignCmd struct {
	Original   string `name:"original" required:"" help:"Original-language stream file" type:"path"`
	Target     string `name:"target" required:"" help:"Target-language stream file" type:"path"`
	Quote      string `name:"quote" short:"q" required:"" help:"Quote text; parts separated by '&'"`
	Occurrence int    `name:"occurrence" short:"n" default:"1" help:"1-based occurrence of the first part"`
	Ref        string `name:"ref" short:"r" required:"" help:"Reference range"`
}

// Run executes the align command.
func (c *AlignCmd) Run(ctx *kong.Context) error {
	if err := initLogging(); err != nil {
		return err
	}
	original, err := loader.Load(c.Original)
	if err != nil {
		return err
	}
	target, err := loader.Load(c.Target)
	if err != nil {
		return err
	}
	ref, err := token.ParseQuoteReference(c.Ref)
	if err != nil {
		return err
	}

	matcher := quote.NewWithCache(cache.NewDefaultSearchTextCache())
	matched := matcher.FindOriginalTokens(original, c.Quote, c.Occurrence, ref)
	if !matched.Success {
		return fmt.Errorf("match failed: %s", matched.Error)
	}

	result := align.FindAlignedTokens(matched.TotalTokens, target, ref)
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("alignment failed: %s", result.Error)
	}
	return nil
}

// PanelsCmd groups panel registry operations.
type PanelsCmd struct {
	Serve PanelsServeCmd `cmd:"" help:"Register panels and serve the highlight relay"`
	Stats PanelsStatsCmd `cmd:"" help:"Print registry statistics for the given streams"`
}

// PanelsServeCmd registers panels and serves the WebSocket relay.
type PanelsServeCmd struct {
	Listen  string   `name:"listen" default:":8777" help:"Listen address"`
	Streams []string `arg:"" help:"Panel specs: resourceID,language,path"`
}

// Run starts the relay server.
func (c *PanelsServeCmd) Run(ctx *kong.Context) error {
	if err := initLogging(); err != nil {
		return err
	}
	svc := panels.NewService()
	if err := registerStreams(svc, c.Streams); err != nil {
		return err
	}

	server := api.NewServer(svc)
	logging.ServerStartup("highlight-relay", c.Listen)
	return http.ListenAndServe(c.Listen, server.Handler())
}

// PanelsStatsCmd prints registry statistics for a set of streams.
type PanelsStatsCmd struct {
	Streams []string `arg:"" help:"Panel specs: resourceID,language,path"`
}

// Run prints the statistics.
func (c *PanelsStatsCmd) Run(ctx *kong.Context) error {
	if err := initLogging(); err != nil {
		return err
	}
	svc := panels.NewService()
	if err := registerStreams(svc, c.Streams); err != nil {
		return err
	}
	return printJSON(svc.GetStatistics())
}

// registerStreams loads each "resourceID,language,path" spec and registers
// it as a panel with a logging handler.
func registerStreams(svc *panels.Service, specs []string) error {
	for _, spec := range specs {
		parts := strings.SplitN(spec, ",", 3)
		if len(parts) != 3 {
			return fmt.Errorf("invalid panel spec %q, want resourceID,language,path", spec)
		}
		resourceID, language, path := parts[0], parts[1], parts[2]
		chapters, err := loader.Load(path)
		if err != nil {
			return err
		}
		svc.Register(panels.Registration{
			ResourceID:   resourceID,
			ResourceType: "scripture",
			Language:     language,
			Chapters:     chapters,
		}, func(msg panels.Message, tokens []*token.WordToken) {
			logging.Debug("panel_highlight",
				"resource_id", resourceID,
				"message_type", msg.Type,
				"token_count", len(tokens))
		})
		logging.PanelEvent("registered", resourceID, language, svc.GetStatistics().PanelCount)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run prints the version.
func (c *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Printf("interline %s\n", version)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("interline"),
		kong.Description("Interline - word-level quote matching and cross-panel highlighting"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
