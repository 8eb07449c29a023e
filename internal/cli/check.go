package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-bot/backend/internal/client"
	"github.com/zhouzirui/interview-bot/backend/internal/config"
	"github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
)

// Status of a single setup check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return passStyle.Render("✅ PASS")
	case Warn:
		return warnStyle.Render("⚠️  WARN")
	default:
		return failStyle.Render("❌ FAIL")
	}
}

// CheckResult is one line of the setup report.
type CheckResult struct {
	Name   string
	Status Status
	Detail string
}

// ErrChecksFailed is returned when at least one check failed.
var ErrChecksFailed = errors.New("setup checks failed")

const probeTimeout = 5 * time.Second

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var skipServer bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check configuration and backing services",
		Long: `Validate the environment the server would start with: configuration,
model credentials, the memory backend, the Neo4j knowledge graph and, unless
--skip-server is set, a running server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runChecks(cmd.Context(), opts, skipServer)
			return renderChecks(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().BoolVar(&skipServer, "skip-server", false, "Do not probe a running server")
	return cmd
}

func runChecks(ctx context.Context, opts *rootOptions, skipServer bool) []CheckResult {
	results := []CheckResult{checkEnvFile(opts.envFile)}

	cfg, err := config.Load()
	if err != nil {
		results = append(results, CheckResult{Name: "Configuration", Status: Fail, Detail: err.Error()})
		return results
	}
	results = append(results,
		CheckResult{Name: "Configuration", Status: Pass, Detail: "environment " + string(cfg.Environment())},
		checkModel(cfg.AI),
		checkMemory(ctx, cfg),
		checkGraph(ctx, cfg.Graph),
	)
	if !skipServer {
		results = append(results, checkServer(ctx, opts.client()))
	}
	return results
}

func checkEnvFile(path string) CheckResult {
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Name: ".env file", Status: Warn, Detail: path + " not found, using process environment"}
	}
	return CheckResult{Name: ".env file", Status: Pass, Detail: path}
}

func checkModel(cfg config.AIConfig) CheckResult {
	if !cfg.Enabled() {
		return CheckResult{
			Name:   "Model credentials",
			Status: Warn,
			Detail: fmt.Sprintf("%s credentials missing, answers will use the keyword fallback", cfg.Provider),
		}
	}
	return CheckResult{Name: "Model credentials", Status: Pass, Detail: fmt.Sprintf("%s / %s", cfg.Provider, cfg.ModelName())}
}

func checkMemory(ctx context.Context, cfg *config.Config) CheckResult {
	switch cfg.Memory.Backend {
	case config.MemoryDisabled:
		return CheckResult{Name: "Memory backend", Status: Warn, Detail: "disabled"}
	case config.MemoryRedis:
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		rdb, err := cfg.Redis.NewContext(ctx)
		if err != nil {
			return CheckResult{Name: "Memory backend", Status: Fail, Detail: "redis: " + err.Error()}
		}
		_ = rdb.Close()
		return CheckResult{Name: "Memory backend", Status: Pass, Detail: "redis reachable"}
	default:
		return CheckResult{Name: "Memory backend", Status: Pass, Detail: "in-process"}
	}
}

func checkGraph(ctx context.Context, cfg config.GraphConfig) CheckResult {
	if !cfg.Enabled() {
		return CheckResult{Name: "Knowledge graph", Status: Warn, Detail: "NEO4J_URI not set, basic profile context only"}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	extractor, err := knowledge.Connect(ctx, cfg)
	if err != nil {
		return CheckResult{Name: "Knowledge graph", Status: Fail, Detail: err.Error()}
	}
	_ = extractor.Close(ctx)
	return CheckResult{Name: "Knowledge graph", Status: Pass, Detail: cfg.URI}
}

func checkServer(ctx context.Context, c *client.Client) CheckResult {
	rep, err := c.Health(ctx)
	if err != nil {
		return CheckResult{Name: "Server", Status: Warn, Detail: "not reachable: " + err.Error()}
	}
	return CheckResult{Name: "Server", Status: Pass, Detail: fmt.Sprintf("%s v%s (ai %s)", rep.Status, rep.Version, rep.AIStatus)}
}

func renderChecks(w io.Writer, results []CheckResult) error {
	printTitle(w, "🎤 Voice Interview Bot - Setup Checker")
	printSection(w, "📊 SETUP SUMMARY")

	failed := 0
	for _, r := range results {
		fmt.Fprintf(w, "%-20s %s  %s\n", r.Name, r.Status, mutedStyle.Render(r.Detail))
		if r.Status == Fail {
			failed++
		}
	}
	fmt.Fprintln(w)

	if failed > 0 {
		fmt.Fprintln(w, failStyle.Render(fmt.Sprintf("%d check(s) failed", failed)))
		return ErrChecksFailed
	}
	fmt.Fprintln(w, passStyle.Render("Ready to run: go run ./cmd/api"))
	return nil
}
