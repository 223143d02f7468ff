// tarjem — documentation translation toolkit for Markdown content trees.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tarjemkit/tarjem/batch"
	"github.com/tarjemkit/tarjem/config"
	"github.com/tarjemkit/tarjem/glossary"
	"github.com/tarjemkit/tarjem/i18n"
	"github.com/tarjemkit/tarjem/lockfile"
	"github.com/tarjemkit/tarjem/report"
	"github.com/tarjemkit/tarjem/scan"
	"github.com/tarjemkit/tarjem/settings"
	"github.com/tarjemkit/tarjem/transform"
	"github.com/tarjemkit/tarjem/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir    string
	targetLang string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tarjem",
		Short: "Documentation translation toolkit for Markdown content trees",
		Long: `tarjem — documentation translation toolkit for Markdown content trees.

Audits a documentation tree for missing and low-quality translations,
and generates translated counterparts (guide.md → guide-ar.md) while
preserving YAML frontmatter structure, code blocks, template directives,
and link targets byte for byte.

Commands:
  scan        Audit translation coverage and write a report
  translate   Generate missing translations (placeholder or AI backend)
  enhance     Re-translate suspect pages with an AI backend
  auth        Manage provider API keys

AI Providers:
  openai         OpenAI — API key
  google         Google AI (Gemini) — API key
  groq           Groq — API key
  anthropic      Anthropic (Claude) — API key
  ollama         Ollama local server
  custom-openai  Custom OpenAI-compatible endpoint`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Documentation root directory")
	root.PersistentFlags().StringVar(&targetLang, "lang", "", "Target language code (default from tarjem.yaml, else ar)")

	root.AddCommand(
		newScanCmd(),
		newTranslateCmd(),
		newEnhanceCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tarjem version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// project resolution
// ---------------------------------------------------------------------------

// resolveProject detects the project and applies the global --lang
// override. Exits on an invalid root.
func resolveProject() *config.Project {
	proj, err := config.Detect(rootDir)
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}
	if targetLang != "" {
		proj.TargetLang = targetLang
	}
	return proj
}

func scanOptions(proj *config.Project) scan.Options {
	return scan.Options{
		Lang:     proj.TargetLang,
		SkipDirs: proj.SkipDirs,
	}
}

// ---------------------------------------------------------------------------
// scan (read-only: coverage audit)
// ---------------------------------------------------------------------------

func newScanCmd() *cobra.Command {
	var (
		reportFile string
		noReport   bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Audit translation coverage",
		Long: `Audit the documentation tree for missing and suspect translations.

Walks the content directory, pairs each English source with its
expected translated counterpart, and classifies every pair as matched,
missing, or suspect. Suspect means the translation file exists but its
content looks untranslated (placeholder note, mostly-Latin prose,
English sentence patterns).

The audit is recomputed from the file tree on every run; nothing is
cached. Writes a Markdown report next to the root unless --no-report
is given.`,
		Run: func(cmd *cobra.Command, args []string) {
			runScan(reportFile, noReport)
		},
	}

	cmd.Flags().StringVar(&reportFile, "report", "", "Report file path (default: translation_audit_report.md in root)")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Print summary only, write no report file")

	return cmd
}

func runScan(reportFile string, noReport bool) {
	proj := resolveProject()

	logInfo("%s", i18n.T("Scanning documentation tree..."))
	logInfo("Root: %s", proj.ContentDir)

	pairs, err := scan.Scan(proj.ContentDir, scanOptions(proj))
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	rep := report.Build(pairs)
	printReportSummary(rep)

	if noReport {
		return
	}

	path := reportFile
	if path == "" {
		path = proj.ReportFile
	}
	if err := rep.WriteFile(path); err != nil {
		logError("Writing report: %v", err)
		os.Exit(1)
	}
	logSuccess(i18n.T("Report written to %s"), path)
}

func printReportSummary(rep *report.Report) {
	fmt.Fprintf(os.Stderr, "\n%sTranslation coverage%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Source files:   %d\n", rep.TotalSource)
	fmt.Fprintf(os.Stderr, "  Translated:     %d\n", rep.Matched)
	fmt.Fprintf(os.Stderr, "  Missing:        %d\n", rep.Missing)
	fmt.Fprintf(os.Stderr, "  Suspect:        %d\n", rep.Suspect)
	fmt.Fprintf(os.Stderr, "  Coverage:       %.1f%%\n", rep.Coverage())
	fmt.Fprintln(os.Stderr)

	if rep.Missing > 0 {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", colorYellow, i18n.T("Missing translations:"), colorReset)
		for _, p := range rep.MissingPaths {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
		fmt.Fprintln(os.Stderr)
	}
	if rep.Suspect > 0 {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", colorYellow, i18n.T("Suspect translations:"), colorReset)
		for _, p := range rep.SuspectPaths {
			fmt.Fprintf(os.Stderr, "  %s (%s)\n", p, rep.SuspectReasons[p])
		}
		fmt.Fprintln(os.Stderr)
	}
}

// ---------------------------------------------------------------------------
// translate / enhance
// ---------------------------------------------------------------------------

type translateArgs struct {
	// Target selection
	suspect bool
	filter  string
	limit   int

	// Backend selection
	backend  string
	provider string
	apiKey   string
	model    string
	baseURL  string
	prompt   string

	// Behavior
	dryRun bool
	force  bool

	// Parallelization
	workers      int
	requestDelay time.Duration

	// Network
	timeout    time.Duration
	proxy      string
	maxRetries int
}

func addTranslateFlags(cmd *cobra.Command, a *translateArgs) {
	// Target selection
	cmd.Flags().BoolVar(&a.suspect, "suspect", false, "Also re-translate suspect pages (default: missing only)")
	cmd.Flags().StringVar(&a.filter, "filter", "", "Only process sources whose path matches this regexp")
	cmd.Flags().IntVar(&a.limit, "limit", 0, "Maximum number of documents to process (0 = no limit)")

	// Backend / provider selection
	cmd.Flags().StringVar(&a.provider, "provider", "", "AI provider: openai, google, groq, anthropic, ollama, custom-openai")
	cmd.Flags().StringVar(&a.model, "model", "", "Model name (required with --provider)")
	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key (or TARJEM_API_KEY env var)")
	cmd.Flags().StringVar(&a.baseURL, "base-url", "", "Custom API base URL")
	cmd.Flags().StringVar(&a.prompt, "prompt", "", "Custom system prompt (use {{targetLang}} and {{glossary}} placeholders)")

	// Behavior
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "Show what would be translated without writing files")
	cmd.Flags().BoolVar(&a.force, "force", false, "Re-translate even when the lock file marks the source unchanged")

	// Parallelization
	cmd.Flags().IntVar(&a.workers, "workers", 3, "Maximum concurrent documents")
	cmd.Flags().DurationVar(&a.requestDelay, "request-delay", 0, "Delay between task launches")

	// Network
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, "Request timeout (0 = provider default)")
	cmd.Flags().StringVar(&a.proxy, "proxy", "", "HTTP/HTTPS proxy URL")
	cmd.Flags().IntVar(&a.maxRetries, "max-retries", 3, "Maximum retries on rate limit (429)")

	// Provider completion
	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"openai\tOpenAI — API key required",
			"google\tGoogle AI (Gemini) — API key required",
			"groq\tGroq — API key required",
			"anthropic\tAnthropic (Claude) — API key required",
			"ollama\tOllama local server",
			"custom-openai\tCustom OpenAI-compatible endpoint",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	// Model completion (provider-aware)
	_ = cmd.RegisterFlagCompletionFunc("model", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		p, _ := cmd.Flags().GetString("provider")
		switch p {
		case "openai":
			return []string{"gpt-4o", "gpt-4o-mini", "gpt-4.1"}, cobra.ShellCompDirectiveNoFileComp
		case "google":
			return []string{"gemini-2.5-flash", "gemini-2.0-flash-exp", "gemini-1.5-pro"}, cobra.ShellCompDirectiveNoFileComp
		case "groq":
			return []string{"llama-3.3-70b-versatile", "mixtral-8x7b-32768"}, cobra.ShellCompDirectiveNoFileComp
		case "anthropic":
			return []string{"claude-sonnet-4-5", "claude-haiku-4-5"}, cobra.ShellCompDirectiveNoFileComp
		case "ollama":
			return []string{"llama3.2", "qwen2.5", "mistral", "phi3"}, cobra.ShellCompDirectiveNoFileComp
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	})
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Generate missing translations",
		Long: `Generate translated counterparts for untranslated source files.

Without --provider, uses the placeholder backend: the translated file
gets an Arabic note banner, glossary-substituted frontmatter fields,
and the original body below a separator. With --provider, each page is
translated by the AI model with code blocks, template directives, and
link targets protected from modification.

Examples:
  # Create placeholder pages for every missing translation
  tarjem translate

  # AI-translate missing pages with OpenAI
  tarjem translate --provider openai --model gpt-4o

  # Also redo suspect pages, five documents at a time
  tarjem translate --provider openai --model gpt-4o --suspect --workers 5

  # Preview without writing
  tarjem translate --dry-run`,
		Run: func(cmd *cobra.Command, args []string) {
			runTranslate(a)
		},
	}

	cmd.Flags().StringVar(&a.backend, "backend", "", "Backend: placeholder or enhanced (default: enhanced when --provider is set)")
	addTranslateFlags(cmd, &a)

	return cmd
}

func newEnhanceCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "enhance",
		Short: "Re-translate suspect pages with an AI backend",
		Long: `Re-translate suspect pages using an AI provider.

Equivalent to 'translate --suspect --backend enhanced'. Targets pages
whose translation file exists but still reads as English: placeholder
banners, mostly-Latin prose, English sentence patterns. Requires
--provider and --model.

Examples:
  tarjem enhance --provider openai --model gpt-4o
  tarjem enhance --provider groq --model llama-3.3-70b-versatile --limit 10`,
		Run: func(cmd *cobra.Command, args []string) {
			a.backend = "enhanced"
			a.suspect = true
			runTranslate(a)
		},
	}

	addTranslateFlags(cmd, &a)

	return cmd
}

// resolveBackend builds the translation backend from the CLI flags.
func resolveBackend(a translateArgs) (translate.Backend, error) {
	backend := a.backend
	if backend == "" {
		if a.provider != "" {
			backend = "enhanced"
		} else {
			backend = "placeholder"
		}
	}

	switch backend {
	case "placeholder":
		return translate.Placeholder{}, nil
	case "enhanced":
		// fallthrough to provider resolution below
	default:
		return nil, fmt.Errorf("unknown backend %q (want placeholder or enhanced)", backend)
	}

	if a.provider == "" {
		return nil, fmt.Errorf("the enhanced backend requires --provider\n\n" +
			"Available providers:\n" +
			"  Cloud APIs (require API key):\n" +
			"    openai         OpenAI\n" +
			"    google         Google AI (Gemini)\n" +
			"    groq           Groq\n" +
			"    anthropic      Anthropic (Claude)\n\n" +
			"  Local services (no API key):\n" +
			"    ollama         Ollama local server\n\n" +
			"  Custom:\n" +
			"    custom-openai  Custom OpenAI-compatible endpoint\n\n" +
			"Example: tarjem translate --provider openai --model gpt-4o")
	}

	prov, ok := translate.DefaultProviders()[a.provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", a.provider)
	}

	// API key resolution order: flag > environment > stored credentials.
	key := a.apiKey
	if key == "" {
		key = os.Getenv("TARJEM_API_KEY")
	}
	if key == "" {
		key = settings.GetAPIKey(a.provider)
	}
	prov.APIKey = key

	if a.baseURL != "" {
		prov.BaseURL = a.baseURL
	} else if stored := settings.GetBaseURL(a.provider); stored != "" {
		prov.BaseURL = stored
	}
	if a.model != "" {
		prov.Model = a.model
	}
	if a.proxy != "" {
		prov.Proxy = a.proxy
	}
	if a.timeout > 0 {
		prov.Timeout = a.timeout
	}

	if prov.Model == "" {
		return nil, fmt.Errorf("provider %s requires --model", a.provider)
	}
	if prov.APIKey == "" && a.provider != translate.ProviderOllama {
		return nil, fmt.Errorf("provider %s requires an API key: use --api-key, TARJEM_API_KEY, or 'tarjem auth set %s'", a.provider, a.provider)
	}
	if prov.BaseURL == "" {
		return nil, fmt.Errorf("provider %s requires --base-url", a.provider)
	}

	enhanced := translate.NewEnhanced(prov)
	enhanced.MaxRetries = a.maxRetries
	enhanced.SystemPrompt = a.prompt
	return enhanced, nil
}

// selectPairs filters the scanned pairs down to the ones a translate
// run should process.
func selectPairs(pairs []scan.Pair, a translateArgs) ([]scan.Pair, error) {
	var filter *regexp.Regexp
	if a.filter != "" {
		var err error
		filter, err = regexp.Compile(a.filter)
		if err != nil {
			return nil, fmt.Errorf("invalid --filter: %w", err)
		}
	}

	var selected []scan.Pair
	for _, p := range pairs {
		switch p.Class {
		case scan.Missing:
			// always a candidate
		case scan.Suspect:
			if !a.suspect {
				continue
			}
		default:
			continue
		}
		if filter != nil && !filter.MatchString(p.Source) {
			continue
		}
		selected = append(selected, p)
		if a.limit > 0 && len(selected) >= a.limit {
			break
		}
	}
	return selected, nil
}

func runTranslate(a translateArgs) {
	proj := resolveProject()

	backend, err := resolveBackend(a)
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	// Load user prompt overrides, creating the default file on first run.
	if _, ok := backend.(*translate.Enhanced); ok {
		if path, err := translate.LoadPromptsFromDefaultLocations(); err != nil {
			logWarning("Loading prompts: %v", err)
		} else if path != "" {
			logInfo("Prompts: %s", path)
		}
	}

	// User glossary merges over the built-in terms.
	gl := glossary.Default()
	if path, err := settings.GlossaryFilePath(); err == nil {
		if merged, err := glossary.Load(path); err != nil {
			logWarning("Loading glossary %s: %v", path, err)
		} else {
			gl = merged
		}
	}

	logInfo("%s", i18n.T("Scanning documentation tree..."))
	pairs, err := scan.Scan(proj.ContentDir, scanOptions(proj))
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	selected, err := selectPairs(pairs, a)
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	if len(selected) == 0 {
		logSuccess("Nothing to translate: all pages are covered")
		return
	}

	if enhanced, ok := backend.(*translate.Enhanced); ok {
		logInfo("Provider: %s (%s), Model: %s", enhanced.Provider.Name, enhanced.Provider.ID, enhanced.Provider.Model)
	} else {
		logInfo("Backend: placeholder (no AI provider)")
	}
	logInfo("Target language: %s (%s)", proj.TargetLang, translate.LangName(proj.TargetLang))
	logInfo(i18n.N("Selected %d document", "Selected %d documents", len(selected)), len(selected))

	lock, err := lockfile.Load(proj.Root)
	if err != nil {
		logWarning("Lock file unreadable, starting fresh: %v", err)
		lock = lockfile.New(proj.Root)
	}
	// Drop checksums for sources that no longer exist so the lock
	// file tracks the live tree.
	liveSources := make([]string, 0, len(pairs))
	for _, p := range pairs {
		liveSources = append(liveSources, p.Source)
	}
	lock.Clean(proj.TargetLang, liveSources)
	if _, docs := lock.Stats(); docs > 0 {
		logInfo("Lock file: %s", lock.Summary())
	}

	// Graceful cancellation: in-flight documents finish their write,
	// no new ones start.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		logWarning("Interrupted, finishing in-flight documents...")
		cancel()
	}()

	opts := batch.Options{
		Workers:      a.workers,
		RequestDelay: a.requestDelay,
		DryRun:       a.dryRun,
		Force:        a.force,
		Lock:         lock,
		Transform: transform.Options{
			TargetLang: proj.TargetLang,
			Fields:     proj.Fields,
			Glossary:   gl,
		},
		OnProgress: func(done, total int) {
			logInfo("  %d/%d", done, total)
		},
		OnLog: func(format string, args ...any) {
			logInfo(format, args...)
		},
	}

	result := batch.Run(ctx, selected, backend, opts)

	if !a.dryRun {
		if err := lock.Save(); err != nil {
			logWarning("Saving lock file: %v", err)
		}
	}

	written, skipped, failed := result.Counts()
	fmt.Fprintln(os.Stderr)
	logInfo(i18n.N("Wrote %d file", "Wrote %d files", written), written)
	if skipped > 0 {
		logInfo("Skipped: %d", skipped)
	}
	if failed > 0 {
		logWarning("Failed: %d", failed)
	}

	// Surface incomplete documents in the audit report.
	incomplete := result.Incomplete()
	if len(incomplete) > 0 {
		var failures []report.Failure
		for _, d := range incomplete {
			reason := d.Reason
			if reason == "" && len(d.UnitFailures) > 0 {
				reason = d.UnitFailures[0].String()
			}
			failures = append(failures, report.Failure{Path: d.Source, Reason: reason})
		}
		rep := report.Build(pairs)
		rep.AddFailures(failures)
		if !a.dryRun {
			if err := rep.WriteFile(proj.ReportFile); err != nil {
				logWarning("Writing report: %v", err)
			} else {
				logInfo(i18n.T("Report written to %s"), proj.ReportFile)
			}
		}
		for _, d := range incomplete {
			if d.Status == batch.Failed {
				logWarning("  %s: %s", d.Source, d.Reason)
			} else {
				logWarning("  %s: partial (%d units kept original text)", d.Source, len(d.UnitFailures))
			}
		}
	}

	if a.dryRun {
		logInfo("%s", i18n.T("Dry run: no files written"))
		return
	}

	// A completed run exits zero even when some documents failed;
	// the report carries the details.
	logSuccess("%s", i18n.T("Done"))
}

// ---------------------------------------------------------------------------
// auth (API key management)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API keys",
		Long: `Manage stored API keys for AI providers.

Keys are stored in ` + settings.FilePath() + ` with 0600 permissions.
The lookup order at translation time is: --api-key flag, TARJEM_API_KEY
environment variable, stored key.

Examples:
  tarjem auth set openai                Prompt for an OpenAI key
  tarjem auth set custom-openai --base-url https://llm.internal/v1
  tarjem auth show                      List stored credentials (masked)
  tarjem auth remove openai             Remove one provider's key
  tarjem auth remove --all              Remove all stored credentials`,
	}

	cmd.AddCommand(
		newAuthSetCmd(),
		newAuthShowCmd(),
		newAuthRemoveCmd(),
	)

	return cmd
}

func newAuthSetCmd() *cobra.Command {
	var (
		apiKey  string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key for a provider",
		Long: `Store an API key for an AI provider.

Reads the key from --api-key, or prompts on stdin when the flag is
omitted (the prompt keeps the key out of shell history).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerID := args[0]
			if _, ok := translate.DefaultProviders()[providerID]; !ok {
				return fmt.Errorf("unknown provider %q", providerID)
			}

			key := apiKey
			if key == "" {
				fmt.Fprintf(os.Stderr, "Enter API key for %s: ", providerID)
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading key: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return fmt.Errorf("empty API key")
			}

			var err error
			if baseURL != "" {
				err = settings.SetAPIKeyWithBaseURL(providerID, key, baseURL)
			} else {
				err = settings.SetAPIKey(providerID, key)
			}
			if err != nil {
				return err
			}
			logSuccess("%s", i18n.T("API key saved"))
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompted if omitted)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Custom API base URL to store alongside the key")

	return cmd
}

func newAuthShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List stored credentials",
		Run: func(cmd *cobra.Command, args []string) {
			store := settings.Load()
			if len(store) == 0 {
				logInfo("%s", i18n.T("No API key configured"))
				return
			}

			fmt.Fprintf(os.Stderr, "\n%sStored credentials%s (%s)\n", colorBlue, colorReset, settings.FilePath())
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
			for _, id := range sortedKeys(store) {
				info := store[id]
				line := fmt.Sprintf("  %-15s %s", id, settings.MaskKey(info.Key))
				if info.BaseURL != "" {
					line += fmt.Sprintf("  (%s)", info.BaseURL)
				}
				fmt.Fprintln(os.Stderr, line)
			}
			fmt.Fprintln(os.Stderr)
		},
	}
}

func newAuthRemoveCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "remove [provider]",
		Short: "Remove stored credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				if err := settings.RemoveAll(); err != nil {
					return err
				}
				logSuccess("%s", i18n.T("API key removed"))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("specify a provider or use --all")
			}
			if err := settings.Remove(args[0]); err != nil {
				return err
			}
			logSuccess("%s", i18n.T("API key removed"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove all stored credentials")

	return cmd
}

func sortedKeys(store settings.Store) []string {
	keys := make([]string, 0, len(store))
	for k := range store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
