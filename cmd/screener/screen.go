package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/judge"
	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/store"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a directory of resumes against a job description",
	Long: `Screens every resume in a directory against a job description and writes a ranked CSV.

Each candidate gets a final score fusing embedding similarity, required-skill overlap, and years of experience; the closest top-k candidates are additionally judged by an LLM.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runScreenCmd,
}

var (
	screenConfigPath  string
	screenJob         string
	screenJobURL      string
	screenResumes     string
	screenSkills      string
	screenTopK        int
	screenFuzzyCutoff int
	screenMaxRetries  int
	screenAPIKey      string
	screenOut         string
	screenVerbose     bool
)

func init() {
	// Config file flag (processed first)
	screenCmd.Flags().StringVar(&screenConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	screenCmd.Flags().StringVarP(&screenJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	screenCmd.Flags().StringVar(&screenJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	screenCmd.Flags().StringVarP(&screenResumes, "resumes", "r", "", "Directory of resume text files")
	screenCmd.Flags().StringVarP(&screenSkills, "skills", "s", "", "Required skills, comma separated (extracted from job text if omitted)")
	screenCmd.Flags().IntVarP(&screenTopK, "top-k", "k", 0, "Number of closest candidates to judge with the LLM (0 disables judging)")
	screenCmd.Flags().IntVar(&screenFuzzyCutoff, "fuzzy-cutoff", 0, "Minimum fuzzy match ratio for skill extraction (0-100)")
	screenCmd.Flags().IntVar(&screenMaxRetries, "max-retries", 0, "LLM retries after the first attempt")
	screenCmd.Flags().StringVarP(&screenOut, "out", "o", "", "Output CSV path")
	screenCmd.Flags().BoolVarP(&screenVerbose, "verbose", "v", false, "Print detailed run information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	screenCmd.Flags().StringVar(&screenAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(screenCmd)
}

func runScreenCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if screenConfigPath != "" {
		loadedCfg, err := config.LoadConfig(screenConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if screenVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", screenConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("job") {
		cfg.Job = screenJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = screenJobURL
	}
	if cmd.Flags().Changed("resumes") {
		cfg.Resumes = screenResumes
	}
	if cmd.Flags().Changed("skills") {
		cfg.Skills = screenSkills
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = &screenTopK
	}
	if cmd.Flags().Changed("fuzzy-cutoff") {
		cfg.FuzzyCutoff = &screenFuzzyCutoff
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = &screenMaxRetries
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = screenAPIKey
	}
	if cmd.Flags().Changed("out") {
		cfg.Out = screenOut
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = screenVerbose
	}

	// Step 3: Apply defaults for unset values. An explicit zero (e.g.
	// --top-k 0 to disable judging) survives the merge.
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())
	topK, fuzzyCutoff, maxRetries := *cfg.TopK, *cfg.FuzzyCutoff, *cfg.MaxRetries

	// Step 4: Validate required fields
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if cfg.Resumes == "" {
		return fmt.Errorf("--resumes directory is required (via flag or config)")
	}

	// Step 5: API key handling (embeddings always need it)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 6: Load the job description
	var jobText string
	if cfg.Job != "" {
		jobText = ingestion.ReadDocument(cfg.Job)
		if jobText == "" {
			return fmt.Errorf("job file %s is empty or unreadable", cfg.Job)
		}
	} else {
		fetched, err := ingestion.FetchJobPosting(ctx, cfg.JobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		jobText = fetched
	}

	// Step 7: Load the resumes
	docs, err := ingestion.ReadDir(cfg.Resumes)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no resume files found in %s", cfg.Resumes)
	}
	resumes := make([]screening.Resume, 0, len(docs))
	for _, doc := range docs {
		resumes = append(resumes, screening.Resume{Name: doc.Name, Text: doc.Text})
	}

	// Step 8: Build the pipeline components
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resumeStore, err := store.NewStore(store.EmbedderFromClient(client))
	if err != nil {
		return fmt.Errorf("failed to create resume store: %w", err)
	}

	extractor := skills.NewExtractor(skills.DefaultVocabulary(), skills.WithFuzzyCutoff(fuzzyCutoff))

	var judger screening.Judger
	if topK > 0 {
		judger = judge.New(client, judge.RetryPolicy{
			MaxRetries: maxRetries,
			Wait:       time.Second,
		})
	}

	screener := screening.New(resumeStore, extractor, judger)

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintRunSetup(len(jobText), len(resumes), skills.ParseRequiredSkills(cfg.Skills), topK)
	}

	// Step 9: Run the screening
	result, err := screener.Run(ctx, screening.Request{
		JobText:        jobText,
		Resumes:        resumes,
		RequiredSkills: cfg.Skills,
		TopK:           topK,
	})
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	// Step 10: Write the ranked CSV
	out, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := result.WriteCSV(out); err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintScreeningResults(result.Rows)
		printer.PrintJustifications(result.Rows)
	}

	top := ""
	if len(result.Rows) > 0 {
		top = fmt.Sprintf(" (top: %s, %.2f)", result.Rows[0].Name, result.Rows[0].FinalScore)
	}
	fmt.Fprintf(os.Stdout, "Screened %d resumes%s -> %s\n", len(result.Rows), top, cfg.Out)

	return nil
}
