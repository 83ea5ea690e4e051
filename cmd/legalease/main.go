package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/legalease/internal/ai"
	"github.com/xxxsen/legalease/internal/config"
	"github.com/xxxsen/legalease/internal/handler"
	"github.com/xxxsen/legalease/internal/middleware"
	"github.com/xxxsen/legalease/internal/model"
	"github.com/xxxsen/legalease/internal/pdftext"
	"github.com/xxxsen/legalease/internal/service"
	"github.com/xxxsen/legalease/internal/summary"
)

// summarizer is the part of the summary service the cli needs.
type summarizer interface {
	Summarize(ctx context.Context, doc io.ReaderAt, size int64, lang summary.Language) (*model.Summary, error)
	SummarizeText(ctx context.Context, text string, lang summary.Language) (*model.Summary, error)
}

type summarizerFactory func(configPath string) (summarizer, error)

func main() {
	if err := newRootCmd(newSummarizer).Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func newSummarizer(configPath string) (summarizer, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	svc, err := buildSummaryService(cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func newRootCmd(factory summarizerFactory) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "legalease",
		Short:         "legal judgment simplifier",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			svc, err := buildSummaryService(cfg)
			if err != nil {
				return err
			}
			return runServer(cfg, svc)
		},
	}

	var (
		filePath string
		textPath string
		language string
	)
	summarizeCmd := &cobra.Command{
		Use:   "summarize",
		Short: "summarize one judgment pdf and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (filePath == "") == (textPath == "") {
				return fmt.Errorf("exactly one of --file or --text is required")
			}
			lang, err := summary.ParseLanguage(language)
			if err != nil {
				return err
			}
			svc, err := factory(configPath)
			if err != nil {
				return err
			}
			return runSummarize(cmd, svc, filePath, textPath, lang)
		},
	}
	summarizeCmd.Flags().StringVar(&filePath, "file", "", "path to the judgment pdf")
	summarizeCmd.Flags().StringVar(&textPath, "text", "", "path to already extracted judgment text")
	summarizeCmd.Flags().StringVar(&language, "language", string(summary.English), "output language: English, Hindi, Bengali or Urdu")

	rootCmd.AddCommand(runCmd, summarizeCmd)
	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
	return cfg, nil
}

func buildGenerator(cfg config.AIConfig) (ai.IGenerator, error) {
	entries := make([]ai.GeneratorEntry, 0, len(cfg.Providers))
	for _, item := range cfg.Providers {
		provider, err := ai.NewProvider(item.Name, item.Data)
		if err != nil {
			return nil, fmt.Errorf("init ai provider %s: %w", item.Name, err)
		}
		entries = append(entries, ai.GeneratorEntry{
			Name:      item.Name + ":" + item.Model,
			Generator: ai.NewGenerator(provider, item.Model),
		})
	}
	return ai.NewGroupGenerator(entries), nil
}

func buildSummaryService(cfg *config.Config) (*service.SummaryService, error) {
	gen, err := buildGenerator(cfg.AI)
	if err != nil {
		return nil, err
	}
	manager := ai.NewManager(gen, ai.ManagerConfig{Timeout: cfg.AI.TimeoutDuration()})
	extractor := pdftext.New(pdftext.Config{MaxPages: cfg.Summary.MaxPages})
	checker := summary.NewEnglishWordChecker(cfg.Summary.LeakageThreshold)
	return service.NewSummaryService(extractor, manager, checker, service.SummaryConfig{
		MaxInputChars: cfg.Summary.MaxInputChars,
		CacheSize:     cfg.Summary.CacheSize,
		CacheTTL:      cfg.Summary.CacheTTL(),
	}), nil
}

func runSummarize(cmd *cobra.Command, svc summarizer, path, textPath string, lang summary.Language) error {
	var (
		result *model.Summary
		err    error
	)
	if textPath != "" {
		raw, rerr := os.ReadFile(textPath)
		if rerr != nil {
			return fmt.Errorf("read text: %w", rerr)
		}
		result, err = svc.SummarizeText(cmd.Context(), string(raw), lang)
	} else {
		file, oerr := os.Open(path)
		if oerr != nil {
			return fmt.Errorf("open pdf: %w", oerr)
		}
		defer file.Close()
		info, serr := file.Stat()
		if serr != nil {
			return fmt.Errorf("stat pdf: %w", serr)
		}
		result, err = svc.Summarize(cmd.Context(), file, info.Size(), lang)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return err
}

func runServer(cfg *config.Config, svc *service.SummaryService) error {
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("providers", len(cfg.AI.Providers)),
		zap.Int("max_upload_mb", cfg.Summary.MaxUploadMB),
	)

	maxUpload := cfg.Summary.MaxUploadBytes()
	deps := handler.RouterDeps{
		Page:           handler.NewPageHandler(svc, maxUpload),
		Summaries:      handler.NewSummaryHandler(svc, maxUpload),
		Properties:     handler.NewPropertiesHandler(maxUpload, svc.MaxInputChars()),
		MaxUploadBytes: maxUpload,
	}

	engine, err := webapi.NewEngine(
		"",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
