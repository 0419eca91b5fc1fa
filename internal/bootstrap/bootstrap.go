package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	cataloginadapter "studydesk/internal/modules/catalog/adapter/in"
	catalogoutadapter "studydesk/internal/modules/catalog/adapter/out"
	catalogin "studydesk/internal/modules/catalog/port/in"
	catalogservice "studydesk/internal/modules/catalog/service"
	catalogusecase "studydesk/internal/modules/catalog/usecase"
	chatinadapter "studydesk/internal/modules/chat/adapter/in"
	chatoutadapter "studydesk/internal/modules/chat/adapter/out"
	chatin "studydesk/internal/modules/chat/port/in"
	chatservice "studydesk/internal/modules/chat/service"
	chatusecase "studydesk/internal/modules/chat/usecase"
	focusinadapter "studydesk/internal/modules/focus/adapter/in"
	focusoutadapter "studydesk/internal/modules/focus/adapter/out"
	focusin "studydesk/internal/modules/focus/port/in"
	focusservice "studydesk/internal/modules/focus/service"
	focususecase "studydesk/internal/modules/focus/usecase"
	reviewinadapter "studydesk/internal/modules/review/adapter/in"
	reviewoutadapter "studydesk/internal/modules/review/adapter/out"
	reviewin "studydesk/internal/modules/review/port/in"
	reviewservice "studydesk/internal/modules/review/service"
	reviewusecase "studydesk/internal/modules/review/usecase"
	"studydesk/internal/platform/clock"
	"studydesk/internal/platform/config"
	"studydesk/internal/platform/id"
	"studydesk/internal/platform/logger"
	"studydesk/internal/platform/remote"
	uiapp "studydesk/internal/ui/app"
)

type App struct {
	Config config.Config
	Log    *logger.Logger

	Catalog catalogin.Usecase
	Focus   focusin.Usecase
	Review  reviewin.Usecase
	Chat    chatin.Usecase

	CatalogCLI cataloginadapter.CLIHandler
	FocusCLI   focusinadapter.CLIHandler
	ReviewCLI  reviewinadapter.CLIHandler
	ChatCLI    chatinadapter.CLIHandler
}

func New(cfg config.Config, log *logger.Logger) (*App, error) {
	log = logger.OrNop(log)
	clk := clock.SystemClock{}

	client, err := remote.New(remote.Options{BaseURL: cfg.APIBaseURL, Timeout: cfg.Timeout, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("new api client: %w", err)
	}

	store := catalogoutadapter.NewHTTPStore(client)
	catalogSvc := catalogservice.NewCatalogService(clk, store, store, log)
	exportSvc := catalogservice.NewExportService(
		catalogSvc,
		store,
		catalogoutadapter.NewPDFInspector(),
		catalogoutadapter.NewDirExportSink(cfg.ExportDir),
		catalogoutadapter.NewOSExternalLauncher(),
		log,
	)
	catalogUC := catalogusecase.NewInteractor(catalogSvc, exportSvc)

	focusUC := focususecase.NewInteractor(focusservice.NewTimerService(
		clk,
		clock.SystemScheduler{},
		cfg.FocusDuration(),
		focusoutadapter.NewHTTPSessionRecorder(client),
		focusoutadapter.NewCatalogRefresher(catalogUC),
		log,
	))

	catalogBridge := reviewoutadapter.NewCatalogAdapter(catalogUC)
	reviewUC := reviewusecase.NewInteractor(reviewservice.NewReviewService(
		catalogBridge,
		reviewoutadapter.NewHTTPGrader(client),
		catalogBridge,
		log,
	))

	chatUC := chatusecase.NewInteractor(chatservice.NewChatService(
		chatoutadapter.NewHTTPTutor(client),
		chatoutadapter.NewLocalFileSource(),
		id.UUID{},
		clk,
		log,
	))

	return &App{
		Config:     cfg,
		Log:        log,
		Catalog:    catalogUC,
		Focus:      focusUC,
		Review:     reviewUC,
		Chat:       chatUC,
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		FocusCLI:   focusinadapter.NewCLIHandler(focusUC),
		ReviewCLI:  reviewinadapter.NewCLIHandler(reviewUC),
		ChatCLI:    chatinadapter.NewCLIHandler(chatUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(uiapp.Deps{
		Catalog:        app.Catalog,
		Focus:          app.Focus,
		Review:         app.Review,
		Chat:           app.Chat,
		FlashcardCount: app.Config.FlashcardCount,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
