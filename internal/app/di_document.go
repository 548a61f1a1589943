package app

import (
	"fmt"

	documenthttp "github.com/inkvault/inkvault/internal/document/http"
	documentRepository "github.com/inkvault/inkvault/internal/document/repository"
	documentUseCase "github.com/inkvault/inkvault/internal/document/usecase"
	"github.com/inkvault/inkvault/internal/http"
)

// DocumentRepository returns the document repository instance.
func (c *Container) DocumentRepository() (documentUseCase.DocumentRepository, error) {
	c.documentRepoInit.Do(func() {
		repo, err := c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepo"] = err
			return
		}
		c.documentRepo = repo
	})
	if storedErr, exists := c.initErrors["documentRepo"]; exists {
		return nil, storedErr
	}
	return c.documentRepo, nil
}

// DocumentUseCase returns the document use case, decorated with metrics.
func (c *Container) DocumentUseCase() (documentUseCase.DocumentUseCase, error) {
	c.documentUseCaseInit.Do(func() {
		useCase, err := c.initDocumentUseCase()
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}
		c.documentUseCase = useCase
	})
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// initDocumentRepository selects the repository for the configured driver.
func (c *Container) initDocumentRepository() (documentUseCase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return documentRepository.NewMySQLDocumentRepository(db), nil
	case "postgres":
		return documentRepository.NewPostgreSQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentUseCase creates the document use case with all its dependencies.
func (c *Container) initDocumentUseCase() (documentUseCase.DocumentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for document use case: %w", err)
	}

	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for document use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
	}

	useCase := documentUseCase.NewDocumentUseCase(txManager, documentRepo, c.CryptoWorkflow())
	return documentUseCase.NewDocumentUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	useCase, err := c.DocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	documentHandler := documenthttp.NewDocumentHandler(c.CryptoWorkflow(), useCase, logger)
	passwordHandler := documenthttp.NewPasswordHandler(logger)

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	if provider != nil {
		server.SetupRouter(c.config, documentHandler, passwordHandler, provider.MeterProvider())
	} else {
		server.SetupRouter(c.config, documentHandler, passwordHandler, nil)
	}

	return server, nil
}
