package app

import (
	"fmt"

	credentialRepository "github.com/docbrief/docbrief/internal/credentials/repository"
	credentialUsecase "github.com/docbrief/docbrief/internal/credentials/usecase"
)

// CredentialRepository returns the credential repository instance.
func (c *Container) CredentialRepository() (credentialUsecase.CredentialRepository, error) {
	c.credentialRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["credentialRepo"] = fmt.Errorf("failed to get database for credential repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.credentialRepo = credentialRepository.NewMySQLCredentialRepository(db)
		case "postgres":
			c.credentialRepo = credentialRepository.NewPostgreSQLCredentialRepository(db)
		default:
			c.initErrors["credentialRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential use case wrapped with metrics.
func (c *Container) CredentialUseCase() (credentialUsecase.UseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		credentialRepo, err := c.CredentialRepository()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}

		useCase := credentialUsecase.NewCredentialUseCase(
			txManager,
			credentialRepo,
			c.CipherProvider(),
			auditUC,
			businessMetrics,
		)
		c.credentialUseCase = credentialUsecase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}
