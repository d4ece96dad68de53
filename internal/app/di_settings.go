package app

import (
	"fmt"

	settingsRepository "github.com/docbrief/docbrief/internal/settings/repository"
	settingsUsecase "github.com/docbrief/docbrief/internal/settings/usecase"
)

// SettingsRepository returns the settings repository instance.
func (c *Container) SettingsRepository() (settingsUsecase.SettingsRepository, error) {
	c.settingsRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["settingsRepo"] = fmt.Errorf("failed to get database for settings repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.settingsRepo = settingsRepository.NewMySQLSettingsRepository(db)
		case "postgres":
			c.settingsRepo = settingsRepository.NewPostgreSQLSettingsRepository(db)
		default:
			c.initErrors["settingsRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["settingsRepo"]; exists {
		return nil, storedErr
	}
	return c.settingsRepo, nil
}

// SettingsUseCase returns the settings use case.
func (c *Container) SettingsUseCase() (settingsUsecase.UseCase, error) {
	c.settingsUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
			return
		}
		settingsRepo, err := c.SettingsRepository()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
			return
		}
		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
			return
		}
		c.settingsUseCase = settingsUsecase.NewSettingsUseCase(txManager, settingsRepo, auditUC)
	})
	if storedErr, exists := c.initErrors["settingsUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingsUseCase, nil
}
