package app

import (
	"fmt"

	auditRepository "github.com/docbrief/docbrief/internal/audit/repository"
	auditUsecase "github.com/docbrief/docbrief/internal/audit/usecase"
)

// AuditRepository returns the audit entry repository instance.
func (c *Container) AuditRepository() (auditUsecase.AuditRepository, error) {
	c.auditRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["auditRepo"] = fmt.Errorf("failed to get database for audit repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.auditRepo = auditRepository.NewMySQLAuditRepository(db)
		case "postgres":
			c.auditRepo = auditRepository.NewPostgreSQLAuditRepository(db)
		default:
			c.initErrors["auditRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUsecase.UseCase, error) {
	c.auditUseCaseInit.Do(func() {
		auditRepo, err := c.AuditRepository()
		if err != nil {
			c.initErrors["auditUseCase"] = err
			return
		}
		c.auditUseCase = auditUsecase.NewAuditUseCase(auditRepo)
	})
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}
