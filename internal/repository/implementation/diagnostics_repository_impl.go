package implementation

import (
	"context"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/mapper"
	"admin-chatbot-be/internal/model"
	"admin-chatbot-be/internal/repository/contract"
	"admin-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RetrievedContextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DiagnosticsMapper
}

func NewRetrievedContextRepository(db *gorm.DB) contract.RetrievedContextRepository {
	return &RetrievedContextRepositoryImpl{
		db:     db,
		mapper: mapper.NewDiagnosticsMapper(),
	}
}

func (r *RetrievedContextRepositoryImpl) Create(ctx context.Context, attempt *entity.RetrievalAttempt) error {
	m := r.mapper.AttemptToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.AttemptToEntity(m)
	return nil
}

func (r *RetrievedContextRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalAttempt, error) {
	var models []*model.RetrievedContext
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.RetrievalAttempt, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AttemptToEntity(m)
	}
	return entities, nil
}

type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DiagnosticsMapper
}

func NewAuditLogRepository(db *gorm.DB) contract.AuditLogRepository {
	return &AuditLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewDiagnosticsMapper(),
	}
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, event *entity.AuditEvent) error {
	m := r.mapper.AuditToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.AuditToEntity(m)
	return nil
}

func (r *AuditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error) {
	var models []*model.AuditLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AuditEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AuditToEntity(m)
	}
	return entities, nil
}
