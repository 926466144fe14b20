package supportrepo

import (
	"context"

	"gorm.io/gorm"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/support"
	"crm/internal/pkg/errs"
)

// GormSupportRepository implements SupportRepository using GORM. The history
// is append-only: exchanges are never edited.
type GormSupportRepository struct {
	db *gorm.DB
}

// NewGormSupportRepository creates a new GORM support history repository.
func NewGormSupportRepository(db *gorm.DB) *GormSupportRepository {
	return &GormSupportRepository{db: db}
}

// Add appends an exchange to the chat history.
func (r *GormSupportRepository) Add(ctx context.Context, message *support.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetHistory retrieves the client's most recent exchanges, newest first,
// capped at limit.
func (r *GormSupportRepository) GetHistory(
	ctx context.Context,
	clientID kernel.UUID,
	limit int,
) ([]*support.Message, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, nil)
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID.Bytes()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	history := make([]*support.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		history = append(history, message)
	}

	return history, nil
}
