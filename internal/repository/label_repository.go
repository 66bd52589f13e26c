package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workhub/internal/model"
)

var (
	ErrLabelNotFound = errors.New("label not found")
)

type LabelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Create adds a new label to the database
func (r *LabelRepository) Create(ctx context.Context, label *model.Label) error {
	return r.db.WithContext(ctx).Create(label).Error
}

// GetByID retrieves a label by its ID
func (r *LabelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var label model.Label
	result := r.db.WithContext(ctx).First(&label, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, result.Error
	}
	return &label, nil
}

// GetByBoardID retrieves all labels for a specific board
func (r *LabelRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).Where("board_id = ?", boardID).Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// GetByCardID retrieves all labels attached to a specific card
func (r *LabelRepository) GetByCardID(ctx context.Context, cardID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).
		Joins("JOIN card_labels ON card_labels.label_id = labels.id").
		Where("card_labels.card_id = ?", cardID).
		Find(&labels)

	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// Update updates an existing label
func (r *LabelRepository) Update(ctx context.Context, label *model.Label) error {
	result := r.db.WithContext(ctx).Save(label)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLabelNotFound
	}
	return nil
}

// Delete removes a label by its ID
func (r *LabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Label{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLabelNotFound
	}
	return nil
}

// AttachToCard adds a label to a specific card
func (r *LabelRepository) AttachToCard(ctx context.Context, labelID, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO card_labels (label_id, card_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		labelID, cardID,
	).Error
}

// DetachFromCard removes a label from a specific card
func (r *LabelRepository) DetachFromCard(ctx context.Context, labelID, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM card_labels WHERE label_id = ? AND card_id = ?",
		labelID, cardID,
	).Error
}
