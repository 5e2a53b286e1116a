package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "numbers/internal/errors"
	"numbers/internal/events"
	"numbers/internal/logger"
	"numbers/internal/models"
)

// billService handles credit-card-bill persistence.
type billService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB, publisher events.Publisher) BillServicer {
	return &billService{db: db, publisher: publisher}
}

// SaveBill validates the draft and persists it. A draft carrying the id of
// an existing bill replaces every field of that bill, including its payment
// status (this is how a bill is marked paid).
func (s *billService) SaveBill(draft models.CreditCardBillDraft) (*models.CreditCardBill, error) {
	entity, err := draft.Bill()
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.upsert(tx, entity)
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.Event{Name: events.BillSaved, EntityID: entity.ID})
	return entity, nil
}

// SaveBillBatch persists the drafts as one atomic write.
func (s *billService) SaveBillBatch(drafts []models.CreditCardBillDraft) ([]models.CreditCardBill, error) {
	created := make([]models.CreditCardBill, 0, len(drafts))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range drafts {
			entity, err := drafts[i].Bill()
			if err != nil {
				return err
			}
			if err := s.upsert(tx, entity); err != nil {
				return err
			}
			created = append(created, *entity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *billService) upsert(tx *gorm.DB, entity *models.CreditCardBill) error {
	if entity.ID != "" {
		var existing models.CreditCardBill
		err := tx.Where("id = ?", entity.ID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Select("StartDate", "EndDate", "DueDate", "Title", "Amount", "PaymentStatus").
				Updates(entity).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
			entity.CreatedAt = existing.CreatedAt
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	if err := tx.Create(entity).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// GetBillByID retrieves a single bill.
func (s *billService) GetBillByID(id string) (*models.CreditCardBill, error) {
	var bill models.CreditCardBill
	if err := s.db.Where("id = ?", id).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &bill, nil
}

// ListBills returns every bill, most recent due date first.
func (s *billService) ListBills() ([]models.CreditCardBill, error) {
	var bills []models.CreditCardBill
	if err := s.db.Order("due_date DESC").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return bills, nil
}

// DeleteBill removes a bill by id. Returns false when no row matched.
func (s *billService) DeleteBill(id string) (bool, error) {
	res := s.db.Unscoped().Where("id = ?", id).Delete(&models.CreditCardBill{})
	if res.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	s.publish(events.Event{Name: events.BillDeleted, EntityID: id})
	return true, nil
}

func (s *billService) publish(event events.Event) {
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		logger.Get().Warnw("event publish failed", "event", event.Name, "entity_id", event.EntityID, "error", err)
	}
}
