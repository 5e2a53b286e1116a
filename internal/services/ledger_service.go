package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "numbers/internal/errors"
	"numbers/internal/events"
	"numbers/internal/logger"
	"numbers/internal/models"
	"numbers/internal/pagination"
)

// ledgerService handles transaction and payment-method persistence.
type ledgerService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB, publisher events.Publisher) LedgerServicer {
	return &ledgerService{db: db, publisher: publisher}
}

// SaveTransaction validates the draft and persists it atomically with any
// accounts it creates. Update is delete-then-recreate: a draft carrying an
// id replaces that row wholesale, keeping the id.
func (s *ledgerService) SaveTransaction(draft models.TransactionDraft) (*models.Transaction, error) {
	entity, err := draft.Transaction()
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if entity.ID != "" {
			if err := tx.Unscoped().Where("id = ?", entity.ID).Delete(&models.Transaction{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		}
		cache := make(map[string]*models.PaymentMethod)
		return s.createWithAccounts(tx, entity, draft, cache)
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.Event{Name: events.TransactionCreated, EntityID: entity.ID})
	return entity, nil
}

// SaveBatch persists the drafts as one storage transaction: either every
// row (and every account created along the way) commits, or none does.
func (s *ledgerService) SaveBatch(drafts []models.TransactionDraft) ([]models.Transaction, error) {
	created := make([]models.Transaction, 0, len(drafts))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// One cache for the whole batch: the first row naming an unseen
		// title creates the account, later rows reuse it.
		cache := make(map[string]*models.PaymentMethod)
		for i := range drafts {
			entity, err := drafts[i].Transaction()
			if err != nil {
				return err
			}
			if err := s.createWithAccounts(tx, entity, drafts[i], cache); err != nil {
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

// createWithAccounts resolves the draft's account titles against storage and
// the batch-local cache, then creates the transaction row.
func (s *ledgerService) createWithAccounts(tx *gorm.DB, entity *models.Transaction, draft models.TransactionDraft, cache map[string]*models.PaymentMethod) error {
	if draft.DebitAccountTitle != nil && strings.TrimSpace(*draft.DebitAccountTitle) != "" {
		account, err := s.resolveAccount(tx, cache, strings.TrimSpace(*draft.DebitAccountTitle))
		if err != nil {
			return err
		}
		entity.DebitAccountID = &account.ID
		entity.DebitAccount = account
	}
	if draft.CreditAccountTitle != nil && strings.TrimSpace(*draft.CreditAccountTitle) != "" {
		account, err := s.resolveAccount(tx, cache, strings.TrimSpace(*draft.CreditAccountTitle))
		if err != nil {
			return err
		}
		entity.CreditAccountID = &account.ID
		entity.CreditAccount = account
	}

	if err := tx.Omit("DebitAccount", "CreditAccount").Create(entity).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// resolveAccount finds a payment method by exact title or creates it. The
// cache guarantees a title resolves to one account within a write, even when
// the same unseen title appears as both debit and credit.
func (s *ledgerService) resolveAccount(tx *gorm.DB, cache map[string]*models.PaymentMethod, title string) (*models.PaymentMethod, error) {
	if account, ok := cache[title]; ok {
		return account, nil
	}

	var account models.PaymentMethod
	err := tx.Where("title = ?", title).First(&account).Error
	switch {
	case err == nil:
		cache[title] = &account
		return &account, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = models.PaymentMethod{Title: title}
		if err := tx.Create(&account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		cache[title] = &account
		return &account, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
}

// DeleteTransaction removes a transaction by id. Accounts orphaned by the
// delete are kept. Returns false when no row matched.
func (s *ledgerService) DeleteTransaction(id string) (bool, error) {
	res := s.db.Unscoped().Where("id = ?", id).Delete(&models.Transaction{})
	if res.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	s.publish(events.Event{Name: events.TransactionDeleted, EntityID: id})
	return true, nil
}

// GetTransactionByID retrieves a single transaction with both account
// relations loaded.
func (s *ledgerService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Preload("DebitAccount").Preload("CreditAccount").
		Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &transaction, nil
}

// ListTransactions returns transactions newest date first, optionally
// bounded by date and filtered to one account in either role.
func (s *ledgerService) ListTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{}).
		Preload("DebitAccount").Preload("CreditAccount").
		Order("date DESC")
	if filter.Since != nil {
		q = q.Where("date >= ?", *filter.Since)
	}
	if filter.AccountTitle != nil {
		sub := s.db.Model(&models.PaymentMethod{}).Select("id").Where("title = ?", *filter.AccountTitle)
		q = q.Where("debit_account_id IN (?) OR credit_account_id IN (?)", sub, sub)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return transactions, nil
}

// ListTransactionsPage applies the same filters as ListTransactions and
// returns one page plus totals.
func (s *ledgerService) ListTransactionsPage(filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	if filter.Since != nil {
		base = base.Where("date >= ?", *filter.Since)
	}
	if filter.AccountTitle != nil {
		sub := s.db.Model(&models.PaymentMethod{}).Select("id").Where("title = ?", *filter.AccountTitle)
		base = base.Where("debit_account_id IN (?) OR credit_account_id IN (?)", sub, sub)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("DebitAccount").Preload("CreditAccount").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListAccounts returns every payment method alphabetically with both
// transaction relations loaded in bulk.
func (s *ledgerService) ListAccounts() ([]models.PaymentMethod, error) {
	var accounts []models.PaymentMethod
	err := s.db.Preload("DebitTransactions").Preload("CreditTransactions").
		Order("title ASC").Find(&accounts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return accounts, nil
}

// publish sends a ledger event; failures are logged, never surfaced, so a
// broker outage cannot fail a committed write.
func (s *ledgerService) publish(event events.Event) {
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		logger.Get().Warnw("event publish failed", "event", event.Name, "entity_id", event.EntityID, "error", err)
	}
}
