package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maximohlupin-omd-work/foodgram/internal/domain"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Add(ctx context.Context, ownerID, subscriberID int64) error {
	err := r.db.WithContext(ctx).Create(&domain.Subscription{
		OwnerID:      ownerID,
		SubscriberID: subscriberID,
	}).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *SubscriptionRepository) Remove(ctx context.Context, ownerID, subscriberID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND subscriber_id = ?", ownerID, subscriberID).
		Delete(&domain.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SubscriptionRepository) Exists(ctx context.Context, ownerID, subscriberID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("owner_id = ? AND subscriber_id = ?", ownerID, subscriberID).
		Count(&count).Error
	return count > 0, err
}

// OwnerIDSet returns which of ownerIDs the subscriber follows, in one query.
// Used to annotate user cards with is_subscribed.
func (r *SubscriptionRepository) OwnerIDSet(ctx context.Context, subscriberID int64, ownerIDs []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return set, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("subscriber_id = ? AND owner_id IN ?", subscriberID, ownerIDs).
		Pluck("owner_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ListOwners returns the users the subscriber follows, newest edge first,
// with the total for pagination.
func (r *SubscriptionRepository) ListOwners(ctx context.Context, subscriberID int64, limit, offset int) ([]domain.User, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var owners []domain.User
	query := r.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN subscriptions ON subscriptions.owner_id = users.id AND subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&owners).Error; err != nil {
		return nil, 0, err
	}
	return owners, total, nil
}
