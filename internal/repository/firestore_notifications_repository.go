package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/domain/repository"
)

const notificationsCollection = "notifications"

// FirestoreNotificationsRepository Firestoreを使用した通知フィード
type FirestoreNotificationsRepository struct {
	client *firestore.Client
}

// NewFirestoreNotificationsRepository 新しいFirestoreNotificationsRepositoryインスタンスを作成
func NewFirestoreNotificationsRepository(client *firestore.Client) repository.NotificationsRepository {
	return &FirestoreNotificationsRepository{
		client: client,
	}
}

func (r *FirestoreNotificationsRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if _, err := r.client.Collection(notificationsCollection).Doc(n.ID).Set(ctx, n); err != nil {
		return fmt.Errorf("通知の保存に失敗しました: %w", err)
	}
	return nil
}

// ListByEmail 新しい順に取得（並べ替えはメモリ上で行い、複合インデックスを不要にする）
func (r *FirestoreNotificationsRepository) ListByEmail(ctx context.Context, email string) ([]model.Notification, error) {
	iter := r.client.Collection(notificationsCollection).Where("user_email", "==", email).Documents(ctx)
	defer iter.Stop()

	items := []model.Notification{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("通知の取得に失敗しました: %w", err)
		}
		var n model.Notification
		if err := doc.DataTo(&n); err != nil {
			return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
		}
		n.ID = doc.Ref.ID
		items = append(items, n)
	}

	sortNewestFirst(items)
	return items, nil
}

func (r *FirestoreNotificationsRepository) MarkRead(ctx context.Context, email, id string) error {
	ref := r.client.Collection(notificationsCollection).Doc(id)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return model.ErrNotFound
			}
			return fmt.Errorf("通知の取得に失敗しました: %w", err)
		}
		var n model.Notification
		if err := doc.DataTo(&n); err != nil {
			return fmt.Errorf("データの変換に失敗しました: %w", err)
		}
		if n.UserEmail != email {
			return model.ErrNotFound
		}
		return tx.Update(ref, []firestore.Update{{Path: "read", Value: true}})
	})
}
