package repository

import (
	"context"
	"time"

	"havenagent/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type DocumentModel struct {
	UserID      int64     `gorm:"column:user_id;primaryKey"`
	DocType     string    `gorm:"column:doc_type;primaryKey"`
	Status      string    `gorm:"column:status"`
	StoragePath string    `gorm:"column:storage_path"`
	MimeType    string    `gorm:"column:mime_type"`
	Size        int64     `gorm:"column:size"`
	UploadedAt  time.Time `gorm:"column:uploaded_at"`
}

func (DocumentModel) TableName() string { return "documents" }

func toDomainDocument(m DocumentModel) domain.Document {
	return domain.Document{
		UserID:      m.UserID,
		DocType:     domain.DocType(m.DocType),
		Status:      domain.DocumentStatus(m.Status),
		StoragePath: m.StoragePath,
		MimeType:    m.MimeType,
		Size:        m.Size,
		UploadedAt:  m.UploadedAt,
	}
}

// Upsert writes the document row keyed by (user_id, doc_type). A
// re-upload overwrites the previous row, whatever its status was.
func (r *DocumentRepository) Upsert(ctx context.Context, d *domain.Document) error {
	m := DocumentModel{
		UserID:      d.UserID,
		DocType:     string(d.DocType),
		Status:      string(d.Status),
		StoragePath: d.StoragePath,
		MimeType:    d.MimeType,
		Size:        d.Size,
		UploadedAt:  d.UploadedAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "doc_type"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":       m.Status,
				"storage_path": m.StoragePath,
				"mime_type":    m.MimeType,
				"size":         m.Size,
				"uploaded_at":  m.UploadedAt,
			}),
		}).
		Create(&m).Error
}

func (r *DocumentRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.Document, error) {
	var rows []DocumentModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, m := range rows {
		docs = append(docs, toDomainDocument(m))
	}
	return docs, nil
}
