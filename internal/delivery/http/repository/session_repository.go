package repository

import (
	"github.com/evandrarf/exampace-be/internal/entity"
	"gorm.io/gorm"
)

type (
	SessionRepository interface {
		CreateSession(db *gorm.DB, session *entity.Session, items []entity.SessionItem) error
		UpdateSession(db *gorm.DB, session *entity.Session) error
		AppendQuestionRecords(db *gorm.DB, records []entity.QuestionRecord) error
		// OverwriteSession deletes the session's old items and records and
		// writes the new triple in a single transaction.
		OverwriteSession(db *gorm.DB, session *entity.Session, items []entity.SessionItem, records []entity.QuestionRecord) error
		ListSessions(db *gorm.DB) ([]entity.Session, error)
		ListSessionsByStatus(db *gorm.DB, status string) ([]entity.Session, error)
		FindSessionByID(db *gorm.DB, id string) (*entity.Session, error)
		FindItemsBySessionID(db *gorm.DB, sessionID string) ([]entity.SessionItem, error)
		FindRecordsBySessionID(db *gorm.DB, sessionID string) ([]entity.QuestionRecord, error)
		RemoveSession(db *gorm.DB, sessionID string) error
	}

	sessionRepository struct {
		db *gorm.DB
	}
)

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(db *gorm.DB, session *entity.Session, items []entity.SessionItem) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Save(&items).Error
	})
}

func (r *sessionRepository) UpdateSession(db *gorm.DB, session *entity.Session) error {
	if db == nil {
		db = r.db
	}
	return db.Save(session).Error
}

func (r *sessionRepository) AppendQuestionRecords(db *gorm.DB, records []entity.QuestionRecord) error {
	if db == nil {
		db = r.db
	}
	if len(records) == 0 {
		return nil
	}
	return db.Save(&records).Error
}

func (r *sessionRepository) OverwriteSession(db *gorm.DB, session *entity.Session, items []entity.SessionItem, records []entity.QuestionRecord) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&entity.SessionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", session.ID).Delete(&entity.QuestionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Save(&items).Error; err != nil {
				return err
			}
		}
		if len(records) > 0 {
			if err := tx.Save(&records).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepository) ListSessions(db *gorm.DB) ([]entity.Session, error) {
	if db == nil {
		db = r.db
	}
	var sessions []entity.Session
	err := db.Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) ListSessionsByStatus(db *gorm.DB, status string) ([]entity.Session, error) {
	if db == nil {
		db = r.db
	}
	var sessions []entity.Session
	err := db.Where("status = ?", status).Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindSessionByID(db *gorm.DB, id string) (*entity.Session, error) {
	if db == nil {
		db = r.db
	}
	var session entity.Session
	err := db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindItemsBySessionID(db *gorm.DB, sessionID string) ([]entity.SessionItem, error) {
	if db == nil {
		db = r.db
	}
	var items []entity.SessionItem
	err := db.Where("session_id = ?", sessionID).Order("order_index ASC").Find(&items).Error
	return items, err
}

func (r *sessionRepository) FindRecordsBySessionID(db *gorm.DB, sessionID string) ([]entity.QuestionRecord, error) {
	if db == nil {
		db = r.db
	}
	var records []entity.QuestionRecord
	err := db.Where("session_id = ?", sessionID).Order("question_index ASC").Find(&records).Error
	return records, err
}

func (r *sessionRepository) RemoveSession(db *gorm.DB, sessionID string) error {
	if db == nil {
		db = r.db
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&entity.SessionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&entity.QuestionRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", sessionID).Delete(&entity.Session{}).Error
	})
}
