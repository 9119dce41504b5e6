package repository

import (
	"context"
	"errors"

	"gamecenter/internal/model"
	"gamecenter/pkg/idgen"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Save 没有 ID 时插入，否则按 ID 覆盖
func (r *MemberRepository) Save(ctx context.Context, member *model.Member) (*model.Member, error) {
	db := r.db.WithContext(ctx)
	if member.ID == "" {
		member.ID = idgen.GenerateMemberID()
		if err := db.Create(member).Error; err != nil {
			return nil, err
		}
		return member, nil
	}
	if err := db.Save(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}
