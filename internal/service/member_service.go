package service

import (
	"context"

	"gamecenter/internal/model"
)

type MemberService struct {
	members MemberStore
}

func NewMemberService(members MemberStore) *MemberService {
	return &MemberService{members: members}
}

type MemberRequest struct {
	Name  string
	Email string
	Phone string
}

func (s *MemberService) ListMembers(ctx context.Context) ([]*model.Member, error) {
	return s.members.FindAll(ctx)
}

func (s *MemberService) GetMember(ctx context.Context, id string) (*model.Member, error) {
	return s.members.FindByID(ctx, id)
}

func (s *MemberService) CreateMember(ctx context.Context, req *MemberRequest) (*model.Member, error) {
	return s.members.Save(ctx, &model.Member{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
}

// UpdateMember 改名不会同步到已有消费记录，消费列表读取时会刷新
func (s *MemberService) UpdateMember(ctx context.Context, id string, req *MemberRequest) (*model.Member, error) {
	existing, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone

	return s.members.Save(ctx, existing)
}
