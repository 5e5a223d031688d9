package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// MemberService resolves person ids to their concrete role
type MemberService struct {
	*base
}

func newMemberService(b *base) *MemberService {
	return &MemberService{base: b}
}

// FindMember returns a *models.Student or *models.Instructor for the person id
func (s *MemberService) FindMember(ctx context.Context, id string) (models.Member, error) {
	person, err := s.read.PersonRepository.GetPersonByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(err, fmt.Sprintf("person %q not found", id))
		}
		return nil, err
	}

	switch person.Type {
	case models.PersonStudent:
		student, err := s.read.StudentRepository.GetStudentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return student, nil
	case models.PersonInstructor:
		row, err := s.read.InstructorRepository.GetInstructorByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &row.Instructor, nil
	default:
		return nil, fmt.Errorf("person %q has unknown type %q", id, person.Type)
	}
}
