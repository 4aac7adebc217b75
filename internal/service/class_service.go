package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// ClassService handles the teacher portal: class CRUD and AI-scored student
// submissions.
type ClassService struct {
	classRepo       repository.ClassRepo
	scenarioRepo    repository.ScenarioRepo
	ai              AIClient
	notificationSvc *NotificationService

	now func() time.Time
}

// NewClassService creates a new class service
func NewClassService(classRepo repository.ClassRepo, scenarioRepo repository.ScenarioRepo, ai AIClient, notificationSvc *NotificationService) *ClassService {
	return &ClassService{
		classRepo:       classRepo,
		scenarioRepo:    scenarioRepo,
		ai:              ai,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

// CreateClass creates a class with a unique join code
func (s *ClassService) CreateClass(ctx context.Context, teacherID, name, code string) (*model.Class, error) {
	if teacherID == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(code) == "" {
		return nil, ErrMissingFields
	}

	class := &model.Class{
		TeacherID: teacherID,
		Name:      name,
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		CreatedAt: s.now(),
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrClassCodeTaken
		}
		return nil, err
	}
	return class, nil
}

// ListClasses returns a teacher's classes
func (s *ClassService) ListClasses(ctx context.Context, teacherID string) ([]*model.Class, error) {
	if teacherID == "" {
		return nil, ErrMissingFields
	}
	return s.classRepo.ListByTeacher(ctx, teacherID)
}

// ListSubmissions returns the scored submissions of one class, owner only
func (s *ClassService) ListSubmissions(ctx context.Context, teacherID, classID string) ([]*model.StudentSubmission, error) {
	class, err := s.classRepo.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil || class.TeacherID != teacherID {
		return nil, ErrClassNotFound
	}
	return s.classRepo.ListSubmissions(ctx, classID)
}

// SubmitStudentAnswer stores a student's scenario answer by class code, runs
// the AI scoring synchronously, and notifies the class's teacher
func (s *ClassService) SubmitStudentAnswer(ctx context.Context, code, studentName, scenarioID, answer string) (*model.StudentSubmission, error) {
	if strings.TrimSpace(studentName) == "" || strings.TrimSpace(answer) == "" {
		return nil, ErrMissingFields
	}

	class, err := s.classRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	situation := ""
	if scenarioID != "" {
		scenario, err := s.scenarioRepo.FindVariant(ctx, scenarioID, model.LangEN)
		if err != nil {
			return nil, err
		}
		if scenario != nil {
			situation = scenario.Situation
		}
	}

	analysis, score, err := s.ai.ScoreSubmission(ctx, situation, answer)
	if err != nil {
		return nil, err
	}

	sub := &model.StudentSubmission{
		ClassID:     class.ID,
		StudentName: studentName,
		ScenarioID:  scenarioID,
		Answer:      answer,
		Analysis:    analysis,
		Score:       score,
		SubmittedAt: s.now(),
	}
	if err := s.classRepo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	if s.notificationSvc != nil {
		titleEn := fmt.Sprintf("%s submitted an answer in %s (score %d)", studentName, class.Name, score)
		titleHe := fmt.Sprintf("%s הגיש/ה תשובה בכיתה %s (ציון %d)", studentName, class.Name, score)
		if _, err := s.notificationSvc.Create(ctx, class.TeacherID, model.NotificationSubmissionScored, titleEn, titleHe); err != nil {
			// The submission itself succeeded; a lost notification is not
			// worth failing the student's request over
			log.Printf("notification for submission %s failed: %v", sub.ID, err)
		}
	}
	return sub, nil
}
