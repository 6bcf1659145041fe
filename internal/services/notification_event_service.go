package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jrc-public-school/school-service/internal/events"
	"github.com/jrc-public-school/school-service/internal/models"
)

// Kafka topics per event family
const (
	TopicAdmissions = "school.admissions"
	TopicStudents   = "school.students"
	TopicAcademics  = "school.academics"
	TopicNews       = "school.news"
)

// NotificationEventService publishes domain events for downstream
// consumers. Publishing is best effort: failures are logged and never
// fail the request that triggered them.
type NotificationEventService interface {
	AdmissionSubmitted(ctx context.Context, admission *models.Admission)
	AdmissionStatusChanged(ctx context.Context, admission *models.Admission)
	StudentRegistered(ctx context.Context, student *models.Student)
	StudentDeleted(ctx context.Context, student *models.Student)
	ResultAdded(ctx context.Context, result *models.StudentResult)
	FeeAdded(ctx context.Context, fee *models.StudentFee)
	NewsPublished(ctx context.Context, item *models.NewsItem)
}

type notificationEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationEventService(eventPublisher events.EventPublisher, logger *slog.Logger) NotificationEventService {
	return &notificationEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationEventService) AdmissionSubmitted(ctx context.Context, admission *models.Admission) {
	s.publish(ctx, TopicAdmissions, events.EventAdmissionSubmitted, &events.AdmissionEvent{
		AdmissionID: fmt.Sprintf("%d", admission.ID),
		StudentName: admission.StudentName,
		Class:       admission.ClassApplying,
		Status:      string(admission.Status),
	})
}

func (s *notificationEventService) AdmissionStatusChanged(ctx context.Context, admission *models.Admission) {
	s.publish(ctx, TopicAdmissions, events.EventAdmissionStatusChanged, &events.AdmissionEvent{
		AdmissionID: fmt.Sprintf("%d", admission.ID),
		StudentName: admission.StudentName,
		Class:       admission.ClassApplying,
		Status:      string(admission.Status),
	})
}

func (s *notificationEventService) StudentRegistered(ctx context.Context, student *models.Student) {
	s.publish(ctx, TopicStudents, events.EventStudentRegistered, studentEvent(student))
}

func (s *notificationEventService) StudentDeleted(ctx context.Context, student *models.Student) {
	s.publish(ctx, TopicStudents, events.EventStudentDeleted, studentEvent(student))
}

func (s *notificationEventService) ResultAdded(ctx context.Context, result *models.StudentResult) {
	s.publish(ctx, TopicAcademics, events.EventResultAdded, &events.AcademicRecordEvent{
		StudentID: fmt.Sprintf("%d", result.StudentID),
		RecordID:  fmt.Sprintf("%d", result.ID),
		Kind:      "result",
		ExamName:  result.ExamName,
		Session:   result.Session,
	})
}

func (s *notificationEventService) FeeAdded(ctx context.Context, fee *models.StudentFee) {
	s.publish(ctx, TopicAcademics, events.EventFeeAdded, &events.AcademicRecordEvent{
		StudentID: fmt.Sprintf("%d", fee.StudentID),
		RecordID:  fmt.Sprintf("%d", fee.ID),
		Kind:      "fee",
		Session:   fee.Session,
	})
}

func (s *notificationEventService) NewsPublished(ctx context.Context, item *models.NewsItem) {
	s.publish(ctx, TopicNews, events.EventNewsPublished, &events.NewsEvent{
		NewsID: fmt.Sprintf("%d", item.ID),
		Title:  item.Title,
		Type:   string(item.Type),
	})
}

func (s *notificationEventService) publish(ctx context.Context, topic, eventType string, data interface{}) {
	event := &events.Event{
		Type: eventType,
		Data: data,
	}

	if err := s.eventPublisher.Publish(ctx, topic, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"topic", topic,
			"event_type", eventType)
	}
}

func studentEvent(student *models.Student) *events.StudentEvent {
	return &events.StudentEvent{
		StudentID: fmt.Sprintf("%d", student.ID),
		Name:      student.Name,
		Class:     student.Class,
		RollNo:    student.RollNo,
	}
}
