package events

import (
	"context"
	"time"
)

// Event types published by the school service
const (
	EventAdmissionSubmitted     = "admission.submitted"
	EventAdmissionStatusChanged = "admission.status_changed"
	EventStudentRegistered      = "student.registered"
	EventStudentDeleted         = "student.deleted"
	EventResultAdded            = "result.added"
	EventFeeAdded               = "fee.added"
	EventNewsPublished          = "news.published"
)

// Event is the envelope wrapping every message published to the bus.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// AdmissionEvent carries admission lifecycle data.
type AdmissionEvent struct {
	AdmissionID  string `json:"admission_id"`
	StudentName  string `json:"student_name"`
	Class        string `json:"class"`
	Status       string `json:"status"`
	GuardianName string `json:"guardian_name,omitempty"`
}

// StudentEvent carries student directory lifecycle data.
type StudentEvent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	RollNo    string `json:"roll_no"`
}

// AcademicRecordEvent carries result and fee append notifications.
type AcademicRecordEvent struct {
	StudentID string `json:"student_id"`
	RecordID  string `json:"record_id"`
	Kind      string `json:"kind"`
	ExamName  string `json:"exam_name,omitempty"`
	Session   string `json:"session,omitempty"`
}

// NewsEvent carries published news item data.
type NewsEvent struct {
	NewsID string `json:"news_id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
}
