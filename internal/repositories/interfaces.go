package repositories

import (
	"time"

	"github.com/jrc-public-school/school-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Class      *string `json:"class"`
	HasAccount *bool   `json:"has_account"`
	Limit      int     `json:"limit"`
	Offset     int     `json:"offset"`
	SortBy     string  `json:"sort_by"`    // "class", "roll_no", "name", "created_at"
	SortOrder  string  `json:"sort_order"` // "asc", "desc"
}

type AdmissionFilters struct {
	Status   *models.AdmissionStatus `json:"status"`
	Class    *string                 `json:"class"`
	DateFrom *time.Time              `json:"date_from"`
	DateTo   *time.Time              `json:"date_to"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

type NewsFilters struct {
	Type       *models.NewsType `json:"type"`
	ActiveOnly bool             `json:"active_only"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type RosterStats struct {
	TotalStudents   int            `json:"total_students"`
	StudentsByClass map[string]int `json:"students_by_class"`
	WithAccount     int            `json:"with_account"`
	WithoutAccount  int            `json:"without_account"`
}

type AdmissionStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Contacted int `json:"contacted"`
	Admitted  int `json:"admitted"`
	Rejected  int `json:"rejected"`
}
